// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrInvalidDstSize indicates a read buffer that does not hold whole frames.
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidRate indicates a non-positive sample rate or pitch ratio.
	ErrInvalidRate = errors.New("rate must be positive")
)
