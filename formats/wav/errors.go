// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrInvalidLayout indicates a channel count or sample rate that cannot
	// be written, or sample data that does not hold whole frames.
	ErrInvalidLayout = errors.New("invalid WAV layout")

	// ErrNoFormat indicates a buffer without format information.
	ErrNoFormat = errors.New("buffer has no format")
)
