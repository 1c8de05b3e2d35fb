// SPDX-License-Identifier: EPL-2.0

package riffio

import "errors"

var (
	// ErrTruncated is returned when a read runs past the available bytes.
	ErrTruncated = errors.New("truncated data")

	// ErrOverrun is returned when a chunk declares more bytes than its
	// enclosing chunk has left.
	ErrOverrun = errors.New("chunk overruns its container")
)
