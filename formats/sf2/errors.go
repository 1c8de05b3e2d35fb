// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"errors"

	"github.com/ik5/soundfont/internal/riffio"
)

var (
	// ErrNotAnSf2File indicates the input does not start with a RIFF/sfbk header.
	ErrNotAnSf2File = errors.New("not an SF2 file")

	// ErrTruncated indicates a read ran past the available bytes.
	ErrTruncated = riffio.ErrTruncated

	// ErrMalformedChunk indicates a chunk or record table that is structurally
	// inconsistent: a size that does not divide into whole records, a
	// decreasing index range, an unknown enumeration value, or a child chunk
	// overrunning its container.
	ErrMalformedChunk = errors.New("malformed chunk")

	// ErrInputTooLarge indicates the input exceeds Decoder.MaxSize.
	ErrInputTooLarge = errors.New("input exceeds size limit")

	// ErrNoSuchSample indicates a sample index outside the bank's sample table.
	ErrNoSuchSample = errors.New("no such sample")

	// ErrSampleOutOfRange indicates a sample header whose frame range does not
	// fit inside the bank's sample data.
	ErrSampleOutOfRange = errors.New("sample range outside sample data")

	// ErrROMSample indicates a sample stored in a sound ROM instead of the file.
	ErrROMSample = errors.New("sample data lives in ROM")

	// ErrCompressedSample indicates a compressed sample was requested as raw PCM.
	ErrCompressedSample = errors.New("sample is compressed")

	// ErrNotStereo indicates a sample that is not half of a stereo pair.
	ErrNotStereo = errors.New("sample is not part of a stereo pair")

	// ErrNoCodec indicates no decoder is registered for compressed sample data.
	ErrNoCodec = errors.New("no codec for compressed sample")
)
