// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Info is the text stored in the LIST/INFO chunk of an exported sample.
type Info struct {
	Title    string // INAM, the sample name
	Comments string // ICMT
	Software string // ISFT
}

// WriteBuffer encodes buf as a 16-bit PCM WAV file. The encoder patches
// the chunk sizes when it finishes, so w must be seekable.
func WriteBuffer(w io.WriteSeeker, buf *audio.IntBuffer, info *Info) error {
	if buf == nil || buf.Format == nil {
		return ErrNoFormat
	}
	f := buf.Format
	if f.SampleRate <= 0 || f.NumChannels <= 0 || len(buf.Data)%f.NumChannels != 0 {
		return fmt.Errorf("%w: %d Hz, %d channels, %d samples", ErrInvalidLayout, f.SampleRate, f.NumChannels, len(buf.Data))
	}

	enc := wav.NewEncoder(w, f.SampleRate, 16, f.NumChannels, 1)
	if info != nil {
		enc.Metadata = &wav.Metadata{
			Title:    info.Title,
			Comments: info.Comments,
			Software: info.Software,
		}
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding %d samples: %w", len(buf.Data), err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing WAV: %w", err)
	}
	return nil
}
