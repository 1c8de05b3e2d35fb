// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"io"

	"github.com/ik5/soundfont/audio"
	"github.com/ik5/soundfont/formats/sf2"
	"github.com/ik5/soundfont/formats/vorbis"
)

// LoadFile decodes the SoundFont bank at path.
func LoadFile(path string) (*sf2.Bank, error) {
	return sf2.Decoder{}.DecodeFile(path)
}

// Decode reads a whole SoundFont bank from r.
func Decode(r io.Reader) (*sf2.Bank, error) {
	return sf2.Decoder{}.Decode(r)
}

// DefaultCodecs returns a registry with the decoders for compressed sample
// data: Ogg Vorbis under sf2.CodecOgg.
func DefaultCodecs() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(sf2.CodecOgg, vorbis.Decoder{})
	return r
}
