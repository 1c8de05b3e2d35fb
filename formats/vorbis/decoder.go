// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/soundfont/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	bufSize    int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return s.bufSize }

// ReadSamples decodes into dst, which is trimmed to whole frames.
func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis counts interleaved values, not frames
	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	return n, err
}

var oggMagic = []byte("OggS")

// IsOgg reports whether b starts with an Ogg page header.
func IsOgg(b []byte) bool { return bytes.HasPrefix(b, oggMagic) }

// Decoder reads Ogg Vorbis streams, such as the compressed samples of a
// SoundFont bank. It is registered under "ogg" in sample codec registries.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (src audio.Source, err error) {
	// oggvorbis indexes past the segment table of a page with no segments
	defer func() {
		if p := recover(); p != nil {
			src, err = nil, fmt.Errorf("%w: %v", ErrNotOgg, p)
		}
	}()

	br := bufio.NewReader(r)
	head, err := br.Peek(len(oggMagic))
	if err != nil || !IsOgg(head) {
		return nil, ErrNotOgg
	}

	dec, err := oggvorbis.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOgg, err)
	}
	return newSource(dec), nil
}

func newSource(dec oggReader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		bufSize:    4096 - 4096%dec.Channels(),
	}
}
