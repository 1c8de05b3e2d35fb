// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
)

// toneSource generates frames from a waveform function.
type toneSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     func(frame, channel int) float32
	closed   bool
	fail     error
}

func newTone(rate, channels, frames int, wave func(frame, channel int) float32) *toneSource {
	return &toneSource{rate: rate, channels: channels, frames: frames, wave: wave}
}

func newSine(rate, channels, frames int, hz float64) *toneSource {
	return newTone(rate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * hz * float64(f) / float64(rate)))
	})
}

func newConstant(rate, channels, frames int, v float32) *toneSource {
	return newTone(rate, channels, frames, func(int, int) float32 { return v })
}

// newRamp counts frames, scaled so frame i reads i/1000.
func newRamp(rate, frames int) *toneSource {
	return newTone(rate, 1, frames, func(f, _ int) float32 { return float32(f) / 1000 })
}

func (s *toneSource) SampleRate() int { return s.rate }
func (s *toneSource) Channels() int   { return s.channels }
func (s *toneSource) BufSize() int    { return 1024 }

func (s *toneSource) Close() error {
	s.closed = true
	return s.fail
}

func (s *toneSource) ReadSamples(dst []float32) (int, error) {
	if s.fail != nil {
		return 0, s.fail
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}
	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n
	return n * s.channels, nil
}

var errBroken = errors.New("broken source")

// drain reads src to the end with reads of size buf.
func drain(src Source, buf int) ([]float32, error) {
	var out []float32
	b := make([]float32, buf)
	for {
		n, err := src.ReadSamples(b)
		out = append(out, b[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
