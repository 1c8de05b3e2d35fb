// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/soundfont/utils"
)

// Resampler converts src to another sample rate, optionally transposing it,
// using cubic interpolation over a four frame window. It keeps the channel
// count of src. When it reads source frames faster than real time a
// one-pole low-pass filter runs on the input.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames consumed per output frame
	channels int

	// win holds frames t-1, t, t+1, t+2; output lies between win[1] and win[2]
	win  [4][]float32
	live [4]bool
	pos  float64

	in     []float32
	primed bool
	eof    bool

	lowpass bool
	alpha   float32
	state   []float32
}

// NewResampler converts src to dstRate without changing pitch. It panics
// on a non-positive rate.
func NewResampler(src Source, dstRate int) *Resampler {
	r, err := NewPitchResampler(src, dstRate, 1)
	if err != nil {
		panic(err)
	}
	return r
}

// NewPitchResampler converts src to dstRate and multiplies its pitch by
// ratio: 2 plays an octave up, 0.5 an octave down.
func NewPitchResampler(src Source, dstRate int, ratio float64) (*Resampler, error) {
	if dstRate <= 0 || ratio <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: dst %d Hz, src %d Hz, ratio %g", ErrInvalidRate, dstRate, src.SampleRate(), ratio)
	}
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate) * ratio

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     step,
		channels: channels,
		in:       make([]float32, channels),
		lowpass:  step > 1,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}
	return r, nil
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// read pulls one frame from the source into f. It reports false once the
// source is exhausted.
func (r *Resampler) read(f []float32) (bool, error) {
	if r.eof {
		return false, nil
	}
	n, err := r.src.ReadSamples(r.in)
	if err == io.EOF || (err == nil && n == 0) {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if n < r.channels {
		return false, nil
	}
	copy(f, r.in)
	return true, nil
}

func (r *Resampler) load(i int) error {
	ok, err := r.read(r.win[i])
	if err != nil {
		return err
	}
	r.live[i] = ok
	if !ok {
		copy(r.win[i], r.win[i-1])
		return nil
	}
	if r.lowpass {
		for c, x := range r.win[i] {
			y := r.alpha*x + (1-r.alpha)*r.state[c]
			r.win[i][c], r.state[c] = y, y
		}
	}
	return nil
}

func (r *Resampler) prime() error {
	r.primed = true
	ok, err := r.read(r.win[1])
	if err != nil || !ok {
		return err
	}
	r.live[1] = true
	copy(r.win[0], r.win[1])
	copy(r.state, r.win[1])
	if err := r.load(2); err != nil {
		return err
	}
	return r.load(3)
}

// shift moves the window one source frame forward.
func (r *Resampler) shift() error {
	first := r.win[0]
	copy(r.win[:3], r.win[1:])
	copy(r.live[:3], r.live[1:])
	r.win[3] = first
	return r.load(3)
}

// ReadSamples fills dst with resampled frames. len(dst) must be a multiple
// of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	w := 0
	for w < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return w * r.channels, err
			}
		}
		if !r.live[1] {
			break
		}

		x := float32(r.pos)
		out := dst[w*r.channels : (w+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}
		w++
		r.pos += r.step
	}

	if w == 0 {
		return 0, io.EOF
	}
	return w * r.channels, nil
}
