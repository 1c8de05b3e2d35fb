// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestResamplerFrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
		frames   int
		want     int
	}{
		{name: "same rate", srcRate: 22050, dstRate: 22050, channels: 1, frames: 1000, want: 1000},
		{name: "downsample by two", srcRate: 44100, dstRate: 22050, channels: 1, frames: 1000, want: 500},
		{name: "upsample by two", srcRate: 16000, dstRate: 32000, channels: 2, frames: 1000, want: 2000},
		{name: "cd to wideband", srcRate: 44100, dstRate: 16000, channels: 1, frames: 44100, want: 16000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(newSine(tt.srcRate, tt.channels, tt.frames, 440), tt.dstRate)
			if r.SampleRate() != tt.dstRate || r.Channels() != tt.channels {
				t.Fatalf("resampler reports %d Hz / %d ch", r.SampleRate(), r.Channels())
			}

			out, err := drain(r, 256*tt.channels)
			if err != nil {
				t.Fatal(err)
			}
			got := len(out) / tt.channels
			if got < tt.want-1 || got > tt.want+1 {
				t.Errorf("got %d frames, want %d", got, tt.want)
			}
		})
	}
}

func TestResamplerIdentityKeepsSamples(t *testing.T) {
	t.Parallel()

	out, err := drain(NewResampler(newRamp(8000, 50), 8000), 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 50 {
		t.Fatalf("got %d samples, want 50", len(out))
	}
	for i, v := range out {
		if want := float32(i) / 1000; math.Abs(float64(v-want)) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestResamplerInterpolatesRamp(t *testing.T) {
	t.Parallel()

	// doubling the rate of a linear ramp lands halfway between frames
	out, err := drain(NewResampler(newRamp(8000, 20), 16000), 16)
	if err != nil {
		t.Fatal(err)
	}
	for i := 2; i < 30; i++ {
		want := float32(i) / 2000
		if math.Abs(float64(out[i]-want)) > 1e-5 {
			t.Fatalf("sample %d = %v, want %v", i, out[i], want)
		}
	}
}

func TestPitchResampler(t *testing.T) {
	t.Parallel()

	r, err := NewPitchResampler(newConstant(22050, 1, 1200, 0.25), 22050, 2)
	if err != nil {
		t.Fatal(err)
	}
	out, err := drain(r, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) < 599 || len(out) > 601 {
		t.Errorf("octave up gave %d frames, want 600", len(out))
	}
	for i, v := range out {
		if math.Abs(float64(v-0.25)) > 1e-3 {
			t.Fatalf("sample %d = %v, want 0.25", i, v)
		}
	}

	for _, ratio := range []float64{0, -1} {
		if _, err := NewPitchResampler(newConstant(22050, 1, 1, 0), 22050, ratio); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("ratio %v: err = %v, want ErrInvalidRate", ratio, err)
		}
	}
	if _, err := NewPitchResampler(newConstant(22050, 1, 1, 0), 0, 1); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("zero rate: err = %v, want ErrInvalidRate", err)
	}
}

func TestResamplerEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		n, err := NewResampler(newConstant(8000, 1, 0, 0), 16000).ReadSamples(make([]float32, 8))
		if n != 0 || err != io.EOF {
			t.Errorf("got %d, %v, want 0, EOF", n, err)
		}
	})

	t.Run("partial frame buffer", func(t *testing.T) {
		t.Parallel()

		_, err := NewResampler(newConstant(8000, 2, 10, 0), 8000).ReadSamples(make([]float32, 3))
		if !errors.Is(err, ErrInvalidDstSize) {
			t.Errorf("err = %v, want ErrInvalidDstSize", err)
		}
	})

	t.Run("source error", func(t *testing.T) {
		t.Parallel()

		src := newConstant(8000, 1, 10, 0)
		src.fail = errBroken
		_, err := NewResampler(src, 8000).ReadSamples(make([]float32, 8))
		if !errors.Is(err, errBroken) {
			t.Errorf("err = %v, want errBroken", err)
		}
	})

	t.Run("close reaches source", func(t *testing.T) {
		t.Parallel()

		src := newConstant(8000, 1, 10, 0)
		if err := NewResampler(src, 8000).Close(); err != nil {
			t.Fatal(err)
		}
		if !src.closed {
			t.Error("source was not closed")
		}
	})
}

func BenchmarkResampler(b *testing.B) {
	buf := make([]float32, 4096)
	b.ReportAllocs()

	for range b.N {
		r := NewResampler(newSine(44100, 2, 44100, 440), 16000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
