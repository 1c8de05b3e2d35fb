// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"fmt"
	"math"

	"github.com/ik5/soundfont/audio"
	"github.com/ik5/soundfont/formats/sf2"
	"github.com/ik5/soundfont/utils"
)

// RenderOptions control RenderSample.
type RenderOptions struct {
	// Key is the MIDI key to play the sample at. Zero or negative keeps the
	// sample's original pitch.
	Key int
	// Rate is the output sample rate; zero keeps the sample's own rate.
	Rate int
	// Attenuation in centibels, 0 for unity gain.
	Attenuation int16
	// Codecs decodes compressed samples. Nil means DefaultCodecs.
	Codecs *audio.Registry
	// BufferSize is the read size of the pipeline, 0 for the source default.
	BufferSize int
}

// unpitched marks a sample whose pitch does not follow the key.
const unpitched = 255

// PitchRatio is the playback speed that moves sample s from its recorded
// pitch to key, including its pitch correction. A key of zero or less plays
// the sample as recorded.
func PitchRatio(s sf2.SampleHeader, key int) float64 {
	if key <= 0 {
		return 1
	}
	cents := float64(s.PitchCorrection)
	switch root := int(s.OriginalPitch); {
	case root == unpitched:
	case root > 127:
		cents += float64(key-60) * 100
	default:
		cents += float64(key-root) * 100
	}
	return math.Exp2(cents / 1200)
}

// RenderSample plays sample i of b through the resampler and returns mono
// 16-bit PCM at opts.Rate.
func RenderSample(b *sf2.Bank, i int, opts RenderOptions) ([]int16, error) {
	s, err := b.Sample(i)
	if err != nil {
		return nil, err
	}
	codecs := opts.Codecs
	if codecs == nil {
		codecs = DefaultCodecs()
	}

	src, err := sf2.OpenSample(b, i, codecs)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	rate := opts.Rate
	if rate == 0 {
		rate = src.SampleRate()
	}
	r, err := audio.NewPitchResampler(src, rate, PitchRatio(s, opts.Key))
	if err != nil {
		return nil, fmt.Errorf("rendering sample %d %q: %w", i, s.Name, err)
	}

	var out audio.Source = audio.NewMonoMixer(r)
	if opts.Attenuation != 0 {
		out = audio.NewGain(out, float32(utils.CentibelsToGain(opts.Attenuation)))
	}
	pcm, err := audio.ReadAll16(out, opts.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("rendering sample %d %q: %w", i, s.Name, err)
	}
	return pcm, nil
}
