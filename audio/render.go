// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/soundfont/utils"
)

// ReadAll16 drains src into 16-bit PCM, keeping its channel layout.
func ReadAll16(src Source, bufferSize int) ([]int16, error) {
	if bufferSize <= 0 {
		bufferSize = src.BufSize()
	}
	bufferSize -= bufferSize % src.Channels()
	if bufferSize <= 0 {
		bufferSize = src.Channels()
	}

	var pcm []int16
	buf := make([]float32, bufferSize)
	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm = append(pcm, utils.Float32ToInt16(v))
		}
		if err == io.EOF {
			return pcm, nil
		}
		if err != nil {
			return pcm, fmt.Errorf("%w", err)
		}
	}
}

// ResampleToMono16 resamples src to targetRate, mixes it down to mono and
// collects the result as 16-bit PCM. It returns the output rate alongside.
//
//	src, _ := sf2.OpenSample(bank, 0, nil)
//	pcm, rate, err := audio.ResampleToMono16(src, 22050, 4096)
func ResampleToMono16(src Source, targetRate int, bufferSize int) ([]int16, int, error) {
	r, err := NewPitchResampler(src, targetRate, 1)
	if err != nil {
		return nil, targetRate, err
	}
	pcm, err := ReadAll16(NewMonoMixer(r), bufferSize)
	if err != nil {
		return nil, targetRate, err
	}
	return pcm, targetRate, nil
}
