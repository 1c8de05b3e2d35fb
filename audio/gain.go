// SPDX-License-Identifier: EPL-2.0

package audio

// Gain scales every sample of src by a constant factor.
type Gain struct {
	Source
	factor float32
}

func NewGain(src Source, factor float32) *Gain {
	return &Gain{Source: src, factor: factor}
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.Source.ReadSamples(dst)
	if g.factor != 1 {
		for i := range dst[:n] {
			dst[i] *= g.factor
		}
	}
	return n, err
}
