// SPDX-License-Identifier: EPL-2.0

package selector

import (
	"github.com/ik5/soundfont/formats/sf2"
)

// Voice is one sample a note plays: a preset zone, one of the zones of its
// instrument, and that zone's sample.
type Voice struct {
	Preset         int
	Instrument     int
	Sample         int
	PresetZone     sf2.Zone
	InstrumentZone sf2.Zone
}

// Voices returns the voices preset p of b plays for key and velocity.
// Zones without an instrument or sample generator (global zones) are
// skipped, as are references past the end of the instrument or sample
// tables.
func Voices(b *sf2.Bank, p int, key, velocity uint8) []Voice {
	var out []Voice
	for _, pz := range b.PresetZones(p) {
		inst, ok := pz.Instrument()
		if !ok || inst >= len(b.Instruments) || !pz.Contains(key, velocity) {
			continue
		}
		for _, iz := range b.InstrumentZones(inst) {
			smp, ok := iz.SampleID()
			if !ok || smp >= len(b.Samples) || !iz.Contains(key, velocity) {
				continue
			}
			out = append(out, Voice{
				Preset:         p,
				Instrument:     inst,
				Sample:         smp,
				PresetZone:     pz,
				InstrumentZone: iz,
			})
		}
	}
	return out
}

// Voices resolves channel ch and returns the voices of its preset for a
// note. It returns nil when the channel has no preset.
func (s *Selector) Voices(ch, key, velocity uint8) []Voice {
	p, ok := s.Preset(ch)
	if !ok {
		return nil
	}
	return Voices(s.bank, p, key, velocity)
}
