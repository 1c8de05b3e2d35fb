// SPDX-License-Identifier: EPL-2.0

package sf2

// Bank is a decoded SoundFont bank. It is built by a single Decode call and
// not modified afterwards, so it may be read from any number of goroutines.
type Bank struct {
	Version  VersionTag
	Engine   string // isng
	Engineer string // IENG
	Name     string // INAM
	Software string // ISFT

	ROMName      string     // irom
	ROMVersion   VersionTag // iver
	CreationDate string     // ICRD
	Product      string     // IPRD
	Copyright    string     // ICOP
	Comments     string     // ICMT

	Presets          []PresetHeader
	PresetBags       []Bag
	PresetGenerators []Generator
	PresetModulators []Modulator

	Instruments          []InstrumentHeader
	InstrumentBags       []Bag
	InstrumentGenerators []Generator
	InstrumentModulators []Modulator

	Samples []SampleHeader

	// SampleData is the smpl chunk as signed 16-bit PCM.
	SampleData []int16
	// SampleData24 holds the sm24 low bytes when the bank carries them.
	SampleData24 []byte
}

// Span is a half open index range [Start, End).
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

// Region is one zone of a preset or instrument, expressed as ranges into
// the owning bank's generator and modulator tables. Bag is the index of the
// bag record the zone came from.
type Region struct {
	Bag        int
	Generators Span
	Modulators Span
}

// Zone is a Region resolved against a bank's tables. Its slices alias the
// bank and must not be modified.
type Zone struct {
	Generators []Generator
	Modulators []Modulator
}

// Amount returns the amount of the last generator in z with operator op.
func (z Zone) Amount(op Operator) (Amount, bool) {
	for i := len(z.Generators) - 1; i >= 0; i-- {
		if z.Generators[i].Operator == op {
			return z.Generators[i].Amount, true
		}
	}
	return 0, false
}

// KeyRange returns the zone's key range, 0-127 when it has none.
func (z Zone) KeyRange() (lo, hi uint8) { return z.rangeOf(KeyRange) }

// VelRange returns the zone's velocity range, 0-127 when it has none.
func (z Zone) VelRange() (lo, hi uint8) { return z.rangeOf(VelRange) }

func (z Zone) rangeOf(op Operator) (uint8, uint8) {
	if a, ok := z.Amount(op); ok {
		return a.Range()
	}
	return 0, 127
}

// Instrument returns the instrument a preset zone plays.
func (z Zone) Instrument() (int, bool) { return z.index(Instrument) }

// SampleID returns the sample an instrument zone plays.
func (z Zone) SampleID() (int, bool) { return z.index(SampleID) }

func (z Zone) index(op Operator) (int, bool) {
	a, ok := z.Amount(op)
	return int(a.Uint16()), ok
}

// Contains reports whether key and velocity fall in the zone's ranges.
func (z Zone) Contains(key, velocity uint8) bool {
	klo, khi := z.KeyRange()
	vlo, vhi := z.VelRange()
	return key >= klo && key <= khi && velocity >= vlo && velocity <= vhi
}

// Preset finds the preset with the given MIDI bank and program numbers.
func (b *Bank) Preset(bank, program int) (int, bool) {
	for i := range b.Presets {
		if int(b.Presets[i].Bank) == bank && int(b.Presets[i].Preset) == program {
			return i, true
		}
	}
	return -1, false
}

// PresetZones resolves the regions of preset i. It returns nil for an index
// outside the preset table.
func (b *Bank) PresetZones(i int) []Zone {
	if i < 0 || i >= len(b.Presets) {
		return nil
	}
	return zones(b.Presets[i].Regions, b.PresetGenerators, b.PresetModulators)
}

// InstrumentZones resolves the regions of instrument i. It returns nil for
// an index outside the instrument table.
func (b *Bank) InstrumentZones(i int) []Zone {
	if i < 0 || i >= len(b.Instruments) {
		return nil
	}
	return zones(b.Instruments[i].Regions, b.InstrumentGenerators, b.InstrumentModulators)
}

func zones(regions []Region, gens []Generator, mods []Modulator) []Zone {
	out := make([]Zone, len(regions))
	for i, r := range regions {
		out[i] = Zone{
			Generators: gens[r.Generators.Start:r.Generators.End:r.Generators.End],
			Modulators: mods[r.Modulators.Start:r.Modulators.End:r.Modulators.End],
		}
	}
	return out
}
