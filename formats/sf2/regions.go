// SPDX-License-Identifier: EPL-2.0

package sf2

import "github.com/pkg/errors"

// zoneTable is the bag table of one owner kind together with the sizes of
// the generator and modulator tables the bags index.
type zoneTable struct {
	bags       []Bag
	terminal   Bag // sentinel bag, closes the last real bag
	generators int
	modulators int
}

func (t zoneTable) bag(j int) Bag {
	if j < len(t.bags) {
		return t.bags[j]
	}
	return t.terminal
}

// regions cuts the bags in [first, last) into regions.
func (t zoneTable) regions(first, last int) ([]Region, error) {
	if first > last {
		return nil, errors.Wrapf(ErrMalformedChunk, "bag range %d..%d decreases", first, last)
	}
	if last > len(t.bags) {
		return nil, errors.Wrapf(ErrMalformedChunk, "bag range %d..%d exceeds %d bags", first, last, len(t.bags))
	}

	out := make([]Region, 0, last-first)
	for j := first; j < last; j++ {
		cur, next := t.bag(j), t.bag(j+1)
		gens, err := span("generator", cur.GeneratorIndex, next.GeneratorIndex, t.generators)
		if err != nil {
			return nil, errors.Wrapf(err, "bag %d", j)
		}
		mods, err := span("modulator", cur.ModulatorIndex, next.ModulatorIndex, t.modulators)
		if err != nil {
			return nil, errors.Wrapf(err, "bag %d", j)
		}
		out = append(out, Region{Bag: j, Generators: gens, Modulators: mods})
	}
	return out, nil
}

func span(what string, start, end uint16, limit int) (Span, error) {
	s := Span{Start: int(start), End: int(end)}
	if s.Start > s.End {
		return s, errors.Wrapf(ErrMalformedChunk, "%s range %d..%d decreases", what, s.Start, s.End)
	}
	if s.End > limit {
		return s, errors.Wrapf(ErrMalformedChunk, "%s range %d..%d exceeds %d records", what, s.Start, s.End, limit)
	}
	return s, nil
}

// resolvePresets fills in Regions for every preset. terminal is the bag
// index of the phdr sentinel.
func resolvePresets(b *Bank, terminal uint16, bags zoneTable) error {
	for i := range b.Presets {
		end := terminal
		if i+1 < len(b.Presets) {
			end = b.Presets[i+1].BagIndex
		}
		regions, err := bags.regions(int(b.Presets[i].BagIndex), int(end))
		if err != nil {
			return errors.Wrapf(err, "preset %d %q", i, b.Presets[i].Name)
		}
		b.Presets[i].Regions = regions
	}
	return nil
}

// resolveInstruments fills in Regions for every instrument. terminal is the
// bag index of the inst sentinel.
func resolveInstruments(b *Bank, terminal uint16, bags zoneTable) error {
	for i := range b.Instruments {
		end := terminal
		if i+1 < len(b.Instruments) {
			end = b.Instruments[i+1].BagIndex
		}
		regions, err := bags.regions(int(b.Instruments[i].BagIndex), int(end))
		if err != nil {
			return errors.Wrapf(err, "instrument %d %q", i, b.Instruments[i].Name)
		}
		b.Instruments[i].Regions = regions
	}
	return nil
}
