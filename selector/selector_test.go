// SPDX-License-Identifier: EPL-2.0

package selector

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"

	"github.com/ik5/soundfont/formats/sf2"
	"github.com/ik5/soundfont/internal/sf2test"
)

func inst(i uint16) sf2test.Zone {
	return sf2test.Zone{Gens: []sf2test.Gen{{Op: sf2test.OpInstrument, Amount: i}}}
}

func testBank(t *testing.T) *sf2.Bank {
	t.Helper()

	fixture := sf2test.Bank{
		Major: 2,
		Minor: 1,
		PCM:   sf2test.Sine(96, 16),
		Presets: []sf2test.Preset{
			{Name: "Piano", Zones: []sf2test.Zone{inst(0)}},
			{Name: "EP", Program: 5, Zones: []sf2test.Zone{inst(0)}},
			{Name: "EP 2", Program: 5, Bank: 1, Zones: []sf2test.Zone{inst(1)}},
			{Name: "EP 2 LSB", Program: 5, Bank: 1<<7 | 1, Zones: []sf2test.Zone{inst(1)}},
			{Name: "Standard", Bank: 128, Zones: []sf2test.Zone{inst(1)}},
			{Name: "Split", Program: 7, Zones: []sf2test.Zone{
				{Gens: []sf2test.Gen{{Op: sf2test.OpPan, Amount: 100}}},
				{Gens: []sf2test.Gen{{Op: sf2test.OpKeyRange, Amount: sf2test.Range(0, 59)}, {Op: sf2test.OpInstrument, Amount: 0}}},
				{Gens: []sf2test.Gen{{Op: sf2test.OpKeyRange, Amount: sf2test.Range(60, 127)}, {Op: sf2test.OpInstrument, Amount: 1}}},
				{Gens: []sf2test.Gen{{Op: sf2test.OpInstrument, Amount: 9}}},
			}},
		},
		Instruments: []sf2test.Instrument{
			{Name: "Soft/Hard", Zones: []sf2test.Zone{
				{Gens: []sf2test.Gen{{Op: sf2test.OpPan, Amount: 0xFFCE}}},
				{Gens: []sf2test.Gen{{Op: sf2test.OpVelRange, Amount: sf2test.Range(0, 63)}, {Op: sf2test.OpSampleID, Amount: 0}}},
				{Gens: []sf2test.Gen{{Op: sf2test.OpVelRange, Amount: sf2test.Range(64, 127)}, {Op: sf2test.OpSampleID, Amount: 1}}},
			}},
			{Name: "Layer", Zones: []sf2test.Zone{
				{Gens: []sf2test.Gen{{Op: sf2test.OpSampleID, Amount: 1}}},
				{Gens: []sf2test.Gen{{Op: sf2test.OpSampleID, Amount: 2}}},
				{Gens: []sf2test.Gen{{Op: sf2test.OpSampleID, Amount: 40}}},
			}},
		},
		Samples: []sf2test.Sample{
			{Name: "soft", Start: 0, End: 32, Rate: 22050, Pitch: 60, Type: sf2test.Mono},
			{Name: "hard", Start: 32, End: 64, Rate: 22050, Pitch: 60, Type: sf2test.Mono},
			{Name: "air", Start: 64, End: 96, Rate: 22050, Pitch: 60, Type: sf2test.Mono},
		},
	}

	b, err := sf2.DecodeBytes(fixture.Bytes())
	require.NoError(t, err)
	return b
}

func presetName(t *testing.T, b *sf2.Bank, s *Selector, ch uint8) string {
	t.Helper()

	i, ok := s.Preset(ch)
	require.True(t, ok, "channel %d has no preset", ch)
	return b.Presets[i].Name
}

func TestSelectorDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "soundfont.selector")
	defer teardown()

	b := testBank(t)
	s := New(b)

	assert.Equal(t, Selection{}, s.Selection(0))
	assert.Equal(t, "Piano", presetName(t, b, s, 0))
	assert.Equal(t, "Standard", presetName(t, b, s, PercussionChannel))

	_, ok := s.Preset(16)
	assert.False(t, ok)
	assert.Equal(t, Selection{}, s.Selection(200))
}

func TestSelectorBankSelect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "soundfont.selector")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelDebug)

	b := testBank(t)
	s := New(b)

	assert.True(t, s.Handle(midi.ProgramChange(2, 5)))
	assert.Equal(t, "EP", presetName(t, b, s, 2))

	assert.True(t, s.Handle(midi.ControlChange(2, ccBankMSB, 1)))
	assert.Equal(t, "EP 2", presetName(t, b, s, 2))

	assert.True(t, s.Handle(midi.ControlChange(2, ccBankLSB, 1)))
	assert.Equal(t, "EP 2 LSB", presetName(t, b, s, 2))
	assert.Equal(t, Selection{BankMSB: 1, BankLSB: 1, Program: 5}, s.Selection(2))

	// other channels are untouched
	assert.Equal(t, "Piano", presetName(t, b, s, 3))
}

func TestSelectorFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "soundfont.selector")
	defer teardown()

	b := testBank(t)
	s := New(b)

	// bank 7 does not exist, program 5 of bank 0 does
	s.Handle(midi.ControlChange(0, ccBankMSB, 7))
	s.Handle(midi.ProgramChange(0, 5))
	assert.Equal(t, "EP", presetName(t, b, s, 0))

	// LSB without a matching bank falls back to the MSB bank
	s.Handle(midi.ControlChange(0, ccBankMSB, 1))
	s.Handle(midi.ControlChange(0, ccBankLSB, 9))
	assert.Equal(t, "EP 2", presetName(t, b, s, 0))

	// no program 99 anywhere
	s.Handle(midi.ProgramChange(1, 99))
	_, ok := s.Preset(1)
	assert.False(t, ok)
	assert.Nil(t, s.Voices(1, 60, 100))

	// drum kits fall back to program 0 of the percussion bank
	s.Handle(midi.ProgramChange(PercussionChannel, 25))
	assert.Equal(t, "Standard", presetName(t, b, s, PercussionChannel))
}

func TestSelectorIgnores(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "soundfont.selector")
	defer teardown()

	s := New(testBank(t))

	assert.False(t, s.Handle(midi.ControlChange(0, 7, 100)))
	assert.False(t, s.Handle(midi.NoteOn(0, 60, 100)))
	assert.False(t, s.Handle(midi.Pitchbend(0, 100)))
	assert.Equal(t, Selection{}, s.Selection(0))
}

func TestVoices(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "soundfont.selector")
	defer teardown()

	b := testBank(t)
	split, ok := b.Preset(0, 7)
	require.True(t, ok)

	samples := func(vs []Voice) []int {
		var out []int
		for _, v := range vs {
			out = append(out, v.Sample)
		}
		return out
	}

	// low keys play the velocity split instrument
	assert.Equal(t, []int{0}, samples(Voices(b, split, 40, 30)))
	assert.Equal(t, []int{1}, samples(Voices(b, split, 40, 100)))
	// high keys play both layers; the bad sample reference is skipped
	assert.Equal(t, []int{1, 2}, samples(Voices(b, split, 72, 100)))

	vs := Voices(b, split, 40, 30)
	require.Len(t, vs, 1)
	assert.Equal(t, split, vs[0].Preset)
	assert.Equal(t, 0, vs[0].Instrument)
	lo, hi := vs[0].PresetZone.KeyRange()
	assert.Equal(t, [2]uint8{0, 59}, [2]uint8{lo, hi})

	assert.Nil(t, Voices(b, 99, 60, 100))
}

func TestNoteOn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "soundfont.selector")
	defer teardown()

	s := New(testBank(t))
	s.Handle(midi.ProgramChange(4, 7))

	vs, ok := s.NoteOn(midi.NoteOn(4, 72, 90))
	require.True(t, ok)
	assert.Len(t, vs, 2)

	_, ok = s.NoteOn(midi.NoteOn(4, 72, 0))
	assert.False(t, ok, "velocity 0 is a note off")
	_, ok = s.NoteOn(midi.NoteOff(4, 72))
	assert.False(t, ok)
}

func TestSelectorConcurrent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "soundfont.selector")
	defer teardown()

	b := testBank(t)
	s := New(b)

	var wg sync.WaitGroup
	for ch := range uint8(8) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.Handle(midi.ProgramChange(ch, 5))
				s.Voices(ch, 60, 100)
			}
		}()
	}
	wg.Wait()

	for ch := range uint8(8) {
		assert.Equal(t, uint8(5), s.Selection(ch).Program)
	}
}
