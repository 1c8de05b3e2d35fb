// SPDX-License-Identifier: EPL-2.0

// Package selector follows MIDI bank select and program change messages and
// resolves them to presets and voices of a SoundFont bank.
//
// Each of the 16 channels keeps the last bank select MSB (CC 0), LSB (CC 32)
// and program. A channel's preset is looked up as
//
//	bank MSB*128+LSB, when an LSB was sent
//	bank MSB
//	bank 0, the General MIDI fallback
//
// Channel 10 (index 9) plays percussion from bank 128 and falls back to
// program 0 of that bank.
//
//	sel := selector.New(bank)
//	sel.Handle(midi.ControlChange(0, 0, 1))
//	sel.Handle(midi.ProgramChange(0, 5))
//	voices := sel.Voices(0, 60, 100)
package selector

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'soundfont.selector'.
func tracer() tracing.Trace {
	return tracing.Select("soundfont.selector")
}
