// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"

	"github.com/ik5/soundfont/formats/sf2"
	"github.com/ik5/soundfont/selector"
)

// selectRequest is a channel state plus the note to resolve.
type selectRequest struct {
	Channel  uint8
	BankMSB  uint8
	BankLSB  uint8
	Program  uint8
	Key      uint8
	Velocity uint8
}

// messages is the MIDI stream that puts a channel into the requested state
// and plays the note.
func (r selectRequest) messages() []midi.Message {
	return []midi.Message{
		midi.ControlChange(r.Channel, 0, r.BankMSB),
		midi.ControlChange(r.Channel, 32, r.BankLSB),
		midi.ProgramChange(r.Channel, r.Program),
		midi.NoteOn(r.Channel, r.Key, r.Velocity),
	}
}

type voiceRow struct {
	Preset     string `json:"preset"`
	Instrument string `json:"instrument"`
	Sample     string `json:"sample"`
	SampleID   int    `json:"sampleId"`
	Keys       string `json:"keys"`
	Velocities string `json:"velocities"`
}

// resolve feeds the request through a selector and returns its voices.
func resolve(b *sf2.Bank, r selectRequest) ([]voiceRow, error) {
	if r.Channel >= selector.Channels {
		return nil, fmt.Errorf("channel %d out of range 0..%d", r.Channel, selector.Channels-1)
	}
	sel := selector.New(b)
	var voices []selector.Voice
	for _, msg := range r.messages() {
		if vs, ok := sel.NoteOn(msg); ok {
			voices = vs
			continue
		}
		sel.Handle(msg)
	}

	rows := make([]voiceRow, 0, len(voices))
	for _, v := range voices {
		klo, khi := v.InstrumentZone.KeyRange()
		vlo, vhi := v.InstrumentZone.VelRange()
		rows = append(rows, voiceRow{
			Preset:     displayName(b.Presets[v.Preset].Name),
			Instrument: displayName(b.Instruments[v.Instrument].Name),
			Sample:     displayName(b.Samples[v.Sample].Name),
			SampleID:   v.Sample,
			Keys:       fmt.Sprintf("%d-%d", klo, khi),
			Velocities: fmt.Sprintf("%d-%d", vlo, vhi),
		})
	}
	return rows, nil
}

func cmdSelect(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	channel := fs.Uint("channel", 0, "MIDI channel 0-15, 9 for percussion")
	msb := fs.Uint("bank", 0, "bank select MSB (CC 0)")
	lsb := fs.Uint("lsb", 0, "bank select LSB (CC 32)")
	program := fs.Uint("program", 0, "program 0-127")
	key := fs.Uint("key", 60, "note key 0-127")
	velocity := fs.Uint("velocity", 100, "note velocity 1-127")
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	for _, v := range []*uint{msb, lsb, program, key, velocity} {
		if *v > 127 {
			return fmt.Errorf("value %d out of MIDI range 0..127", *v)
		}
	}
	if *velocity == 0 {
		return fmt.Errorf("velocity 0 is a note off")
	}
	b, err := loadBank(fs.Arg(0))
	if err != nil {
		return err
	}

	rows, err := resolve(b, selectRequest{
		Channel:  uint8(min(*channel, 255)),
		BankMSB:  uint8(*msb),
		BankLSB:  uint8(*lsb),
		Program:  uint8(*program),
		Key:      uint8(*key),
		Velocity: uint8(*velocity),
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "no voices")
		return err
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Preset, r.Instrument, itoa(r.SampleID), r.Sample, r.Keys, r.Velocities})
	}
	return renderTable(out, []string{"preset", "instrument", "#", "sample", "keys", "velocities"}, data)
}
