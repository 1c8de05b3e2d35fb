// SPDX-License-Identifier: EPL-2.0

package selector

import (
	"sync"

	"gitlab.com/gomidi/midi/v2"

	"github.com/ik5/soundfont/formats/sf2"
)

const (
	// Channels is the number of MIDI channels.
	Channels = 16
	// PercussionChannel is MIDI channel 10, zero based.
	PercussionChannel = 9
	// PercussionBank is the SoundFont bank holding drum kits.
	PercussionBank = 128

	ccBankMSB = 0
	ccBankLSB = 32
)

// Selection is the bank and program state of one channel.
type Selection struct {
	BankMSB uint8
	BankLSB uint8
	Program uint8
}

// Selector tracks bank and program per channel. It is safe for concurrent
// use, so a MIDI listener may feed it while other goroutines resolve voices.
type Selector struct {
	bank *sf2.Bank

	mtx      sync.RWMutex
	channels [Channels]Selection
}

func New(b *sf2.Bank) *Selector {
	return &Selector{bank: b}
}

// Handle applies msg. It reports whether the message changed a channel's
// selection; everything but bank select and program change is ignored.
func (s *Selector) Handle(msg midi.Message) bool {
	var ch, ctrl, val uint8

	switch {
	case msg.GetProgramChange(&ch, &val):
		s.mtx.Lock()
		defer s.mtx.Unlock()
		s.channels[ch].Program = val
		tracer().Debugf("channel %d program %d", ch, val)
		return true

	case msg.GetControlChange(&ch, &ctrl, &val):
		s.mtx.Lock()
		defer s.mtx.Unlock()
		switch ctrl {
		case ccBankMSB:
			s.channels[ch].BankMSB = val
		case ccBankLSB:
			s.channels[ch].BankLSB = val
		default:
			return false
		}
		tracer().Debugf("channel %d bank select cc%d=%d", ch, ctrl, val)
		return true
	}
	return false
}

// Selection returns the state of channel ch. Channels outside 0-15 read as
// the zero selection.
func (s *Selector) Selection(ch uint8) Selection {
	if ch >= Channels {
		return Selection{}
	}
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.channels[ch]
}

// Preset resolves channel ch to a preset index of the bank.
func (s *Selector) Preset(ch uint8) (int, bool) {
	if ch >= Channels {
		return -1, false
	}
	sel := s.Selection(ch)
	program := int(sel.Program)

	if ch == PercussionChannel {
		if i, ok := s.bank.Preset(PercussionBank, program); ok {
			return i, true
		}
		return s.bank.Preset(PercussionBank, 0)
	}

	if sel.BankLSB != 0 {
		if i, ok := s.bank.Preset(int(sel.BankMSB)<<7|int(sel.BankLSB), program); ok {
			return i, true
		}
	}
	if i, ok := s.bank.Preset(int(sel.BankMSB), program); ok {
		return i, true
	}
	if sel.BankMSB != 0 || sel.BankLSB != 0 {
		tracer().Infof("channel %d: no preset %d:%d, falling back to bank 0", ch, sel.BankMSB, program)
	}
	return s.bank.Preset(0, program)
}

// NoteOn resolves a note on message against the channel's preset. It
// reports false for any other message, including a note on with velocity 0.
func (s *Selector) NoteOn(msg midi.Message) ([]Voice, bool) {
	var ch, key, vel uint8
	if !msg.GetNoteStart(&ch, &key, &vel) {
		return nil, false
	}
	return s.Voices(ch, key, vel), true
}
