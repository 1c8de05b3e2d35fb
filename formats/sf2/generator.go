// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Operator identifies a generator. The numbering is fixed by the SoundFont
// 2.01 format, including the unused and reserved slots.
type Operator uint16

const (
	StartAddrsOffset Operator = iota
	EndAddrsOffset
	StartloopAddrsOffset
	EndloopAddrsOffset
	StartAddrsCoarseOffset
	ModLfoToPitch
	VibLfoToPitch
	ModEnvToPitch
	InitialFilterFc
	InitialFilterQ
	ModLfoToFilterFc
	ModEnvToFilterFc
	EndAddrsCoarseOffset
	ModLfoToVolume
	Unused1
	ChorusEffectsSend
	ReverbEffectsSend
	Pan
	Unused2
	Unused3
	Unused4
	DelayModLFO
	FreqModLFO
	DelayVibLFO
	FreqVibLFO
	DelayModEnv
	AttackModEnv
	HoldModEnv
	DecayModEnv
	SustainModEnv
	ReleaseModEnv
	KeynumToModEnvHold
	KeynumToModEnvDecay
	DelayVolEnv
	AttackVolEnv
	HoldVolEnv
	DecayVolEnv
	SustainVolEnv
	ReleaseVolEnv
	KeynumToVolEnvHold
	KeynumToVolEnvDecay
	Instrument
	Reserved1
	KeyRange
	VelRange
	StartloopAddrsCoarseOffset
	Keynum
	Velocity
	InitialAttenuation
	Reserved2
	EndloopAddrsCoarseOffset
	CoarseTune
	FineTune
	SampleID
	SampleModes
	Reserved3
	ScaleTuning
	ExclusiveClass
	OverridingRootKey
	Unused5
	EndOper

	// NumOperators is the number of defined operator slots.
	NumOperators = int(EndOper) + 1
)

var operatorNames = [NumOperators]string{
	"startAddrsOffset", "endAddrsOffset", "startloopAddrsOffset", "endloopAddrsOffset",
	"startAddrsCoarseOffset", "modLfoToPitch", "vibLfoToPitch", "modEnvToPitch",
	"initialFilterFc", "initialFilterQ", "modLfoToFilterFc", "modEnvToFilterFc",
	"endAddrsCoarseOffset", "modLfoToVolume", "unused1", "chorusEffectsSend",
	"reverbEffectsSend", "pan", "unused2", "unused3", "unused4", "delayModLFO",
	"freqModLFO", "delayVibLFO", "freqVibLFO", "delayModEnv", "attackModEnv",
	"holdModEnv", "decayModEnv", "sustainModEnv", "releaseModEnv",
	"keynumToModEnvHold", "keynumToModEnvDecay", "delayVolEnv", "attackVolEnv",
	"holdVolEnv", "decayVolEnv", "sustainVolEnv", "releaseVolEnv",
	"keynumToVolEnvHold", "keynumToVolEnvDecay", "instrument", "reserved1",
	"keyRange", "velRange", "startloopAddrsCoarseOffset", "keynum", "velocity",
	"initialAttenuation", "reserved2", "endloopAddrsCoarseOffset", "coarseTune",
	"fineTune", "sampleID", "sampleModes", "reserved3", "scaleTuning",
	"exclusiveClass", "overridingRootKey", "unused5", "endOper",
}

// Valid reports whether op names one of the defined slots, reserved ones included.
func (op Operator) Valid() bool { return int(op) < NumOperators }

func (op Operator) String() string {
	if !op.Valid() {
		return fmt.Sprintf("operator(%d)", uint16(op))
	}
	return operatorNames[op]
}

// ParseOperator looks an operator up by its SoundFont name, e.g. "keyRange".
func ParseOperator(name string) (Operator, bool) {
	for i, n := range operatorNames {
		if n == name {
			return Operator(i), true
		}
	}
	return 0, false
}

// AmountKind tells which view of an Amount carries an operator's value.
type AmountKind int

const (
	KindSigned AmountKind = iota
	KindUnsigned
	KindRange
	KindIndex
	KindUnused
)

func (k AmountKind) String() string {
	switch k {
	case KindSigned:
		return "signed"
	case KindUnsigned:
		return "unsigned"
	case KindRange:
		return "range"
	case KindIndex:
		return "index"
	default:
		return "unused"
	}
}

// Kind returns the amount interpretation the format assigns to op.
func (op Operator) Kind() AmountKind {
	switch op {
	case KeyRange, VelRange:
		return KindRange
	case Instrument, SampleID:
		return KindIndex
	case SampleModes:
		return KindUnsigned
	case Unused1, Unused2, Unused3, Unused4, Unused5, Reserved1, Reserved2, Reserved3, EndOper:
		return KindUnused
	}
	if !op.Valid() {
		return KindUnused
	}
	return KindSigned
}

// Amount is the 16-bit generator value. The same two bytes are read as a
// lo/hi byte range, a signed amount or an unsigned amount depending on the
// operator.
type Amount uint16

// RangeAmount builds the amount for a lo..hi range.
func RangeAmount(lo, hi uint8) Amount { return Amount(uint16(hi)<<8 | uint16(lo)) }

// Range returns the low and high bytes.
func (a Amount) Range() (lo, hi uint8) { return uint8(a), uint8(a >> 8) }

func (a Amount) Int16() int16   { return int16(a) }
func (a Amount) Uint16() uint16 { return uint16(a) }

// Generator is one synthesis parameter of a zone.
type Generator struct {
	Operator Operator
	Amount   Amount
}

func (g Generator) String() string {
	switch g.Operator.Kind() {
	case KindRange:
		lo, hi := g.Amount.Range()
		return fmt.Sprintf("%s=%d-%d", g.Operator, lo, hi)
	case KindIndex, KindUnsigned:
		return fmt.Sprintf("%s=%d", g.Operator, g.Amount.Uint16())
	default:
		return fmt.Sprintf("%s=%d", g.Operator, g.Amount.Int16())
	}
}

func (g Generator) validate() error {
	if !g.Operator.Valid() {
		return errors.Wrapf(ErrMalformedChunk, "unknown generator operator %d", uint16(g.Operator))
	}
	return nil
}

// GeneratorSize is the on-disk size of a pgen/igen record.
const GeneratorSize = 4

func parseGenerator(b []byte) Generator {
	return Generator{
		Operator: Operator(binary.LittleEndian.Uint16(b[0:2])),
		Amount:   Amount(binary.LittleEndian.Uint16(b[2:4])),
	}
}
