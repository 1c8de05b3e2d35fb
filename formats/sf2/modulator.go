// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Controller is a packed modulator source (SFModulator):
//
//	bits 0-6   controller index
//	bit  7     palette: 0 general controller, 1 MIDI continuous controller
//	bit  8     direction: 0 min to max, 1 max to min
//	bit  9     polarity: 0 unipolar, 1 bipolar
//	bits 10-15 curve type
type Controller uint16

const (
	ctrlIndexMask   = 0x007F
	ctrlCCBit       = 1 << 7
	ctrlDirBit      = 1 << 8
	ctrlPolarityBit = 1 << 9
	ctrlCurveShift  = 10
	ctrlCurveMask   = 0x3F
)

// General controller palette indices.
const (
	NoController          uint8 = 0
	NoteOnVelocity        uint8 = 2
	NoteOnKeyNumber       uint8 = 3
	PolyPressure          uint8 = 10
	ChannelPressure       uint8 = 13
	PitchWheel            uint8 = 14
	PitchWheelSensitivity uint8 = 16
	LinkController        uint8 = 127
)

// Curve is the mapping shape applied to a controller's value.
type Curve uint8

const (
	CurveLinear Curve = iota
	CurveConcave
	CurveConvex
	CurveSwitch
)

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveConcave:
		return "concave"
	case CurveConvex:
		return "convex"
	case CurveSwitch:
		return "switch"
	}
	return fmt.Sprintf("curve(%d)", uint8(c))
}

// NewController packs the controller fields. Index is truncated to 7 bits
// and curve to 6 bits.
func NewController(index uint8, cc, maxToMin, bipolar bool, curve Curve) Controller {
	v := uint16(index) & ctrlIndexMask
	if cc {
		v |= ctrlCCBit
	}
	if maxToMin {
		v |= ctrlDirBit
	}
	if bipolar {
		v |= ctrlPolarityBit
	}
	v |= (uint16(curve) & ctrlCurveMask) << ctrlCurveShift
	return Controller(v)
}

// Index is the controller number within its palette.
func (c Controller) Index() uint8 { return uint8(c & ctrlIndexMask) }

// CC reports whether Index refers to a MIDI continuous controller.
func (c Controller) CC() bool { return c&ctrlCCBit != 0 }

// MaxToMin reports a negative direction mapping.
func (c Controller) MaxToMin() bool { return c&ctrlDirBit != 0 }

// Bipolar reports a -1..1 mapping instead of 0..1.
func (c Controller) Bipolar() bool { return c&ctrlPolarityBit != 0 }

func (c Controller) Curve() Curve { return Curve((c >> ctrlCurveShift) & ctrlCurveMask) }

// IsNone reports the "no controller" source, which makes a modulator inert.
func (c Controller) IsNone() bool { return !c.CC() && c.Index() == NoController }

func (c Controller) String() string {
	palette := "gc"
	if c.CC() {
		palette = "cc"
	}
	dir, pol := "+", "uni"
	if c.MaxToMin() {
		dir = "-"
	}
	if c.Bipolar() {
		pol = "bi"
	}
	return fmt.Sprintf("%s%d/%s/%s/%s", palette, c.Index(), dir, pol, c.Curve())
}

// Transform is applied to the modulator output before it reaches the destination.
type Transform uint16

const (
	TransformLinear        Transform = 0
	TransformAbsoluteValue Transform = 2
)

func (t Transform) String() string {
	switch t {
	case TransformLinear:
		return "linear"
	case TransformAbsoluteValue:
		return "absolute"
	}
	return fmt.Sprintf("transform(%d)", uint16(t))
}

// linkBit marks a modulator destination that feeds another modulator.
const linkBit = 0x8000

// Modulator routes a controller to a generator destination.
type Modulator struct {
	Source       Controller
	Destination  Operator
	Amount       int16
	AmountSource Controller
	Transform    Transform
}

// Link reports whether the destination is another modulator of the same
// zone, and which one.
func (m Modulator) Link() (index int, ok bool) {
	if uint16(m.Destination)&linkBit == 0 {
		return 0, false
	}
	return int(uint16(m.Destination) &^ linkBit), true
}

func (m Modulator) String() string {
	dest := m.Destination.String()
	if i, ok := m.Link(); ok {
		dest = fmt.Sprintf("mod#%d", i)
	}
	return fmt.Sprintf("%s*%s -> %s %+d (%s)", m.Source, m.AmountSource, dest, m.Amount, m.Transform)
}

func (m Modulator) validate() error {
	if _, linked := m.Link(); !linked && !m.Destination.Valid() {
		return errors.Wrapf(ErrMalformedChunk, "unknown modulator destination %d", uint16(m.Destination))
	}
	switch m.Transform {
	case TransformLinear, TransformAbsoluteValue:
	default:
		return errors.Wrapf(ErrMalformedChunk, "unknown modulator transform %d", uint16(m.Transform))
	}
	return nil
}

// ModulatorSize is the on-disk size of a pmod/imod record.
const ModulatorSize = 10

func parseModulator(b []byte) Modulator {
	return Modulator{
		Source:       Controller(binary.LittleEndian.Uint16(b[0:2])),
		Destination:  Operator(binary.LittleEndian.Uint16(b[2:4])),
		Amount:       int16(binary.LittleEndian.Uint16(b[4:6])),
		AmountSource: Controller(binary.LittleEndian.Uint16(b[6:8])),
		Transform:    Transform(binary.LittleEndian.Uint16(b[8:10])),
	}
}
