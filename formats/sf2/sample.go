// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// SampleType is the sfSampleType field of a sample header.
type SampleType uint16

const (
	MonoSample      SampleType = 1
	RightSample     SampleType = 2
	LeftSample      SampleType = 4
	LinkedSample    SampleType = 8
	RomMonoSample   SampleType = 0x8001
	RomRightSample  SampleType = 0x8002
	RomLeftSample   SampleType = 0x8004
	RomLinkedSample SampleType = 0x8008

	// CompressedFlag marks sample data stored as an Ogg Vorbis stream.
	CompressedFlag SampleType = 0x10
	romFlag        SampleType = 0x8000
)

// IsROM reports whether the sample lives in a sound ROM.
func (t SampleType) IsROM() bool { return t&romFlag != 0 }

// IsCompressed reports whether the sample data is Ogg Vorbis compressed.
func (t SampleType) IsCompressed() bool { return t&CompressedFlag != 0 }

// Link returns the channel role with the ROM and compression flags removed.
func (t SampleType) Link() SampleType { return t &^ (romFlag | CompressedFlag) }

func (t SampleType) String() string {
	var role string
	switch t.Link() {
	case MonoSample:
		role = "mono"
	case RightSample:
		role = "right"
	case LeftSample:
		role = "left"
	case LinkedSample:
		role = "linked"
	default:
		return fmt.Sprintf("sampletype(%#04x)", uint16(t))
	}
	var flags []string
	if t.IsROM() {
		flags = append(flags, "rom")
	}
	if t.IsCompressed() {
		flags = append(flags, "ogg")
	}
	if len(flags) == 0 {
		return role
	}
	return role + "+" + strings.Join(flags, "+")
}

// SampleHeader is a shdr record. Start, End and the loop points are frame
// offsets into the bank's sample data (byte offsets into the smpl chunk for
// compressed samples).
type SampleHeader struct {
	Name            string
	Start           uint32
	End             uint32
	LoopStart       uint32
	LoopEnd         uint32
	SampleRate      uint32
	OriginalPitch   uint8
	PitchCorrection int8
	SampleLink      uint16
	Type            SampleType
}

// Frames is the number of frames between Start and End.
func (s SampleHeader) Frames() int {
	if s.End < s.Start {
		return 0
	}
	return int(s.End - s.Start)
}

func (SampleHeader) validate() error { return nil }

func parseSampleHeader(b []byte) SampleHeader {
	return SampleHeader{
		Name:            cstring(b[0:20]),
		Start:           binary.LittleEndian.Uint32(b[20:24]),
		End:             binary.LittleEndian.Uint32(b[24:28]),
		LoopStart:       binary.LittleEndian.Uint32(b[28:32]),
		LoopEnd:         binary.LittleEndian.Uint32(b[32:36]),
		SampleRate:      binary.LittleEndian.Uint32(b[36:40]),
		OriginalPitch:   b[40],
		PitchCorrection: int8(b[41]),
		SampleLink:      binary.LittleEndian.Uint16(b[42:44]),
		Type:            SampleType(binary.LittleEndian.Uint16(b[44:46])),
	}
}
