// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ik5/soundfont/internal/riffio"
)

// Record sizes on disk.
const (
	VersionSize          = 4
	PresetHeaderSize     = 38
	InstrumentHeaderSize = 22
	BagSize              = 4
	SampleHeaderSize     = 46

	nameSize = 20
)

// VersionTag is an ifil or iver version.
type VersionTag struct {
	Major int16
	Minor int16
}

func (v VersionTag) String() string { return fmt.Sprintf("%d.%02d", v.Major, v.Minor) }

// PresetHeader is a phdr record. Regions is filled in once the whole bank
// has been read.
type PresetHeader struct {
	Name       string
	Preset     uint16
	Bank       uint16
	BagIndex   uint16
	Library    uint32
	Genre      uint32
	Morphology uint32

	Regions []Region
}

func (PresetHeader) validate() error { return nil }

// InstrumentHeader is an inst record.
type InstrumentHeader struct {
	Name     string
	BagIndex uint16

	Regions []Region
}

func (InstrumentHeader) validate() error { return nil }

// Bag points a zone at its first generator and modulator. The zone ends
// where the next bag begins.
type Bag struct {
	GeneratorIndex uint16
	ModulatorIndex uint16
}

func (Bag) validate() error { return nil }

// cstring cuts a fixed width text field at its first NUL. Bytes are kept
// as they are; names are not required to be valid ASCII or UTF-8.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func decodeVersion(c *riffio.Cursor) (VersionTag, error) {
	b, err := c.ReadBytes(VersionSize)
	if err != nil {
		return VersionTag{}, err
	}
	return VersionTag{
		Major: int16(binary.LittleEndian.Uint16(b[0:2])),
		Minor: int16(binary.LittleEndian.Uint16(b[2:4])),
	}, nil
}

func parsePresetHeader(b []byte) PresetHeader {
	return PresetHeader{
		Name:       cstring(b[0:20]),
		Preset:     binary.LittleEndian.Uint16(b[20:22]),
		Bank:       binary.LittleEndian.Uint16(b[22:24]),
		BagIndex:   binary.LittleEndian.Uint16(b[24:26]),
		Library:    binary.LittleEndian.Uint32(b[26:30]),
		Genre:      binary.LittleEndian.Uint32(b[30:34]),
		Morphology: binary.LittleEndian.Uint32(b[34:38]),
	}
}

func parseInstrumentHeader(b []byte) InstrumentHeader {
	return InstrumentHeader{
		Name:     cstring(b[0:20]),
		BagIndex: binary.LittleEndian.Uint16(b[20:22]),
	}
}

func parseBag(b []byte) Bag {
	return Bag{
		GeneratorIndex: binary.LittleEndian.Uint16(b[0:2]),
		ModulatorIndex: binary.LittleEndian.Uint16(b[2:4]),
	}
}
