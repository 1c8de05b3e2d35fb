// SPDX-License-Identifier: EPL-2.0

// Package sf2test builds synthetic SoundFont 2 files for tests.
//
// Bank describes presets, instruments and samples at the level of zones;
// Bytes lays them out as a RIFF/sfbk file with every bag index and terminal
// record filled in. Override and Extra let a test swap or add raw chunk
// bodies to produce damaged files.
package sf2test

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"
)

// Generator operator ids used by fixtures.
const (
	OpPan        uint16 = 17
	OpInstrument uint16 = 41
	OpKeyRange   uint16 = 43
	OpVelRange   uint16 = 44
	OpSampleID   uint16 = 53
)

// Sample types.
const (
	Mono   uint16 = 1
	Right  uint16 = 2
	Left   uint16 = 4
	Linked uint16 = 8
)

// Gen is a raw generator record.
type Gen struct {
	Op     uint16
	Amount uint16
}

// Range packs a key or velocity range amount.
func Range(lo, hi uint8) uint16 { return uint16(hi)<<8 | uint16(lo) }

// Mod is a raw modulator record.
type Mod struct {
	Src       uint16
	Dest      uint16
	Amount    int16
	AmountSrc uint16
	Transform uint16
}

// Zone is one bag with its generators and modulators.
type Zone struct {
	Gens []Gen
	Mods []Mod
}

type Preset struct {
	Name    string
	Program uint16
	Bank    uint16
	Zones   []Zone
}

type Instrument struct {
	Name  string
	Zones []Zone
}

type Sample struct {
	Name       string
	Start      uint32
	End        uint32
	LoopStart  uint32
	LoopEnd    uint32
	Rate       uint32
	Pitch      uint8
	Correction int8
	Link       uint16
	Type       uint16
}

// Bank is a fixture description. The zero value encodes a file with an
// ifil chunk and terminal-only record tables.
type Bank struct {
	Major, Minor int16
	Name         string
	Engine       string
	Engineer     string
	Software     string

	// Info holds extra INFO chunks by tag, written after the standard ones
	// in tag order.
	Info map[string]string

	PCM   []int16
	PCM24 []byte
	// NoSdta leaves out the sdta list entirely.
	NoSdta bool

	Presets     []Preset
	Instruments []Instrument
	Samples     []Sample

	// Override replaces the body of a leaf chunk by tag.
	Override map[string][]byte
	// Pad follows odd sized leaf bodies with a zero pad byte.
	Pad bool
	// Extra is appended to the pdta list as additional raw chunks.
	Extra []byte
}

// Minimal returns the smallest interesting bank: version 2.01, one preset
// with one zone naming instrument 0, one instrument without zones and one
// sample header.
func Minimal() Bank {
	return Bank{
		Major: 2,
		Minor: 1,
		Presets: []Preset{{
			Name:  "Piano",
			Zones: []Zone{{Gens: []Gen{{Op: OpInstrument, Amount: 0}}}},
		}},
		Instruments: []Instrument{{Name: "Piano"}},
		Samples:     []Sample{{Name: "C4", Start: 0, End: 0, Rate: 44100, Pitch: 60, Type: Mono}},
		NoSdta:      true,
	}
}

// Bytes encodes the bank as a complete RIFF file.
func (b Bank) Bytes() []byte {
	lists := [][]byte{List("INFO", b.info()...)}
	if !b.NoSdta {
		lists = append(lists, List("sdta", b.sdta()...))
	}
	lists = append(lists, List("pdta", b.pdta()...))
	return RIFF("sfbk", lists...)
}

func (b Bank) info() [][]byte {
	ver := le(b.Major, b.Minor)
	out := [][]byte{b.chunk("ifil", ver)}
	for _, kv := range []struct{ tag, v string }{
		{"isng", b.Engine}, {"INAM", b.Name}, {"IENG", b.Engineer}, {"ISFT", b.Software},
	} {
		if kv.v != "" {
			out = append(out, b.chunk(kv.tag, zstr(kv.v)))
		}
	}
	for _, tag := range sortedKeys(b.Info) {
		out = append(out, b.chunk(tag, zstr(b.Info[tag])))
	}
	return out
}

func (b Bank) sdta() [][]byte {
	out := [][]byte{b.chunk("smpl", le(b.PCM))}
	if b.PCM24 != nil || b.Override["sm24"] != nil {
		out = append(out, b.chunk("sm24", b.PCM24))
	}
	return out
}

func (b Bank) pdta() [][]byte {
	var phdr, pbag, pmod, pgen bytes.Buffer
	var gens, mods, bags uint16
	for _, p := range b.Presets {
		phdr.Write(PresetHeader(p.Name, p.Program, p.Bank, bags))
		for _, z := range p.Zones {
			pbag.Write(le(gens, mods))
			gens, mods = writeZone(&pgen, &pmod, z, gens, mods)
			bags++
		}
	}
	phdr.Write(PresetHeader("EOP", 0, 0, bags))
	pbag.Write(le(gens, mods))
	pgen.Write(le(Gen{}))
	pmod.Write(le(Mod{}))

	var inst, ibag, imod, igen bytes.Buffer
	gens, mods, bags = 0, 0, 0
	for _, in := range b.Instruments {
		inst.Write(InstrumentHeader(in.Name, bags))
		for _, z := range in.Zones {
			ibag.Write(le(gens, mods))
			gens, mods = writeZone(&igen, &imod, z, gens, mods)
			bags++
		}
	}
	inst.Write(InstrumentHeader("EOI", bags))
	ibag.Write(le(gens, mods))
	igen.Write(le(Gen{}))
	imod.Write(le(Mod{}))

	var shdr bytes.Buffer
	for _, s := range b.Samples {
		shdr.Write(SampleHeader(s))
	}
	shdr.Write(SampleHeader(Sample{Name: "EOS"}))

	out := [][]byte{
		b.chunk("phdr", phdr.Bytes()),
		b.chunk("pbag", pbag.Bytes()),
		b.chunk("pmod", pmod.Bytes()),
		b.chunk("pgen", pgen.Bytes()),
		b.chunk("inst", inst.Bytes()),
		b.chunk("ibag", ibag.Bytes()),
		b.chunk("imod", imod.Bytes()),
		b.chunk("igen", igen.Bytes()),
		b.chunk("shdr", shdr.Bytes()),
	}
	if len(b.Extra) > 0 {
		out = append(out, b.Extra)
	}
	return out
}

func writeZone(gen, mod *bytes.Buffer, z Zone, gens, mods uint16) (uint16, uint16) {
	for _, g := range z.Gens {
		gen.Write(le(g))
	}
	for _, m := range z.Mods {
		mod.Write(le(m))
	}
	return gens + uint16(len(z.Gens)), mods + uint16(len(z.Mods))
}

func (b Bank) chunk(tag string, body []byte) []byte {
	if o, ok := b.Override[tag]; ok {
		body = o
	}
	if b.Pad {
		return PaddedChunk(tag, body)
	}
	return Chunk(tag, body)
}

// Chunk encodes a leaf chunk. Odd sized bodies are not padded.
func Chunk(tag string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(tag)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(body)))
	buf.Write(body)
	return buf.Bytes()
}

// PaddedChunk encodes a leaf chunk followed by a zero pad byte when the body
// has an odd size. The size field excludes the pad byte.
func PaddedChunk(tag string, body []byte) []byte {
	out := Chunk(tag, body)
	if len(body)%2 != 0 {
		out = append(out, 0)
	}
	return out
}

// List encodes a LIST chunk of the given form type.
func List(form string, children ...[]byte) []byte {
	return container("LIST", form, children)
}

// RIFF encodes a top level RIFF chunk.
func RIFF(form string, children ...[]byte) []byte {
	return container("RIFF", form, children)
}

func container(tag, form string, children [][]byte) []byte {
	body := []byte(form)
	for _, c := range children {
		body = append(body, c...)
	}
	return Chunk(tag, body)
}

// PresetHeader encodes a 38 byte phdr record.
func PresetHeader(name string, program, bank, bag uint16) []byte {
	var buf bytes.Buffer
	buf.Write(name20(name))
	_ = binary.Write(&buf, binary.LittleEndian, []uint16{program, bank, bag})
	_ = binary.Write(&buf, binary.LittleEndian, []uint32{0, 0, 0})
	return buf.Bytes()
}

// InstrumentHeader encodes a 22 byte inst record.
func InstrumentHeader(name string, bag uint16) []byte {
	return append(name20(name), le(bag)...)
}

// SampleHeader encodes a 46 byte shdr record.
func SampleHeader(s Sample) []byte {
	var buf bytes.Buffer
	buf.Write(name20(s.Name))
	_ = binary.Write(&buf, binary.LittleEndian, []uint32{s.Start, s.End, s.LoopStart, s.LoopEnd, s.Rate})
	buf.WriteByte(s.Pitch)
	buf.WriteByte(byte(s.Correction))
	_ = binary.Write(&buf, binary.LittleEndian, []uint16{s.Link, s.Type})
	return buf.Bytes()
}

// Records concatenates raw records, e.g. to build an Override body.
func Records(recs ...any) []byte {
	var buf bytes.Buffer
	for _, r := range recs {
		buf.Write(le(r))
	}
	return buf.Bytes()
}

// Sine returns n frames of a full scale sine with the given period in frames.
func Sine(n, period int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(math.Round(32767 * math.Sin(2*math.Pi*float64(i)/float64(period))))
	}
	return out
}

func name20(s string) []byte {
	b := make([]byte, 20)
	copy(b, s)
	return b
}

func zstr(s string) []byte {
	b := append([]byte(s), 0)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

func le(vs ...any) []byte {
	var buf bytes.Buffer
	for _, v := range vs {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
	return buf.Bytes()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
