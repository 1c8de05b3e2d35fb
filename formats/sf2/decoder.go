// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/ik5/soundfont/internal/riffio"
	"github.com/pkg/errors"
)

var (
	sfbkID = [4]byte{'s', 'f', 'b', 'k'}
	infoID = [4]byte{'I', 'N', 'F', 'O'}
	sdtaID = [4]byte{'s', 'd', 't', 'a'}
	pdtaID = [4]byte{'p', 'd', 't', 'a'}
)

// Decoder reads SoundFont 2 banks. The zero value is ready to use.
type Decoder struct {
	// MaxSize caps the number of bytes read from the input. Zero means no limit.
	MaxSize int64
}

// Decode reads a whole bank from r. It either returns a fully populated bank
// or an error; there is no partial result.
func (d Decoder) Decode(r io.Reader) (*Bank, error) {
	data, err := d.readAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// DecodeFile opens path, decodes it and closes it again on every path.
func (d Decoder) DecodeFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	if d.MaxSize > 0 {
		if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() && fi.Size() > d.MaxSize {
			return nil, errors.Wrapf(ErrInputTooLarge, "%s is %d bytes", path, fi.Size())
		}
	}
	bank, err := d.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return bank, nil
}

func (d Decoder) readAll(r io.Reader) ([]byte, error) {
	if d.MaxSize <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading sf2 data")
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, d.MaxSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading sf2 data")
	}
	if int64(len(data)) > d.MaxSize {
		return nil, errors.Wrapf(ErrInputTooLarge, "limit is %d bytes", d.MaxSize)
	}
	return data, nil
}

// DecodeBytes decodes a bank held in memory. The bank does not retain data.
func DecodeBytes(data []byte) (*Bank, error) {
	a := &assembler{bank: &Bank{}}
	c := riffio.NewCursor(data)
	if err := a.run(c); err != nil {
		if errors.Is(err, riffio.ErrOverrun) {
			err = errors.Wrap(ErrMalformedChunk, err.Error())
		}
		tracer().Debugf("sf2 decode failed: %v", err)
		return nil, err
	}

	b := a.bank
	tracer().Infof("sf2 bank %q v%s: %d presets, %d instruments, %d samples, %d sample frames",
		b.Name, b.Version, len(b.Presets), len(b.Instruments), len(b.Samples), len(b.SampleData))
	return b, nil
}

// assembler walks the chunk tree and fills the flat tables of a bank. The
// terminal records are kept because they close the last index range of
// their table.
type assembler struct {
	bank *Bank

	presetEnd     PresetHeader
	presetBagEnd  Bag
	instrumentEnd InstrumentHeader
	instBagEnd    Bag
}

func (a *assembler) run(c *riffio.Cursor) error {
	if c.Remaining() < riffio.HeaderSize {
		id, err := c.Tag()
		if err != nil || id != riffio.RIFFID {
			return errors.Wrap(ErrNotAnSf2File, "input too short for a RIFF header")
		}
		return errors.Wrap(ErrTruncated, "RIFF header")
	}
	hdr, err := riffio.ReadHeader(c)
	if err != nil {
		return errors.Wrap(err, "RIFF header")
	}
	if hdr.ID != riffio.RIFFID {
		return errors.Wrapf(ErrNotAnSf2File, "found %q instead of RIFF", hdr.Tag())
	}
	form, err := c.Tag()
	if err != nil {
		return errors.Wrap(err, "RIFF form type")
	}
	if form != sfbkID {
		return errors.Wrapf(ErrNotAnSf2File, "found RIFF form %q instead of sfbk", form[:])
	}
	if hdr.Size < riffio.ListTypeSize {
		return errors.Wrapf(ErrMalformedChunk, "RIFF size %d", hdr.Size)
	}
	body, err := c.Sub(int(hdr.Size) - riffio.ListTypeSize)
	if err != nil {
		return errors.Wrapf(err, "RIFF body of %d bytes", hdr.Size)
	}

	err = riffio.Each(body, func(ch riffio.Chunk, sub *riffio.Cursor) error {
		if ch.ID != riffio.ListID {
			tracer().Debugf("skipping top level chunk %v", ch)
			return nil
		}
		form, err := sub.Tag()
		if err != nil {
			return errors.Wrapf(ErrMalformedChunk, "LIST at 0x%X has no form type", sub.Pos())
		}
		tracer().Debugf("LIST %q at 0x%X, %d bytes", form[:], sub.Pos(), ch.Size)
		switch form {
		case infoID:
			return a.info(sub)
		case sdtaID:
			return a.sdta(sub)
		case pdtaID:
			return a.pdta(sub)
		}
		tracer().Debugf("skipping LIST %q", form[:])
		return nil
	})
	if err != nil {
		return err
	}
	return a.resolve()
}

func (a *assembler) info(c *riffio.Cursor) error {
	b := a.bank
	return riffio.Each(c, func(ch riffio.Chunk, sub *riffio.Cursor) error {
		var err error
		switch ch.Tag() {
		case "ifil":
			b.Version, err = decodeVersion(sub)
		case "iver":
			b.ROMVersion, err = decodeVersion(sub)
		case "isng":
			b.Engine = text(sub)
		case "IENG":
			b.Engineer = text(sub)
		case "INAM":
			b.Name = text(sub)
		case "ISFT":
			b.Software = text(sub)
		case "irom":
			b.ROMName = text(sub)
		case "ICRD":
			b.CreationDate = text(sub)
		case "IPRD":
			b.Product = text(sub)
		case "ICOP":
			b.Copyright = text(sub)
		case "ICMT":
			b.Comments = text(sub)
		default:
			tracer().Debugf("skipping INFO chunk %v", ch)
		}
		if err != nil {
			return errors.Wrapf(err, "INFO %s at 0x%X", ch.Tag(), sub.Pos())
		}
		return nil
	})
}

func text(c *riffio.Cursor) string {
	b, _ := c.ReadBytes(c.Remaining())
	return cstring(b)
}

func (a *assembler) sdta(c *riffio.Cursor) error {
	b := a.bank
	return riffio.Each(c, func(ch riffio.Chunk, sub *riffio.Cursor) error {
		switch ch.Tag() {
		case "smpl":
			if ch.Size%2 != 0 {
				return errors.Wrapf(ErrMalformedChunk, "smpl size %d is odd", ch.Size)
			}
			raw, err := sub.ReadBytes(int(ch.Size))
			if err != nil {
				return errors.Wrapf(err, "smpl at 0x%X", sub.Pos())
			}
			pcm := make([]int16, len(raw)/2)
			for i := range pcm {
				pcm[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
			}
			b.SampleData = append(b.SampleData, pcm...)
		case "sm24":
			raw, err := sub.ReadBytes(int(ch.Size))
			if err != nil {
				return errors.Wrapf(err, "sm24 at 0x%X", sub.Pos())
			}
			b.SampleData24 = append(b.SampleData24, raw...)
		default:
			tracer().Debugf("skipping sdta chunk %v", ch)
		}
		return nil
	})
}

func (a *assembler) pdta(c *riffio.Cursor) error {
	b := a.bank
	return riffio.Each(c, func(ch riffio.Chunk, sub *riffio.Cursor) error {
		start := sub.Pos()
		var err error
		switch ch.Tag() {
		case "phdr":
			var recs []PresetHeader
			recs, a.presetEnd, err = readTable(sub, ch, PresetHeaderSize, parsePresetHeader)
			b.Presets = append(b.Presets, recs...)
		case "pbag":
			var recs []Bag
			recs, a.presetBagEnd, err = readTable(sub, ch, BagSize, parseBag)
			b.PresetBags = append(b.PresetBags, recs...)
		case "pmod":
			var recs []Modulator
			recs, _, err = readTable(sub, ch, ModulatorSize, parseModulator)
			b.PresetModulators = append(b.PresetModulators, recs...)
		case "pgen":
			var recs []Generator
			recs, _, err = readTable(sub, ch, GeneratorSize, parseGenerator)
			b.PresetGenerators = append(b.PresetGenerators, recs...)
		case "inst":
			var recs []InstrumentHeader
			recs, a.instrumentEnd, err = readTable(sub, ch, InstrumentHeaderSize, parseInstrumentHeader)
			b.Instruments = append(b.Instruments, recs...)
		case "ibag":
			var recs []Bag
			recs, a.instBagEnd, err = readTable(sub, ch, BagSize, parseBag)
			b.InstrumentBags = append(b.InstrumentBags, recs...)
		case "imod":
			var recs []Modulator
			recs, _, err = readTable(sub, ch, ModulatorSize, parseModulator)
			b.InstrumentModulators = append(b.InstrumentModulators, recs...)
		case "igen":
			var recs []Generator
			recs, _, err = readTable(sub, ch, GeneratorSize, parseGenerator)
			b.InstrumentGenerators = append(b.InstrumentGenerators, recs...)
		case "shdr":
			var recs []SampleHeader
			recs, _, err = readTable(sub, ch, SampleHeaderSize, parseSampleHeader)
			b.Samples = append(b.Samples, recs...)
		default:
			tracer().Debugf("skipping pdta chunk %v", ch)
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "at 0x%X bytes", start)
		}
		tracer().Debugf("pdta %s at 0x%X: %d bytes", ch.Tag(), start, ch.Size)
		return nil
	})
}

func (a *assembler) resolve() error {
	b := a.bank
	presetBags := zoneTable{
		bags:       b.PresetBags,
		terminal:   a.presetBagEnd,
		generators: len(b.PresetGenerators),
		modulators: len(b.PresetModulators),
	}
	if err := resolvePresets(b, a.presetEnd.BagIndex, presetBags); err != nil {
		return errors.WithStack(err)
	}

	instBags := zoneTable{
		bags:       b.InstrumentBags,
		terminal:   a.instBagEnd,
		generators: len(b.InstrumentGenerators),
		modulators: len(b.InstrumentModulators),
	}
	if err := resolveInstruments(b, a.instrumentEnd.BagIndex, instBags); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
