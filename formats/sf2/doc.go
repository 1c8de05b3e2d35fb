// SPDX-License-Identifier: EPL-2.0

// Package sf2 decodes SoundFont 2 banks into an in-memory object model.
//
// A bank is a RIFF file of form type "sfbk" holding three LIST chunks:
//   - INFO: version and descriptive text
//   - sdta: the 16-bit sample data (and optionally the sm24 extension)
//   - pdta: nine record tables describing presets, instruments and samples
//
// Every pdta table ends with a terminal record. The decoder keeps real
// records only, and uses each terminal record to close the index range of
// the last real record before it.
//
// # Decoding
//
//	bank, err := sf2.Decoder{}.DecodeFile("piano.sf2")
//	if err != nil {
//	    // errors.Is(err, sf2.ErrNotAnSf2File), sf2.ErrTruncated, sf2.ErrMalformedChunk
//	}
//	fmt.Println(bank.Name, bank.Version, len(bank.Presets))
//
// Decoding is all or nothing: a failed decode never returns a partial bank.
// A chunk that runs past the end of the input fails with ErrTruncated; a
// chunk that runs past its declared container, a record table whose size is
// not a whole number of records, an unknown generator operator and a
// decreasing index range all fail with ErrMalformedChunk.
//
// # Regions
//
// Presets and instruments carry their zones as Regions: index ranges into
// the bank's flat generator and modulator tables. PresetZones and
// InstrumentZones resolve them into Zone views:
//
//	i, ok := bank.Preset(0, 0)
//	for _, z := range bank.PresetZones(i) {
//	    if inst, ok := z.Instrument(); ok {
//	        lo, hi := z.KeyRange()
//	        fmt.Println(bank.Instruments[inst].Name, lo, hi)
//	    }
//	}
//
// # Samples
//
// SampleBuffer and LinkedBuffer return sample data as go-audio IntBuffers.
// OpenSample returns an audio.Source for the streaming pipeline of package
// audio; compressed (SF3 style) samples are decoded through the codec
// registered under "ogg".
//
// A decoded Bank is never modified and is safe for concurrent readers.
package sf2

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'soundfont.sf2'.
func tracer() tracing.Trace {
	return tracing.Select("soundfont.sf2")
}
