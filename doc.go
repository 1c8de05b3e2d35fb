// SPDX-License-Identifier: EPL-2.0

// Package soundfont reads SoundFont 2 banks and renders their samples.
//
// The decoding itself lives in formats/sf2; this package wires it to the
// audio pipeline with the codecs a typical bank needs:
//
//	bank, err := soundfont.LoadFile("GeneralUser.sf2")
//	if err != nil {
//		return err
//	}
//	i, _ := bank.Preset(0, 0)
//	fmt.Println(bank.Presets[i].Name)
//
//	// Sample 3 transposed to middle C at 22.05 kHz
//	pcm, err := soundfont.RenderSample(bank, 3, soundfont.RenderOptions{Key: 60, Rate: 22050})
//
// # Packages
//
//   - formats/sf2: the bank model, Decoder and sample access
//   - formats/vorbis: Ogg Vorbis decoding for compressed samples
//   - formats/wav: WAV export
//   - audio: Source, Resampler, MonoMixer and Gain
//   - selector: MIDI bank and program tracking over a Bank
//   - utils: PCM and SoundFont unit conversions
//
// A decoded Bank is immutable, so one bank can serve any number of
// goroutines rendering or selecting presets.
package soundfont
