// SPDX-License-Identifier: EPL-2.0

// Package audio is the streaming pipeline used to preview and export
// SoundFont samples.
//
// Every stage is a Source of interleaved float32 samples in [-1, 1]:
//
//	src, _ := sf2.OpenSample(bank, i, codecs)    // sample data
//	r, _ := audio.NewPitchResampler(src, 44100, 2) // octave up at 44.1 kHz
//	out := audio.NewGain(audio.NewMonoMixer(r), 0.5)
//	pcm, err := audio.ReadAll16(out, 4096)
//
// Stages pull from the stage below on every ReadSamples call; nothing is
// buffered beyond one read. A stream ends when ReadSamples returns 0 and
// io.EOF.
//
// # Codecs
//
// Compressed sample data is decoded by an audio.Decoder looked up in a
// Registry by codec name:
//
//	codecs := audio.NewRegistry()
//	codecs.Register("ogg", vorbis.Decoder{})
//
// # Resampling
//
// Resampler interpolates with a Catmull-Rom spline over four frames. The
// pitch ratio of NewPitchResampler is how SoundFont keys map onto a sample
// recorded at its root key: a ratio of 2^(semitones/12) transposes by that
// many semitones.
package audio
