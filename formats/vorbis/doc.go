// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into audio.Source values.
//
// SoundFont banks in the SF3 layout store each sample as its own Ogg Vorbis
// stream inside the smpl chunk and flag it with sample type bit 0x10. The
// sf2 package hands those bytes to whatever decoder is registered under
// "ogg":
//
//	codecs := audio.NewRegistry()
//	codecs.Register(sf2.CodecOgg, vorbis.Decoder{})
//	src, err := sf2.OpenSample(bank, i, codecs)
//
// Decoding uses github.com/jfreymuth/oggvorbis. Samples are float32 in
// [-1, 1], interleaved when the stream has more than one channel.
package vorbis
