// SPDX-License-Identifier: EPL-2.0

// Package wav exports SoundFont samples as 16-bit PCM WAV files.
//
// WriteBuffer encodes a go-audio IntBuffer, such as the result of
// Bank.SampleBuffer or Bank.LinkedBuffer, through github.com/go-audio/wav
// and records the sample name in the INFO chunk:
//
//	buf, _ := bank.LinkedBuffer(i)
//	f, _ := os.Create("piano.wav")
//	err := wav.WriteBuffer(f, buf, &wav.Info{Title: bank.Samples[i].Name})
//
// WritePCM16 and WriteWAV16 write raw int16 PCM with a precomputed header
// and need no seeking, which suits pipes and standard output.
package wav
