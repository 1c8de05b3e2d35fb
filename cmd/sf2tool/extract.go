// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"

	"github.com/ik5/soundfont"
	"github.com/ik5/soundfont/formats/sf2"
	"github.com/ik5/soundfont/formats/wav"
)

// cmdExtract writes one sample as a WAV file. Without -key or -rate the
// stored PCM is written as is, with -stereo joining a linked pair. With
// either of them the sample is rendered through the resampler. Output "-"
// streams rendered PCM to standard output.
func cmdExtract(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	output := fs.String("o", "", "output file, - for standard output (default: <sample name>.wav)")
	stereo := fs.Bool("stereo", false, "write a linked left/right pair as one stereo file")
	key := fs.Int("key", 0, "render at this MIDI key")
	rate := fs.Int("rate", 0, "render at this sample rate")
	if err := parseArgs(fs, args, 2); err != nil {
		return err
	}
	b, err := loadBank(fs.Arg(0))
	if err != nil {
		return err
	}
	i, err := indexArg(fs.Arg(1), len(b.Samples), "sample")
	if err != nil {
		return err
	}
	s := b.Samples[i]

	path := *output
	if path == "" {
		path = fileName(displayName(s.Name)) + ".wav"
	}

	render := *key != 0 || *rate != 0 || path == "-" || s.Type.IsCompressed()
	if render && *stereo {
		return fmt.Errorf("-stereo cannot be combined with rendering")
	}
	if !render {
		var buf *audio.IntBuffer
		if *stereo {
			buf, err = b.LinkedBuffer(i)
		} else {
			buf, err = b.SampleBuffer(i)
		}
		if err != nil {
			return err
		}
		return writeFile(path, func(f *os.File) error {
			return wav.WriteBuffer(f, buf, &wav.Info{Title: s.Name, Comments: b.Name, Software: "sf2tool"})
		})
	}

	opts := renderOptions(s, *key, *rate)
	pcm, err := soundfont.RenderSample(b, i, opts)
	if err != nil {
		return err
	}
	if path == "-" {
		return wav.WriteWAV16(out, opts.Rate, pcm)
	}
	return writeFile(path, func(f *os.File) error {
		return wav.WriteWAV16(f, opts.Rate, pcm)
	})
}

// renderOptions defaults the output rate to the rate in the sample header.
// A compressed stream may carry its own rate, which must not leak into the
// WAV header.
func renderOptions(s sf2.SampleHeader, key, rate int) soundfont.RenderOptions {
	if rate == 0 {
		rate = int(s.SampleRate)
	}
	return soundfont.RenderOptions{Key: key, Rate: rate}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	tracer().Infof("wrote %s", path)
	return nil
}

// fileName replaces path separators and other awkward characters.
func fileName(name string) string {
	if name == "" {
		return "sample"
	}
	out := []rune(name)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			out[i] = '_'
		}
	}
	return string(out)
}
