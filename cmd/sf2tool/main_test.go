// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"

	"github.com/ik5/soundfont/formats/sf2"
	"github.com/ik5/soundfont/internal/sf2test"
)

func writeBank(t *testing.T) string {
	t.Helper()

	b := sf2test.Bank{
		Major:    2,
		Minor:    1,
		Name:     "Tool Bank",
		Engine:   "EMU8000",
		Engineer: "Jos\xe9", // Windows-1252
		Info:     map[string]string{"ICOP": "(c) nobody"},
		PCM:      sf2test.Sine(96, 16),
		Presets: []sf2test.Preset{
			{Name: "Sine Lead", Zones: []sf2test.Zone{{Gens: []sf2test.Gen{{Op: sf2test.OpInstrument, Amount: 0}}}}},
			{Name: "Drums", Bank: 128, Zones: []sf2test.Zone{{Gens: []sf2test.Gen{{Op: sf2test.OpInstrument, Amount: 1}}}}},
		},
		Instruments: []sf2test.Instrument{
			{Name: "Sine", Zones: []sf2test.Zone{{Gens: []sf2test.Gen{{Op: sf2test.OpSampleID, Amount: 0}}}}},
			{Name: "Kit", Zones: []sf2test.Zone{
				{Gens: []sf2test.Gen{{Op: sf2test.OpKeyRange, Amount: sf2test.Range(35, 59)}, {Op: sf2test.OpSampleID, Amount: 1}}},
				{Gens: []sf2test.Gen{{Op: sf2test.OpKeyRange, Amount: sf2test.Range(35, 59)}, {Op: sf2test.OpSampleID, Amount: 2}}},
			}},
		},
		Samples: []sf2test.Sample{
			{Name: "sine", Start: 0, End: 32, Rate: 22050, Pitch: 60, Type: sf2test.Mono},
			{Name: "kit L", Start: 32, End: 64, Rate: 22050, Pitch: 60, Link: 2, Type: sf2test.Left},
			{Name: "kit R", Start: 64, End: 96, Rate: 22050, Pitch: 60, Link: 1, Type: sf2test.Right},
		},
	}

	path := filepath.Join(t.TempDir(), "tool.sf2")
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runTool(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-no-color"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no command", want: "commands:"},
		{name: "unknown command", args: []string{"play"}, want: `unknown command "play"`},
		{name: "missing bank", args: []string{"presets"}, want: "usage: sf2tool presets"},
		{name: "extra argument", args: []string{"info", "a.sf2", "b.sf2"}, want: "usage: sf2tool info"},
		{name: "bad flag", args: []string{"zones", "-nope", "a.sf2", "0"}, want: "usage: sf2tool zones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runTool(t, tt.args...)
			if code != 2 {
				t.Errorf("exit code = %d, want 2", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestListings(t *testing.T) {
	path := writeBank(t)

	tests := []struct {
		args []string
		want []string
	}{
		{args: []string{"info", path}, want: []string{"2.01", "Tool Bank", "EMU8000", "José", "(c) nobody", "presets"}},
		{args: []string{"presets", path}, want: []string{"Sine Lead", "Drums", "128"}},
		{args: []string{"instruments", path}, want: []string{"Sine", "Kit"}},
		{args: []string{"samples", path}, want: []string{"sine", "kit L", "kit R", "22050", "left", "right"}},
		{args: []string{"zones", path, "0"}, want: []string{"instrument=0"}},
		{args: []string{"zones", "-instrument", path, "1"}, want: []string{"keyRange=35-59", "sampleID=2"}},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			stdout, stderr, code := runTool(t, tt.args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr %q", code, stderr)
			}
			for _, w := range tt.want {
				if !strings.Contains(stdout, w) {
					t.Errorf("output lacks %q:\n%s", w, stdout)
				}
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	path := writeBank(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing file", args: []string{"info", filepath.Join(t.TempDir(), "none.sf2")}, want: "none.sf2"},
		{name: "not a bank", args: []string{"info", os.Args[0]}, want: "not an SF2 file"},
		{name: "preset index", args: []string{"zones", path, "7"}, want: "preset index 7 out of range"},
		{name: "sample index", args: []string{"extract", path, "x"}, want: `sample index "x"`},
		{name: "mono as stereo", args: []string{"extract", "-stereo", "-o", filepath.Join(t.TempDir(), "s.wav"), path, "0"}, want: "not part of a stereo pair"},
		{name: "velocity", args: []string{"select", "-velocity", "0", path}, want: "note off"},
		{name: "channel", args: []string{"select", "-channel", "16", path}, want: "channel 16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runTool(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func readWAV(t *testing.T, path string) (channels, rate, samples int) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatalf("%s is not a valid WAV file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Format.NumChannels, buf.Format.SampleRate, len(buf.Data)
}

func TestExtract(t *testing.T) {
	path := writeBank(t)
	dir := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		channels int
		rate     int
		samples  int
	}{
		{name: "mono", args: []string{"-o", filepath.Join(dir, "mono.wav"), path, "0"}, channels: 1, rate: 22050, samples: 32},
		{name: "stereo", args: []string{"-stereo", "-o", filepath.Join(dir, "stereo.wav"), path, "2"}, channels: 2, rate: 22050, samples: 64},
		{name: "resampled", args: []string{"-rate", "44100", "-o", filepath.Join(dir, "up.wav"), path, "0"}, channels: 1, rate: 44100, samples: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runTool(t, append([]string{"extract"}, tt.args...)...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr %q", code, stderr)
			}
			out := tt.args[len(tt.args)-3]
			channels, rate, samples := readWAV(t, out)
			if channels != tt.channels || rate != tt.rate {
				t.Errorf("format = %d ch %d Hz, want %d ch %d Hz", channels, rate, tt.channels, tt.rate)
			}
			if d := samples - tt.samples; d < -2 || d > 2 {
				t.Errorf("samples = %d, want about %d", samples, tt.samples)
			}
		})
	}
}

func TestExtractDefaultName(t *testing.T) {
	path := writeBank(t)
	t.Chdir(t.TempDir())

	if _, stderr, code := runTool(t, "extract", path, "1"); code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr)
	}
	if _, err := os.Stat("kit L.wav"); err != nil {
		t.Errorf("default output file: %v", err)
	}
}

func TestExtractToStdout(t *testing.T) {
	path := writeBank(t)

	stdout, stderr, code := runTool(t, "extract", "-key", "72", "-o", "-", path, "0")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr)
	}
	if !strings.HasPrefix(stdout, "RIFF") || stdout[8:12] != "WAVE" {
		t.Errorf("stdout does not hold a WAV file: %q", stdout[:min(len(stdout), 16)])
	}
	// one octave up halves the 32 frames
	if frames := (len(stdout) - 44) / 2; frames < 14 || frames > 18 {
		t.Errorf("rendered %d frames, want about 16", frames)
	}
}

func TestSelect(t *testing.T) {
	path := writeBank(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "melodic", args: []string{"-program", "0", "-key", "72"}, want: []string{"Sine Lead", "Sine", "sine"}},
		{name: "percussion", args: []string{"-channel", "9", "-key", "40"}, want: []string{"Drums", "kit L", "kit R", "35-59"}},
		{name: "outside key range", args: []string{"-channel", "9", "-key", "80"}, want: []string{"no voices"}},
		{name: "bank fallback", args: []string{"-bank", "5", "-key", "60"}, want: []string{"Sine Lead"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append([]string{"select"}, tt.args...), path)
			stdout, stderr, code := runTool(t, args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr %q", code, stderr)
			}
			for _, w := range tt.want {
				if !strings.Contains(stdout, w) {
					t.Errorf("output lacks %q:\n%s", w, stdout)
				}
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"Piano":         "Piano",
		"Jos\xe9":       "José",
		"\x93quote\x94": "\u201cquote\u201d",
		"Grand \u00e9":  "Grand \u00e9",
	}
	for in, want := range tests {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"":         "sample",
		"Piano C4": "Piano C4",
		"a/b:c":    "a_b_c",
		`x\y?`:     "x_y_",
	}
	for in, want := range tests {
		if got := fileName(in); got != want {
			t.Errorf("fileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderOptionsRate(t *testing.T) {
	s := sf2.SampleHeader{SampleRate: 32000}

	if got := renderOptions(s, 60, 0); got.Rate != 32000 || got.Key != 60 {
		t.Errorf("renderOptions(no rate) = %+v, want 32000 Hz at key 60", got)
	}
	if got := renderOptions(s, 0, 44100); got.Rate != 44100 {
		t.Errorf("renderOptions(44100) rate = %d", got.Rate)
	}
}

func TestWriteFileRemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.wav")
	failed := errors.New("disk full")

	err := writeFile(path, func(f *os.File) error {
		if _, err := f.WriteString("RIFF"); err != nil {
			return err
		}
		return failed
	})
	if !errors.Is(err, failed) {
		t.Fatalf("writeFile() error = %v, want %v", err, failed)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("partial file still present: %v", err)
	}
}
