// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ik5/soundfont"
	"github.com/ik5/soundfont/formats/sf2"
)

// parseArgs parses flags for a subcommand and checks it got exactly n
// positional arguments.
func parseArgs(fs *flag.FlagSet, args []string, n int) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != n {
		return errUsage
	}
	return nil
}

func loadBank(path string) (*sf2.Bank, error) {
	b, err := soundfont.LoadFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded %s", path)
	return b, nil
}

func indexArg(s string, limit int, what string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s index %q: %w", what, s, err)
	}
	if i < 0 || i >= limit {
		return 0, fmt.Errorf("%s index %d out of range 0..%d", what, i, limit-1)
	}
	return i, nil
}

func cmdInfo(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	b, err := loadBank(fs.Arg(0))
	if err != nil {
		return err
	}

	rows := [][]string{
		{"version", b.Version.String()},
		{"name", displayName(b.Name)},
		{"engine", displayName(b.Engine)},
	}
	optional := []struct{ k, v string }{
		{"engineer", b.Engineer},
		{"software", b.Software},
		{"rom", b.ROMName},
		{"created", b.CreationDate},
		{"product", b.Product},
		{"copyright", b.Copyright},
		{"comments", b.Comments},
	}
	if b.ROMName != "" {
		optional = append(optional, struct{ k, v string }{"rom version", b.ROMVersion.String()})
	}
	for _, o := range optional {
		if o.v != "" {
			rows = append(rows, []string{o.k, displayName(o.v)})
		}
	}
	rows = append(rows,
		[]string{"presets", itoa(len(b.Presets))},
		[]string{"instruments", itoa(len(b.Instruments))},
		[]string{"samples", itoa(len(b.Samples))},
		[]string{"sample frames", itoa(len(b.SampleData))},
		[]string{"24 bit", strconv.FormatBool(len(b.SampleData24) > 0)},
	)
	return renderTable(out, []string{"field", "value"}, rows)
}

func cmdPresets(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	b, err := loadBank(fs.Arg(0))
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(b.Presets))
	for i, p := range b.Presets {
		rows = append(rows, []string{itoa(i), itoa(p.Bank), itoa(p.Preset), displayName(p.Name), itoa(len(p.Regions))})
	}
	return renderTable(out, []string{"#", "bank", "program", "name", "zones"}, rows)
}

func cmdInstruments(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("instruments", flag.ContinueOnError)
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	b, err := loadBank(fs.Arg(0))
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(b.Instruments))
	for i, inst := range b.Instruments {
		rows = append(rows, []string{itoa(i), displayName(inst.Name), itoa(len(inst.Regions))})
	}
	return renderTable(out, []string{"#", "name", "zones"}, rows)
}

func cmdSamples(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("samples", flag.ContinueOnError)
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	b, err := loadBank(fs.Arg(0))
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(b.Samples))
	for i, s := range b.Samples {
		rows = append(rows, []string{
			itoa(i), displayName(s.Name), s.Type.String(), itoa(s.Frames()), itoa(s.SampleRate),
			itoa(s.OriginalPitch), itoa(s.PitchCorrection), itoa(s.SampleLink),
			fmt.Sprintf("%d-%d", s.LoopStart, s.LoopEnd),
		})
	}
	return renderTable(out, []string{"#", "name", "type", "frames", "rate", "key", "cents", "link", "loop"}, rows)
}

func cmdZones(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("zones", flag.ContinueOnError)
	instrument := fs.Bool("instrument", false, "index names an instrument instead of a preset")
	if err := parseArgs(fs, args, 2); err != nil {
		return err
	}
	b, err := loadBank(fs.Arg(0))
	if err != nil {
		return err
	}

	var zones []sf2.Zone
	if *instrument {
		i, err := indexArg(fs.Arg(1), len(b.Instruments), "instrument")
		if err != nil {
			return err
		}
		zones = b.InstrumentZones(i)
	} else {
		i, err := indexArg(fs.Arg(1), len(b.Presets), "preset")
		if err != nil {
			return err
		}
		zones = b.PresetZones(i)
	}

	rows := make([][]string, 0, len(zones))
	for i, z := range zones {
		rows = append(rows, []string{itoa(i), joinStrings(z.Generators), joinStrings(z.Modulators)})
	}
	return renderTable(out, []string{"zone", "generators", "modulators"}, rows)
}

func joinStrings[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}
