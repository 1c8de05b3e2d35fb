// SPDX-License-Identifier: EPL-2.0

// Command sf2tool inspects SoundFont 2 banks.
//
//	sf2tool [-trace level] [-no-color] <command> [flags] bank.sf2 ...
//
// Commands:
//
//	info         bank metadata and table sizes
//	presets      preset table
//	instruments  instrument table
//	samples      sample headers
//	zones        generators and modulators of a preset or instrument
//	extract      write a sample as WAV
//	select       resolve MIDI bank/program/note to voices
//	mcp          serve the inspection commands over MCP on stdio
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'soundfont.tool'.
func tracer() tracing.Trace {
	return tracing.Select("soundfont.tool")
}

var traceKeys = []string{"soundfont.tool", "soundfont.sf2", "soundfont.selector"}

type command struct {
	name  string
	usage string
	run   func(args []string, out io.Writer) error
}

var commands = []command{
	{"info", "info bank.sf2", cmdInfo},
	{"presets", "presets bank.sf2", cmdPresets},
	{"instruments", "instruments bank.sf2", cmdInstruments},
	{"samples", "samples bank.sf2", cmdSamples},
	{"zones", "zones [-instrument] bank.sf2 index", cmdZones},
	{"extract", "extract [-o file] [-stereo] [-key n] [-rate hz] bank.sf2 sample", cmdExtract},
	{"select", "select [-channel n] [-bank n] [-lsb n] [-program n] [-key n] [-velocity n] bank.sf2", cmdSelect},
	{"mcp", "mcp", cmdMCP},
}

// errUsage makes run print the usage text.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sf2tool", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	noColor := fs.Bool("no-color", false, "Plain output without colors")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	initDisplay(*noColor)
	configureTracing(*tlevel)

	if fs.NArg() == 0 {
		usage(stderr)
		return 2
	}
	name := fs.Arg(0)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		tracer().Debugf("running %s %v", c.name, fs.Args()[1:])
		err := c.run(fs.Args()[1:], stdout)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(stderr, "usage: sf2tool %s\n", c.usage)
			return 2
		default:
			pterm.Error.WithWriter(stderr).Println(err)
			return 1
		}
	}
	pterm.Error.WithWriter(stderr).Printfln("unknown command %q", name)
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: sf2tool [-trace level] [-no-color] <command> [flags] bank.sf2 ...")
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
}

// We use pterm for moderately fancy output.
func initDisplay(plain bool) {
	if plain {
		pterm.DisableColor()
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

var rootOnce sync.Once

// configureTracing installs trace2go with go-log tracers on first use and
// sets every package tracer to level.
func configureTracing(level string) {
	rootOnce.Do(func() {
		tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
		conf := testconfig.Conf{
			"tracing.adapter": "go",
		}
		for _, key := range traceKeys {
			conf["trace."+key] = level
		}
		if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
			fmt.Fprintln(os.Stderr, "error configuring tracing")
			return
		}
		tracing.SetTraceSelector(trace2go.Selector())
	})
	l := tracing.TraceLevelFromString(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}
