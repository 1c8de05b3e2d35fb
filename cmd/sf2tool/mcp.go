// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ik5/soundfont/formats/sf2"
)

// bankCache keeps decoded banks by path for the lifetime of the server.
type bankCache struct {
	mtx   sync.Mutex
	banks map[string]*sf2.Bank
}

func (c *bankCache) get(path string) (*sf2.Bank, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if b, ok := c.banks[path]; ok {
		return b, nil
	}
	b, err := loadBank(path)
	if err != nil {
		return nil, err
	}
	if c.banks == nil {
		c.banks = make(map[string]*sf2.Bank)
	}
	c.banks[path] = b
	return b, nil
}

type bankHandler func(b *sf2.Bank, request mcp.CallToolRequest) (any, error)

// handle loads the bank named by the "path" argument and returns the value
// produced by h as JSON text. Failures are reported as tool errors.
func (c *bankCache) handle(h bankHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		b, err := c.get(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		v, err := h(b, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		asJSON, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(asJSON)), nil
	}
}

func pathArg() mcp.ToolOption {
	return mcp.WithString("path", mcp.Required(), mcp.Description("Path of the .sf2 file."))
}

func newMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		"sf2tool",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	s.AddTools(mcpTools(&bankCache{})...)
	return s
}

func mcpTools(cache *bankCache) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("sf2_info",
				mcp.WithDescription("Returns the metadata and table sizes of a SoundFont bank."),
				pathArg(),
			),
			Handler: cache.handle(bankInfo),
		},
		{
			Tool: mcp.NewTool("sf2_presets",
				mcp.WithDescription("Lists the presets of a SoundFont bank with their MIDI bank and program numbers."),
				pathArg(),
			),
			Handler: cache.handle(bankPresets),
		},
		{
			Tool: mcp.NewTool("sf2_samples",
				mcp.WithDescription("Lists the sample headers of a SoundFont bank."),
				pathArg(),
			),
			Handler: cache.handle(bankSamples),
		},
		{
			Tool: mcp.NewTool("sf2_zones",
				mcp.WithDescription("Returns the generators and modulators of each zone of a preset or instrument."),
				pathArg(),
				mcp.WithNumber("index", mcp.Required(), mcp.Description("Preset or instrument index.")),
				mcp.WithBoolean("instrument", mcp.Description("Index names an instrument instead of a preset.")),
			),
			Handler: cache.handle(bankZones),
		},
		{
			Tool: mcp.NewTool("sf2_select",
				mcp.WithDescription("Resolves a MIDI channel state and note to the samples the bank plays for it."),
				pathArg(),
				mcp.WithNumber("channel", mcp.Description("MIDI channel 0-15; 9 is percussion.")),
				mcp.WithNumber("bank", mcp.Description("Bank select MSB (CC 0).")),
				mcp.WithNumber("lsb", mcp.Description("Bank select LSB (CC 32).")),
				mcp.WithNumber("program", mcp.Description("Program number 0-127.")),
				mcp.WithNumber("key", mcp.Description("Note key 0-127, default 60.")),
				mcp.WithNumber("velocity", mcp.Description("Note velocity 1-127, default 100.")),
			),
			Handler: cache.handle(bankSelect),
		},
	}
}

type infoResult struct {
	Version     string `json:"version"`
	Name        string `json:"name"`
	Engine      string `json:"engine"`
	Engineer    string `json:"engineer,omitempty"`
	Software    string `json:"software,omitempty"`
	Copyright   string `json:"copyright,omitempty"`
	Comments    string `json:"comments,omitempty"`
	Presets     int    `json:"presets"`
	Instruments int    `json:"instruments"`
	Samples     int    `json:"samples"`
	Frames      int    `json:"frames"`
}

func bankInfo(b *sf2.Bank, _ mcp.CallToolRequest) (any, error) {
	return infoResult{
		Version:     b.Version.String(),
		Name:        displayName(b.Name),
		Engine:      displayName(b.Engine),
		Engineer:    displayName(b.Engineer),
		Software:    displayName(b.Software),
		Copyright:   displayName(b.Copyright),
		Comments:    displayName(b.Comments),
		Presets:     len(b.Presets),
		Instruments: len(b.Instruments),
		Samples:     len(b.Samples),
		Frames:      len(b.SampleData),
	}, nil
}

type presetResult struct {
	Index   int    `json:"index"`
	Bank    int    `json:"bank"`
	Program int    `json:"program"`
	Name    string `json:"name"`
	Zones   int    `json:"zones"`
}

func bankPresets(b *sf2.Bank, _ mcp.CallToolRequest) (any, error) {
	out := make([]presetResult, len(b.Presets))
	for i, p := range b.Presets {
		out[i] = presetResult{Index: i, Bank: int(p.Bank), Program: int(p.Preset), Name: displayName(p.Name), Zones: len(p.Regions)}
	}
	return out, nil
}

type sampleResult struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Frames    int    `json:"frames"`
	Rate      uint32 `json:"rate"`
	Key       uint8  `json:"key"`
	Cents     int8   `json:"cents"`
	Link      uint16 `json:"link"`
	LoopStart uint32 `json:"loopStart"`
	LoopEnd   uint32 `json:"loopEnd"`
}

func bankSamples(b *sf2.Bank, _ mcp.CallToolRequest) (any, error) {
	out := make([]sampleResult, len(b.Samples))
	for i, s := range b.Samples {
		out[i] = sampleResult{
			Index: i, Name: displayName(s.Name), Type: s.Type.String(), Frames: s.Frames(),
			Rate: s.SampleRate, Key: s.OriginalPitch, Cents: s.PitchCorrection, Link: s.SampleLink,
			LoopStart: s.LoopStart, LoopEnd: s.LoopEnd,
		}
	}
	return out, nil
}

type zoneResult struct {
	Generators []string `json:"generators"`
	Modulators []string `json:"modulators"`
}

func bankZones(b *sf2.Bank, request mcp.CallToolRequest) (any, error) {
	i, err := request.RequireInt("index")
	if err != nil {
		return nil, err
	}
	var zones []sf2.Zone
	if request.GetBool("instrument", false) {
		if i < 0 || i >= len(b.Instruments) {
			return nil, fmt.Errorf("instrument index %d out of range", i)
		}
		zones = b.InstrumentZones(i)
	} else {
		if i < 0 || i >= len(b.Presets) {
			return nil, fmt.Errorf("preset index %d out of range", i)
		}
		zones = b.PresetZones(i)
	}

	out := make([]zoneResult, len(zones))
	for j, z := range zones {
		out[j] = zoneResult{Generators: make([]string, 0, len(z.Generators)), Modulators: make([]string, 0, len(z.Modulators))}
		for _, g := range z.Generators {
			out[j].Generators = append(out[j].Generators, g.String())
		}
		for _, m := range z.Modulators {
			out[j].Modulators = append(out[j].Modulators, m.String())
		}
	}
	return out, nil
}

func bankSelect(b *sf2.Bank, request mcp.CallToolRequest) (any, error) {
	arg := func(key string, def, hi int) (uint8, error) {
		v := request.GetInt(key, def)
		if v < 0 || v > hi {
			return 0, fmt.Errorf("%s %d out of range 0..%d", key, v, hi)
		}
		return uint8(v), nil
	}
	var r selectRequest
	var err error
	fields := []struct {
		dst  *uint8
		key  string
		def  int
		high int
	}{
		{&r.Channel, "channel", 0, 15},
		{&r.BankMSB, "bank", 0, 127},
		{&r.BankLSB, "lsb", 0, 127},
		{&r.Program, "program", 0, 127},
		{&r.Key, "key", 60, 127},
		{&r.Velocity, "velocity", 100, 127},
	}
	for _, f := range fields {
		if *f.dst, err = arg(f.key, f.def, f.high); err != nil {
			return nil, err
		}
	}
	if r.Velocity == 0 {
		return nil, fmt.Errorf("velocity 0 is a note off")
	}
	return resolve(b, r)
}

func cmdMCP(args []string, _ io.Writer) error {
	if len(args) != 0 {
		return errUsage
	}
	tracer().Infof("starting MCP server on stdio")
	return server.ServeStdio(newMCPServer())
}
