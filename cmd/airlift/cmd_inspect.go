package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/biotsim/airlift/internal"
	"github.com/biotsim/airlift/internal/wasm"
)

type InspectParams struct {
	GlobalSettings
	Path string
}

//go:embed cmd_inspect_help.txt
var inspectHelp string

func init() {
	inspectHelp = strings.TrimSpace(internal.Colorize(inspectHelp))
}

func GetInspectParams(settings GlobalSettings, args []string) (*InspectParams, error) {
	flagset := flag.NewFlagSet("inspect", flag.ExitOnError)

	flagset.Usage = func() {
		fmt.Fprintln(flagset.Output(), inspectHelp)
		flagset.PrintDefaults()
	}

	params := InspectParams{GlobalSettings: settings}

	RegisterGlobalFlags(flagset, &params.GlobalSettings)

	flagset.Parse(args)

	params.Path = flagset.Arg(0)

	if params.Path == "" {
		cfg, err := getConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read environment config: %w", err)
		}
		params.Path = cfg.PublishedPath()
	}

	return &params, nil
}

func Inspect(ctx context.Context, params InspectParams) error {
	defer internal.DebugTimer(ctx, "inspect")()

	data, err := wasm.Load(ctx, params.Path)
	if err != nil {
		return fmt.Errorf("failed to load artifact: %w", err)
	}

	sections, err := wasm.Sections(data)
	if err != nil {
		return fmt.Errorf("failed to read sections: %w", err)
	}

	valid := "yes"
	if err := wasm.Verify(ctx, data); err != nil {
		valid = err.Error()
	}

	stdout := internal.Stdout(ctx)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleRounded)

	tbl.AppendRow(table.Row{"artifact", params.Path})
	tbl.AppendRow(table.Row{"size", fmt.Sprintf("%d bytes", len(data))})
	tbl.AppendRow(table.Row{"sha1", wasm.Checksum(data)})
	tbl.AppendRow(table.Row{"valid", valid})

	if _, err := io.WriteString(stdout, tbl.Render()+"\n"); err != nil {
		return err
	}

	tbl = table.NewWriter()
	tbl.SetStyle(table.StyleRounded)

	tbl.AppendHeader(table.Row{"section", "bytes"})
	for _, section := range sections {
		tbl.AppendRow(table.Row{section.Name, section.Size})
	}

	if _, err := io.WriteString(stdout, tbl.Render()+"\n"); err != nil {
		return err
	}

	if code, ok := internal.Find(sections, func(section wasm.Section) bool { return section.ID == wasm.SectionCode }); ok && len(data) > 0 {
		_, err := fmt.Fprintf(stdout, "code section accounts for %.1f%% of the binary\n", float64(code.Size)/float64(len(data))*100)
		return err
	}

	return nil
}
