package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/biotsim/airlift/internal"
	"github.com/biotsim/airlift/internal/wasm"
)

type RunParams struct {
	GlobalSettings
	Path  string
	Input io.Reader
	Args  []string
}

//go:embed cmd_run_help.txt
var runHelp string

func init() {
	runHelp = strings.TrimSpace(internal.Colorize(runHelp))
}

func GetRunParams(settings GlobalSettings, source io.Reader, args []string) (*RunParams, error) {
	flagset := flag.NewFlagSet("run", flag.ExitOnError)

	flagset.Usage = func() {
		fmt.Fprintln(flagset.Output(), runHelp)
		flagset.PrintDefaults()
	}

	params := RunParams{GlobalSettings: settings, Input: source}

	RegisterGlobalFlags(flagset, &params.GlobalSettings)

	args, params.Args = internal.CutArgs(args)

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

func RunArtifact(ctx context.Context, params RunParams) error {
	defer internal.DebugTimer(ctx, "run artifact")()

	data, err := wasm.Load(ctx, params.Path)
	if err != nil {
		return fmt.Errorf("failed to load artifact: %w", err)
	}

	name := filepath.Base(params.Path)

	return wasm.Execute(ctx, data, name, params.Input, internal.Stdout(ctx), internal.Stderr(ctx), params.Args...)
}
