package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/biotsim/airlift/internal"
	"github.com/biotsim/airlift/pkg/pipeline"
)

type BuildParams struct {
	GlobalSettings
	pipeline.Params
}

//go:embed cmd_build_help.txt
var buildHelp string

func init() {
	buildHelp = strings.TrimSpace(internal.Colorize(buildHelp))
}

func GetBuildParams(settings GlobalSettings, args []string) (*BuildParams, error) {
	flagset := flag.NewFlagSet("build", flag.ExitOnError)

	flagset.Usage = func() {
		fmt.Fprintln(flagset.Output(), buildHelp)
		flagset.PrintDefaults()
	}

	params := BuildParams{GlobalSettings: settings}

	RegisterGlobalFlags(flagset, &params.GlobalSettings)

	flagset.BoolVar(&params.DiffOnly, "diff-only", false, "show manifest diff between published artifact and would-be build. Does not publish anything")
	flagset.IntVar(&params.DiffContext, "context", 4, "number of lines of context in diff (ignored if not using --diff-only)")
	flagset.BoolVar(&params.Compress, "compress", false, "additionally write a gzipped copy next to the published artifact")
	flagset.BoolVar(&params.SkipVerify, "no-verify", false, "skip verifying the optimized module with the embedded wasm runtime")
	flagset.BoolVar(&params.Color, "color", term.IsTerminal(int(os.Stdout.Fd())), "use colored output for status lines and diffs")

	flagset.Parse(args)

	cfg, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read environment config: %w", err)
	}
	params.Config = cfg

	return &params, nil
}

func Build(ctx context.Context, params BuildParams) error {
	return pipeline.Run(ctx, params.Params)
}
