package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/davidmdm/x/xerr"

	"github.com/biotsim/airlift/internal"
	"github.com/biotsim/airlift/pkg/pipeline"
)

type CleanParams struct {
	GlobalSettings
	pipeline.Config
}

func GetCleanParams(settings GlobalSettings, args []string) (*CleanParams, error) {
	flagset := flag.NewFlagSet("clean", flag.ExitOnError)

	flagset.Usage = func() {
		fmt.Fprintln(flagset.Output(), "removes intermediate build artifacts. The published artifact is left alone.")
		flagset.PrintDefaults()
	}

	params := CleanParams{GlobalSettings: settings}

	RegisterGlobalFlags(flagset, &params.GlobalSettings)

	flagset.Parse(args)

	cfg, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read environment config: %w", err)
	}
	params.Config = cfg

	return &params, nil
}

// Clean removes the intermediates the pipeline deliberately leaves behind.
// It never touches the published artifact or its manifest.
func Clean(ctx context.Context, params CleanParams) error {
	stdout := internal.Stdout(ctx)

	var errs []error
	for _, path := range []string{params.CompiledPath(), params.OptimizedPath()} {
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(stdout, "removed", path)
	}

	return xerr.MultiErrOrderedFrom("failed to clean", errs...)
}
