package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/davidmdm/x/xcontext"

	"github.com/biotsim/airlift/internal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if internal.IsWarning(err) {
			return
		}
		os.Exit(1)
	}
}

//go:embed cmd_help.txt
var rootHelp string

func init() {
	rootHelp = strings.TrimSpace(internal.Colorize(rootHelp))
}

func run() error {
	ctx, done := xcontext.WithSignalCancelation(context.Background(), syscall.SIGINT)
	defer done()

	var settings GlobalSettings
	RegisterGlobalFlags(flag.CommandLine, &settings)

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), rootHelp)
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}

	flag.Parse()

	ctx = internal.WithDebugFlag(ctx, &settings.Debug)

	// No command runs the full pipeline: the tool stays usable as a single
	// no-argument invocation.
	cmd, subcmdArgs := "build", flag.Args()
	if len(subcmdArgs) > 0 {
		cmd, subcmdArgs = subcmdArgs[0], subcmdArgs[1:]
	}

	switch cmd {
	case "build", "ship":
		{
			params, err := GetBuildParams(settings, subcmdArgs)
			if err != nil {
				return err
			}
			return Build(ctx, *params)
		}
	case "inspect":
		{
			params, err := GetInspectParams(settings, subcmdArgs)
			if err != nil {
				return err
			}
			return Inspect(ctx, *params)
		}
	case "run":
		{
			var source io.Reader
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				source = os.Stdin
			}
			params, err := GetRunParams(settings, source, subcmdArgs)
			if err != nil {
				return err
			}
			return RunArtifact(ctx, *params)
		}
	case "clean":
		{
			params, err := GetCleanParams(settings, subcmdArgs)
			if err != nil {
				return err
			}
			return Clean(ctx, *params)
		}
	case "version":
		{
			return Version()
		}
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}
