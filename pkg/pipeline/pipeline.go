// Package pipeline implements the build-and-publish sequence for the demo
// artifact: compile, optimize, verify, publish. Steps run in fixed order,
// each announced before it starts, and the first failure aborts the rest.
package pipeline

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/davidmdm/x/xerr"

	"github.com/biotsim/airlift/internal"
	"github.com/biotsim/airlift/internal/text"
	"github.com/biotsim/airlift/internal/wasm"
)

type Config struct {
	Cargo        string
	WasmOpt      string
	TargetTriple string
	TargetDir    string
	Artifact     string
	DemoDir      string
	OptLevel     string
}

func (cfg Config) releaseDir() string {
	return filepath.Join(cfg.TargetDir, cfg.TargetTriple, "release")
}

// CompiledPath is where cargo deposits the artifact for the configured
// target triple under the release profile.
func (cfg Config) CompiledPath() string {
	return filepath.Join(cfg.releaseDir(), cfg.Artifact+".wasm")
}

// OptimizedPath is distinct from CompiledPath: wasm-opt never overwrites
// its input. The intermediate compiled artifact stays on disk after a run.
func (cfg Config) OptimizedPath() string {
	return filepath.Join(cfg.releaseDir(), cfg.Artifact+"-opt.wasm")
}

func (cfg Config) PublishedPath() string {
	return filepath.Join(cfg.DemoDir, cfg.Artifact+".wasm")
}

func (cfg Config) ManifestPath() string {
	return filepath.Join(cfg.DemoDir, cfg.Artifact+".build.yaml")
}

type Params struct {
	Config
	DiffOnly    bool
	DiffContext int
	Compress    bool
	SkipVerify  bool
	Color       bool
}

// Run executes the pipeline. Status lines go to the context stdout;
// subprocess diagnostics pass through unmodified on the context stderr.
func Run(ctx context.Context, params Params) error {
	defer internal.DebugTimer(ctx, "build pipeline")()

	var (
		cfg    = params.Config
		stdout = internal.Stdout(ctx)
	)

	manifest := Manifest{
		Artifact: cfg.Artifact,
		Target:   cfg.TargetTriple,
		OptLevel: cfg.OptLevel,
		BuiltAt:  time.Now().UTC(),
		Source:   SourceFromRepo("."),
	}

	announce := func(format string, args ...any) {
		fmt.Fprintln(stdout, internal.Status(params.Color, fmt.Sprintf(format, args...)))
	}

	step := func(name string) func() {
		start := time.Now()
		return func() {
			manifest.Steps = append(manifest.Steps, StepTiming{Name: name, Took: time.Since(start).Round(time.Millisecond).String()})
		}
	}

	announce("Compiling %s for %s (release)", cfg.Artifact, cfg.TargetTriple)
	done := step("compile")
	if err := compile(ctx, cfg); err != nil {
		return fmt.Errorf("failed to compile: %w", err)
	}
	done()

	compiled, err := os.Stat(cfg.CompiledPath())
	if err != nil {
		return fmt.Errorf("compiled artifact missing at %s: %w", cfg.CompiledPath(), err)
	}
	manifest.CompiledSize = compiled.Size()

	announce("Optimizing %s (-O%s)", filepath.Base(cfg.CompiledPath()), cfg.OptLevel)
	done = step("optimize")
	if err := optimize(ctx, cfg); err != nil {
		return fmt.Errorf("failed to optimize: %w", err)
	}
	done()

	optimized, err := os.ReadFile(cfg.OptimizedPath())
	if err != nil {
		return fmt.Errorf("optimized artifact missing at %s: %w", cfg.OptimizedPath(), err)
	}

	manifest.OptimizedSize = int64(len(optimized))
	manifest.Checksum = wasm.Checksum(optimized)
	manifest.Compressed = params.Compress

	if params.SkipVerify {
		announce("Skipping module verification")
	} else {
		announce("Verifying optimized module")
		done = step("verify")
		if err := wasm.Verify(ctx, optimized); err != nil {
			return fmt.Errorf("optimizer produced an invalid module: %w", err)
		}
		done()
	}

	if params.DiffOnly {
		return diffManifests(ctx, params, manifest)
	}

	announce("Publishing %s", cfg.PublishedPath())
	if err := publish(ctx, params, manifest); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	announce("Done")
	return nil
}

func compile(ctx context.Context, cfg Config) error {
	cmd := exec.CommandContext(ctx, cfg.Cargo, "build", "--release", "--target", cfg.TargetTriple)
	cmd.Env = append(os.Environ(), "CARGO_TARGET_DIR="+cfg.TargetDir)
	cmd.Stdout = internal.Stdout(ctx)
	cmd.Stderr = internal.Stderr(ctx)
	return cmd.Run()
}

func optimize(ctx context.Context, cfg Config) error {
	// wasm-opt would fail on its own, but a missing input here means the
	// compile step lied about succeeding. Surface that directly.
	if _, err := os.Stat(cfg.CompiledPath()); err != nil {
		return fmt.Errorf("input artifact not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, cfg.WasmOpt, "-O"+cfg.OptLevel, cfg.CompiledPath(), "-o", cfg.OptimizedPath())
	cmd.Stdout = internal.Stdout(ctx)
	cmd.Stderr = internal.Stderr(ctx)
	return cmd.Run()
}

func publish(ctx context.Context, params Params, manifest Manifest) error {
	cfg := params.Config

	if err := os.MkdirAll(cfg.DemoDir, 0o755); err != nil {
		return err
	}

	if err := internal.MoveFile(cfg.OptimizedPath(), cfg.PublishedPath()); err != nil {
		return err
	}

	if err := internal.WriteYAML(cfg.ManifestPath(), manifest); err != nil {
		return fmt.Errorf("failed to write build manifest: %w", err)
	}

	if params.Compress {
		defer internal.DebugTimer(ctx, "compressing published artifact")()
		if err := compress(cfg.PublishedPath()); err != nil {
			return fmt.Errorf("failed to compress: %w", err)
		}
	}

	return nil
}

func compress(path string) (err error) {
	destination, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer func() {
		err = xerr.MultiErrFrom("", err, destination.Close())
	}()

	compressor, err := gzip.NewWriterLevel(destination, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("could not create gzip writer: %w", err)
	}
	defer func() {
		err = xerr.MultiErrFrom("", err, compressor.Close())
	}()

	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		err = xerr.MultiErrFrom("", err, source.Close())
	}()

	_, err = io.Copy(compressor, source)
	return err
}

func diffManifests(ctx context.Context, params Params, pending Manifest) error {
	published, err := LoadManifest(params.ManifestPath())
	if err != nil {
		return fmt.Errorf("failed to load published manifest: %w", err)
	}

	a, err := text.ToYamlFile("published", published.Comparable())
	if err != nil {
		return err
	}

	b, err := text.ToYamlFile("pending", pending.Comparable())
	if err != nil {
		return err
	}

	diffFn := text.DiffFunc(text.Diff)
	if params.Color {
		diffFn = text.DiffColorized
	}

	diff := diffFn(a, b, params.DiffContext)
	if diff == "" {
		return internal.Warning("demo artifact is up to date")
	}

	_, err = fmt.Fprint(internal.Stdout(ctx), diff)
	return err
}
