// Package wasm wraps the wazero runtime for artifact verification and
// smoke-running, and provides binary-level helpers for inspection.
package wasm

import (
	"context"
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/davidmdm/x/xerr"
)

// Checksum is the artifact identity used by the build manifest.
func Checksum(wasm []byte) string {
	return fmt.Sprintf("%x", sha1.Sum(wasm))
}

// Verify compiles the module without instantiating it. A module that the
// optimizer mangled fails here rather than in the browser.
func Verify(ctx context.Context, wasm []byte) (err error) {
	cfg := wazero.
		NewRuntimeConfig().
		WithCloseOnContextDone(true)

	runtime := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer func() {
		err = xerr.MultiErrFrom("", err, runtime.Close(ctx))
	}()

	if _, err := runtime.CompileModule(ctx, wasm); err != nil {
		return fmt.Errorf("failed to compile module: %w", err)
	}
	return nil
}

// Execute instantiates a wasi artifact and runs it to completion, wiring the
// module's stdio through. Only meaningful for pipelines targeting a wasi
// triple; browser-targeted artifacts have no _start to run.
func Execute(ctx context.Context, wasm []byte, name string, stdin io.Reader, stdout, stderr io.Writer, args ...string) (err error) {
	cfg := wazero.
		NewRuntimeConfig().
		WithCloseOnContextDone(true)

	runtime := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer func() {
		err = xerr.MultiErrFrom("", err, runtime.Close(ctx))
	}()

	wasi_snapshot_preview1.MustInstantiate(ctx, runtime)

	mod, err := runtime.CompileModule(ctx, wasm)
	if err != nil {
		return fmt.Errorf("failed to compile module: %w", err)
	}

	moduleCfg := wazero.
		NewModuleConfig().
		WithStdout(stdout).
		WithStderr(stderr).
		WithRandSource(rand.Reader).
		WithSysNanosleep().
		WithSysNanotime().
		WithSysWalltime().
		WithArgs(append([]string{name}, args...)...)

	if stdin != nil {
		moduleCfg = moduleCfg.WithStdin(stdin)
	}

	if _, err := runtime.InstantiateModule(ctx, mod, moduleCfg); err != nil {
		return fmt.Errorf("failed to instantiate module: %w", err)
	}

	return nil
}
