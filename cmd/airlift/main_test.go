package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biotsim/airlift/internal"
	"github.com/biotsim/airlift/pkg/pipeline"
)

var minimalWasm = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func writeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func stubConfig(t *testing.T) pipeline.Config {
	t.Helper()

	root := t.TempDir()

	cfg := pipeline.Config{
		TargetTriple: "wasm32-unknown-unknown",
		TargetDir:    filepath.Join(root, "target"),
		Artifact:     "biots",
		DemoDir:      filepath.Join(root, "demo"),
		OptLevel:     "z",
	}

	cfg.Cargo = writeTool(t, root, "cargo", fmt.Sprintf(
		"mkdir -p %q\nprintf '\\0asm\\001\\000\\000\\000' > %q",
		filepath.Dir(cfg.CompiledPath()), cfg.CompiledPath(),
	))
	cfg.WasmOpt = writeTool(t, root, "wasm-opt", `cp "$2" "$4"`)

	return cfg
}

func TestGetBuildParams(t *testing.T) {
	params, err := GetBuildParams(GlobalSettings{Debug: true}, []string{
		"-diff-only", "-compress", "-no-verify", "-context", "8", "-color=false",
	})
	require.NoError(t, err)

	require.True(t, params.Debug)
	require.True(t, params.DiffOnly)
	require.True(t, params.Compress)
	require.True(t, params.SkipVerify)
	require.False(t, params.Color)
	require.Equal(t, 8, params.DiffContext)

	// environment defaults reproduce the original demo build
	require.Equal(t, "cargo", params.Config.Cargo)
	require.Equal(t, "wasm-opt", params.Config.WasmOpt)
	require.Equal(t, "wasm32-unknown-unknown", params.Config.TargetTriple)
	require.Equal(t, filepath.Join("target", "wasm32-unknown-unknown", "release", "biots.wasm"), params.Config.CompiledPath())
	require.Equal(t, filepath.Join("demo", "biots.wasm"), params.Config.PublishedPath())
}

func TestGetRunParams(t *testing.T) {
	params, err := GetRunParams(GlobalSettings{}, nil, []string{"demo/biots.wasm", "--", "--seed", "42"})
	require.NoError(t, err)

	require.Equal(t, "demo/biots.wasm", params.Path)
	require.Equal(t, []string{"--seed", "42"}, params.Args)
}

func TestBuildThenClean(t *testing.T) {
	cfg := stubConfig(t)

	var out bytes.Buffer
	ctx := internal.WithStdout(context.Background(), &out)
	ctx = internal.WithStderr(ctx, io.Discard)

	params := BuildParams{Params: pipeline.Params{Config: cfg}}
	require.NoError(t, Build(ctx, params))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, "Done", lines[len(lines)-1])

	published, err := os.ReadFile(cfg.PublishedPath())
	require.NoError(t, err)
	require.Equal(t, minimalWasm, published)

	// clean removes the leftover intermediate but not the published artifact
	_, err = os.Stat(cfg.CompiledPath())
	require.NoError(t, err)

	require.NoError(t, Clean(ctx, CleanParams{Config: cfg}))

	_, err = os.Stat(cfg.CompiledPath())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(cfg.PublishedPath())
	require.NoError(t, err)
}

func TestInspectPublishedArtifact(t *testing.T) {
	cfg := stubConfig(t)

	ctx := internal.WithStdout(context.Background(), io.Discard)
	ctx = internal.WithStderr(ctx, io.Discard)

	require.NoError(t, Build(ctx, BuildParams{Params: pipeline.Params{Config: cfg}}))

	var out bytes.Buffer
	ctx = internal.WithStdout(context.Background(), &out)

	require.NoError(t, Inspect(ctx, InspectParams{Path: cfg.PublishedPath()}))

	require.Contains(t, out.String(), cfg.PublishedPath())
	require.Contains(t, out.String(), "valid")
	require.Contains(t, out.String(), "yes")
}
