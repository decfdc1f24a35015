package internal

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src.wasm")
	dst := filepath.Join(dir, "dst.wasm")

	require.NoError(t, os.WriteFile(src, []byte("optimized"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0o644))

	require.NoError(t, MoveFile(src, dst))

	// destination holds the source bytes, source is gone
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, []byte("optimized"), data)

	_, err = os.Stat(src)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMoveFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := MoveFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)

	// source remains in place, unlike MoveFile
	_, err = os.Stat(src)
	require.NoError(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value.yaml")

	type value struct {
		Name string `yaml:"name"`
		Size int64  `yaml:"size"`
	}

	require.NoError(t, WriteYAML(path, value{Name: "biots", Size: 42}))

	var got value
	require.NoError(t, ReadYAML(path, &got))
	require.Equal(t, value{Name: "biots", Size: 42}, got)

	require.ErrorIs(t, ReadYAML(filepath.Join(t.TempDir(), "absent.yaml"), &got), fs.ErrNotExist)
}
