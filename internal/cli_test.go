package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCutArgs(t *testing.T) {
	args, rest := CutArgs([]string{"build", "-debug"})
	require.Equal(t, []string{"build", "-debug"}, args)
	require.Nil(t, rest)

	args, rest = CutArgs([]string{"run", "--", "--seed", "42"})
	require.Equal(t, []string{"run"}, args)
	require.Equal(t, []string{"--seed", "42"}, rest)
}

func TestStatus(t *testing.T) {
	require.Equal(t, "Compiling", Status(false, "Compiling"))

	colored := Status(true, "Compiling")
	require.Contains(t, colored, "Compiling")
	require.NotEqual(t, "Compiling", colored)
}
