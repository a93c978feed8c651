package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestArgs(t *testing.T) {
	out, _, err := execute(t, "", "--", "2+3*4", "-5+2", "7/2")
	require.NoError(t, err)
	assert.Equal(t, "2+3*4 = 14.00\n-5+2 = -3.00\n7/2 = 3.50\n", out)
}

func TestArgsInvalid(t *testing.T) {
	out, errOut, err := execute(t, "", "1+1", "5/0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 expressions invalid")
	assert.Equal(t, "1+1 = 2.00\n", out)
	assert.Contains(t, errOut, "5/0: 2: division by zero")
}

func TestFlags(t *testing.T) {
	out, _, err := execute(t, "", "--backend", "decimal", "--places", "3", "--echo", "1/8")
	require.NoError(t, err)
	assert.Equal(t, "1 8 / : 1/8 = 0.125\n", out)

	_, _, err = execute(t, "", "--backend", "complex", "1")
	assert.Error(t, err)
}

func TestInteractive(t *testing.T) {
	out, _, err := execute(t, "(2+3)*4\n\nexit\n")
	require.NoError(t, err)
	prompt := config.Default().Prompt
	assert.Equal(t, prompt+"\n(2+3)*4 = 20.00\n"+prompt+"\nNo input was provided. Please try again.\n"+prompt+"\n", out)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("places: 1\nprompt: \"> \"\n"), 0o644))

	out, _, err := execute(t, "", "--config", path, "1/4")
	require.NoError(t, err)
	assert.Equal(t, "1/4 = 0.2\n", out)

	// Flags win over the file.
	out, _, err = execute(t, "", "--config", path, "--places", "0", "5/2")
	require.NoError(t, err)
	assert.Equal(t, "5/2 = 2\n", out)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "calc version dev"), out)
}
