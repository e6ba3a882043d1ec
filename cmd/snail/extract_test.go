// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		extractCmd.Flags().Set("json", "false")
		extractCmd.Flags().Set("cot", "false")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExtractCommandStdin(t *testing.T) {
	out, err := execute(t, "Problems:\n1. alpha\n2. beta\n", "extract", "--secrets-dir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n", out)
}

func TestExtractCommandFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.md")
	require.NoError(t, os.WriteFile(path, []byte("x\n1. one\n2. two"), 0o644))

	out, err := execute(t, "", "extract", "--json", path)
	require.NoError(t, err)
	assert.Equal(t, "[\"one\",\"two\"]\n", out)
}

func TestExtractCommandCoT(t *testing.T) {
	out, err := execute(t, "<thought>why</thought><answer>42</answer>", "extract", "--cot")
	require.NoError(t, err)
	assert.Equal(t, "Thought:\nwhy\n\nAnswer:\n42\n", out)
}

func TestExtractCommandNoItems(t *testing.T) {
	_, err := execute(t, "nothing numbered", "extract")
	assert.Error(t, err)
}
