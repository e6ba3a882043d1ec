// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "  AIza_abc123  \n")
				writeFile(t, dir, "hf-token", "hf_xyz789")
				writeFile(t, dir, "GEMINI_API_KEY", "AIza_env\n")
				return dir
			},
			want: map[string]string{
				"gemini-api-key": "AIza_abc123",
				"hf-token":       "hf_xyz789",
				"GEMINI_API_KEY": "AIza_env",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"gemini-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "hf-token", "hf_real")
				return dir
			},
			want: map[string]string{
				"hf-token": "hf_real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "AIza_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"gemini-api-key": "AIza_123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir, nil)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "GEMINI_API_KEY=AIza_dotenv\n# comment\nHF_TOKEN=\"hf_quoted\"\nEMPTY=\n")

	got, err := LoadEnvFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"GEMINI_API_KEY": "AIza_dotenv",
		"HF_TOKEN":       "hf_quoted",
	}, got)

	missing, err := LoadEnvFile(filepath.Join(dir, "nope.env"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestLookup(t *testing.T) {
	t.Setenv("SNAIL_TEST_ENV_ONLY", "from-env")

	m := Merge(
		map[string]string{"gemini-api-key": "dir", "hf-token": "dir-token"},
		map[string]string{"hf-token": "dotenv-token"},
	)

	assert.Equal(t, "dir", Lookup(m, GeminiAPIKey...))
	assert.Equal(t, "dotenv-token", Lookup(m, HubToken...))
	assert.Equal(t, "from-env", Lookup(m, "missing-key", "SNAIL_TEST_ENV_ONLY"))
	assert.Equal(t, "", Lookup(m, "SNAIL_TEST_NOT_SET_ANYWHERE"))
}

func TestLookupExportedEnvWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "exported-real")
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GEMINI_API_KEY=stale-dotenv\n"), 0o600))

	m, err := LoadEnvFile(envFile)
	require.NoError(t, err)
	require.Equal(t, "stale-dotenv", m["GEMINI_API_KEY"])

	assert.Equal(t, "exported-real", Lookup(m, "GEMINI_API_KEY"))

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "stale-dotenv", Lookup(m, "GEMINI_API_KEY"))
}

func TestNames(t *testing.T) {
	names := Names(map[string]string{"a": "1", "b": "2"})
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}
