package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvTargetBranch, EnvRemote, EnvSource, EnvFetch} {
		t.Setenv(k, "") // restores the original value on cleanup
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "target_branch: master\nfetch: false\nsource: go-git\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "master", cfg.TargetBranch)
	assert.False(t, cfg.Fetch)
	assert.Equal(t, "go-git", cfg.Source)
	// Untouched keys keep their defaults.
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownKey(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "max_length: 100\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "target_branch: master\nremote: upstream\n")
	t.Setenv(EnvTargetBranch, "develop")
	t.Setenv(EnvFetch, "false")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "develop", cfg.TargetBranch)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.False(t, cfg.Fetch)
}

func TestLoad_EmptyEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "remote: upstream\n")
	t.Setenv(EnvTargetBranch, "")
	t.Setenv(EnvRemote, "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.TargetBranch)
	assert.Empty(t, cfg.Remote)
}

func TestLoad_BadEnvFetch(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFetch, "sometimes")

	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "go-git json", mutate: func(c *Config) { c.Source = "go-git"; c.Format = "json" }},
		{name: "empty target", mutate: func(c *Config) { c.TargetBranch = "" }, wantErr: true},
		{name: "bad source", mutate: func(c *Config) { c.Source = "hg" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
