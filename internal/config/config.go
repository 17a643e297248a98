// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config resolves commitgate settings from defaults, the
// .commitgate.yaml file at the repository root, and the environment.
// Command-line flags are applied on top by the CLI.
//
// Environment variables set to the empty string are ignored, except
// COMMITGATE_REMOTE, where an empty value selects the local target branch.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the repository root.
const FileName = ".commitgate.yaml"

// Environment variables read by Load.
const (
	EnvTargetBranch = "COMMITGATE_TARGET_BRANCH"
	EnvRemote       = "COMMITGATE_REMOTE"
	EnvSource       = "COMMITGATE_SOURCE"
	EnvFetch        = "COMMITGATE_FETCH"
)

// Config holds the settings for a check run.
type Config struct {
	TargetBranch string `yaml:"target_branch"`
	Remote       string `yaml:"remote"`
	Fetch        bool   `yaml:"fetch"`
	Source       string `yaml:"source"` // "git" or "go-git"
	Format       string `yaml:"format"` // "text" or "json"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TargetBranch: "main",
		Remote:       "origin",
		Fetch:        true,
		Source:       "git",
		Format:       "text",
	}
}

// Load returns the defaults overlaid with <repoRoot>/.commitgate.yaml, if
// present, and then with the environment.
func Load(repoRoot string) (Config, error) {
	cfg := Default()

	path := filepath.Join(repoRoot, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is anchored at the repo root
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decode overlays YAML onto cfg. Keys missing from data keep their current
// value; unknown keys are rejected.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTargetBranch); ok && v != "" {
		cfg.TargetBranch = v
	}
	// An empty remote is meaningful: compare against the local target branch.
	if v, ok := lookup(EnvRemote); ok {
		cfg.Remote = v
	}
	if v, ok := lookup(EnvSource); ok && v != "" {
		cfg.Source = v
	}
	if v, ok := lookup(EnvFetch); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvFetch, v, err)
		}
		cfg.Fetch = b
	}
	return nil
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if c.TargetBranch == "" {
		return fmt.Errorf("target branch must not be empty")
	}
	switch c.Source {
	case "git", "go-git":
	default:
		return fmt.Errorf("invalid source: %s (must be 'git' or 'go-git')", c.Source)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", c.Format)
	}
	return nil
}
