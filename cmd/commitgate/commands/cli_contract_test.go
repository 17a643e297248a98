package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIContract(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	out := b.String()

	requiredCommands := []string{
		"check",
		"completion",
		"help",
		"rules",
		"validate",
		"version",
	}

	for _, c := range requiredCommands {
		if !strings.Contains(out, c) {
			t.Errorf("expected top-level command %q in root help", c)
		}
	}
	if !strings.Contains(out, "--debug") {
		t.Errorf("expected --debug flag in root help")
	}
}

func TestCLICommandCheckHelp(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"check", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("check help failed: %v", err)
	}

	out := b.String()
	for _, flag := range []string{"--format", "--no-fetch", "--remote", "--repo", "--source", "--target"} {
		if !strings.Contains(out, flag) {
			t.Errorf("expected %s in check help", flag)
		}
	}
}

func TestCLIVersion(t *testing.T) {
	t.Setenv("COMMITGATE_VERSION", "1.2.3")
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := b.String(); got != "commitgate version 1.2.3\n" {
		t.Errorf("unexpected version output %q", got)
	}
}
