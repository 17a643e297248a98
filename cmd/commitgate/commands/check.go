// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
	"github.com/bartekus/commitgate/internal/check"
	"github.com/bartekus/commitgate/internal/config"
	"github.com/bartekus/commitgate/internal/history"
	"github.com/bartekus/commitgate/internal/projectroot"
)

// NewCheckCommand returns the `commitgate check` command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the subjects of every commit on the current branch",
		Long: `Fetches the target branch and checks the subject of every commit reachable
from HEAD but not from <remote>/<target>. Exits 1 if any subject is invalid.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: runCheck,
	}

	// Flags in alphabetical order for deterministic help output
	cmd.Flags().String("format", "", "Output format: text or json (default from config: text)")
	cmd.Flags().Bool("no-fetch", false, "Do not fetch the target branch before listing commits")
	cmd.Flags().String("remote", "", "Remote the target branch is fetched from (default from config: origin)")
	cmd.Flags().String("repo", ".", "Any directory inside the repository to check")
	cmd.Flags().String("source", "", "History source: git or go-git (default from config: git)")
	cmd.Flags().String("target", "", "Target branch the current branch merges into (default from config: main)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	repoFlag, _ := cmd.Flags().GetString("repo")
	repoRoot, err := projectroot.Find(repoFlag)
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "finding repo root", err)
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "loading config", err)
	}
	applyCheckFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.ExitUsage, "invalid configuration", err)
	}
	slog.Debug("resolved config",
		"repo", repoRoot,
		"target", cfg.TargetBranch,
		"remote", cfg.Remote,
		"fetch", cfg.Fetch,
		"source", cfg.Source,
	)

	src, err := history.New(cfg.Source, history.Options{
		Dir:    repoRoot,
		Remote: cfg.Remote,
		Fetch:  cfg.Fetch,
	})
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "selecting history source", err)
	}

	report, err := check.NewRunner(src).Run(cmd.Context(), cfg.TargetBranch)
	if err != nil {
		return clierr.Wrap(clierr.ExitHistory, "reading branch history", err)
	}

	return writeReport(cmd, report, cfg.Format)
}

// applyCheckFlags overrides cfg with the flags the user set explicitly.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.TargetBranch, _ = flags.GetString("target")
	}
	if flags.Changed("remote") {
		cfg.Remote, _ = flags.GetString("remote")
	}
	if flags.Changed("source") {
		cfg.Source, _ = flags.GetString("source")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("no-fetch") {
		noFetch, _ := flags.GetBool("no-fetch")
		cfg.Fetch = !noFetch
	}
}

// writeReport renders report and turns invalid subjects into exit code 1.
func writeReport(cmd *cobra.Command, report *check.Report, format string) error {
	if err := check.Render(cmd.OutOrStdout(), report, format); err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		return clierr.Wrap(clierr.ExitInvalid, "commit subject check failed", err)
	}
	return nil
}
