// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitgate - Commitgate checks the commit subjects of a branch against a fixed set of style rules before it merges.
It is meant to run in CI next to the test suite, or locally from a commit-msg hook.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra commands for the commitgate CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
)

// NewRootCmd constructs the commitgate root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("COMMITGATE_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	var debug bool

	cmd := &cobra.Command{
		Use:           "commitgate",
		Short:         "Commitgate - commit subject checks for pull requests",
		Long:          "Commitgate rejects WIP, fix-up, temporary, deploy-to-test and merge-branch commits and enforces subject capitalisation, punctuation and length.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          unknownCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierr.Usagef("%v", err)
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of commitgate",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitgate version %s\n", version)
		},
	})

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewRulesCommand())

	return cmd
}

// usageArgs reports positional argument errors with the usage exit code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return clierr.Usagef("%v", err)
		}
		return nil
	}
}

// unknownCommand rejects arguments to the root command, which only happen
// when no subcommand matched.
func unknownCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += "\n\nDid you mean this?\n\t" + strings.Join(suggestions, "\n\t")
	}
	return clierr.Usagef("%s", msg)
}
