// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
	"github.com/bartekus/commitgate/internal/check"
)

// NewValidateCommand returns the `commitgate validate` command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [subject...]",
		Short: "Check literal commit subjects",
		Long: `Checks the subjects given as arguments. With --file, checks the subject of a
commit message file, which makes it usable as a commit-msg hook:

    commitgate validate --file "$1"

With neither, reads one subject per line from stdin.`,
		RunE: runValidate,
	}

	cmd.Flags().String("file", "", "Commit message file to read the subject from")
	cmd.Flags().String("format", check.FormatText, "Output format: text or json")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	format, _ := cmd.Flags().GetString("format")
	if format != check.FormatText && format != check.FormatJSON {
		return clierr.Usagef("invalid format: %s (must be 'text' or 'json')", format)
	}
	if file != "" && len(args) > 0 {
		return clierr.Usagef("--file cannot be combined with subject arguments")
	}

	var subjects []string
	switch {
	case file != "":
		data, err := os.ReadFile(file) //nolint:gosec // G304: path comes from the user or git
		if err != nil {
			return clierr.Wrap(clierr.ExitUsage, "reading commit message", err)
		}
		subjects = []string{messageSubject(string(data))}
	case len(args) > 0:
		subjects = args
	default:
		var err error
		subjects, err = readSubjects(cmd.InOrStdin())
		if err != nil {
			return clierr.Wrap(clierr.ExitUsage, "reading subjects from stdin", err)
		}
	}

	return writeReport(cmd, check.CheckSubjects(subjects), format)
}

// messageSubject returns the first line of a commit message file that is not
// a git comment, or "" if there is none.
func messageSubject(message string) string {
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line
	}
	return ""
}

// readSubjects reads one subject per non-blank line.
func readSubjects(r io.Reader) ([]string, error) {
	var subjects []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		subjects = append(subjects, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning input: %w", err)
	}
	return subjects, nil
}
