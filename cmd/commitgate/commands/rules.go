// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitgate/internal/subject"
)

// NewRulesCommand returns the `commitgate rules` command.
func NewRulesCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the subject rules in evaluation order",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := subject.Rules()

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"rules": rules})
			}

			var b strings.Builder
			for i, r := range rules {
				fmt.Fprintf(&b, "%d. %-16s %s\n", i+1, r.ID, r.Reason)
			}
			if _, err := fmt.Fprint(cmd.OutOrStdout(), b.String()); err != nil {
				return fmt.Errorf("writing rules: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output rules as JSON")

	return cmd
}
