// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitgate - Commitgate checks the commit subjects of a branch against a fixed set of style rules before it merges.
It is meant to run in CI next to the test suite, or locally from a commit-msg hook.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package check drives subject validation over a branch history or a list of
// subjects and collects the results into a report.
package check

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bartekus/commitgate/internal/history"
	"github.com/bartekus/commitgate/internal/subject"
)

// Runner checks every commit a history source yields.
type Runner struct {
	src history.Source
}

// NewRunner creates a runner reading commits from src.
func NewRunner(src history.Source) *Runner {
	return &Runner{src: src}
}

// Run validates each commit on the branch relative to target.
// It keeps going after invalid subjects so all of them are reported, and
// only returns an error when the history source fails.
func (r *Runner) Run(ctx context.Context, target string) (*Report, error) {
	report := newReport(target)

	for c, err := range r.src.Commits(ctx, target) {
		if err != nil {
			return nil, fmt.Errorf("listing commits since %s: %w", target, err)
		}
		res := evaluate(c.ShortID, c.Subject)
		slog.Debug("checked commit", "commit", c.ShortID, "subject", c.Subject, "status", res.Status, "rule", res.Rule)
		report.add(res)
	}

	return report, nil
}

// CheckSubjects validates literal subjects with no commit identifiers.
func CheckSubjects(subjects []string) *Report {
	report := newReport("")
	for _, s := range subjects {
		report.add(evaluate("", s))
	}
	return report
}

func evaluate(shortID, s string) Result {
	res := Result{ShortID: shortID, Subject: s, Status: StatusPass}
	if s == "" {
		res.Status = StatusFail
		res.Rule = RuleEmpty
		res.Reason = reasonEmpty
		return res
	}

	v := subject.Validate(s)
	if !v.Valid {
		res.Status = StatusFail
		res.Rule = v.Rule
		res.Reason = v.Reason
	}
	return res
}
