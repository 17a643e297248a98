// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitgate - Commitgate checks the commit subjects of a branch against a fixed set of style rules before it merges.
It is meant to run in CI next to the test suite, or locally from a commit-msg hook.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package subject validates a single commit subject line.
//
// Rules are evaluated in a fixed order and the first matching rule decides
// the verdict. The order matters: a lowercase, over-long subject reports
// capitalisation, not length.
package subject

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxLength is the longest subject, in characters, that passes the length rule.
const MaxLength = 70

// RuleID identifies a rejection rule.
type RuleID string

const (
	RuleWIP            RuleID = "wip"
	RuleFixup          RuleID = "fixup"
	RuleTemporary      RuleID = "temporary"
	RuleTrailingPeriod RuleID = "trailing-period"
	RuleCapitalisation RuleID = "capitalisation"
	RuleDeployToTest   RuleID = "deploy-to-test"
	RuleMergeBranch    RuleID = "merge-branch"
	RuleLength         RuleID = "length"
)

// Verdict is the outcome of validating one subject.
// Reason and Rule are empty when Valid is true.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Rule   RuleID `json:"rule,omitempty"`
}

// Rule describes one rejection rule.
type Rule struct {
	ID     RuleID `json:"id"`
	Reason string `json:"reason"`

	// match receives the subject as written and its lowercased form.
	match func(subject, lower string) bool
}

// space is \s widened to Unicode white space. RE2's \s is ASCII-only and
// does not include \v.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	wipRe          = regexp.MustCompile(`^wip([ :]|$)`)
	temporaryRe    = regexp.MustCompile(`^te?mp:?` + space)
	deployToTestRe = regexp.MustCompile(`^deploy.*(branch)?.*to test`)
)

// rules is evaluated top to bottom. Rules 1-3 and 6 look at the lowercased
// subject; the others look at the subject as written.
var rules = []Rule{
	{
		ID:     RuleWIP,
		Reason: "WIP commits should be rebased",
		match:  func(_, lower string) bool { return wipRe.MatchString(lower) },
	},
	{
		ID:     RuleFixup,
		Reason: "Fix-up commits should be rebased",
		match:  func(_, lower string) bool { return strings.HasPrefix(lower, "fixup!") },
	},
	{
		ID:     RuleTemporary,
		Reason: "Temporary commits should be rebased",
		match:  func(_, lower string) bool { return temporaryRe.MatchString(lower) },
	},
	{
		ID:     RuleTrailingPeriod,
		Reason: "Commit subject should not end with a period",
		match:  func(s, _ string) bool { return strings.HasSuffix(s, ".") },
	},
	{
		ID:     RuleCapitalisation,
		Reason: "Commit subject should be capitalised",
		match:  func(s, _ string) bool { return s != "" && s[0] >= 'a' && s[0] <= 'z' },
	},
	{
		ID:     RuleDeployToTest,
		Reason: "Deploy-to-test commits should be removed before merge",
		match:  func(_, lower string) bool { return deployToTestRe.MatchString(lower) },
	},
	{
		ID:     RuleMergeBranch,
		Reason: "Rebase PR branches off their target branch rather than adding merge commits",
		match:  func(s, _ string) bool { return strings.HasPrefix(s, "Merge branch ") },
	},
	{
		ID:     RuleLength,
		Reason: "Commit subject should not be longer than 70 characters",
		match:  func(s, _ string) bool { return utf8.RuneCountInString(s) > MaxLength },
	},
}

// Validate checks subject against every rule in order and returns the verdict
// of the first rule that matches. Any input is accepted, including the empty
// string, which matches no rule.
func Validate(subject string) Verdict {
	lower := strings.ToLower(subject)
	for _, r := range rules {
		if r.match(subject, lower) {
			return Verdict{Valid: false, Reason: r.Reason, Rule: r.ID}
		}
	}
	return Verdict{Valid: true}
}

// Rules returns the rejection rules in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
