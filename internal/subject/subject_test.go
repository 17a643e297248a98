package subject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		rule    RuleID
		reason  string
	}{
		{
			name:    "wip with colon",
			subject: "WIP: working on something",
			rule:    RuleWIP,
			reason:  "WIP commits should be rebased",
		},
		{name: "wip with space", subject: "wip more tests", rule: RuleWIP},
		{name: "bare wip", subject: "Wip", rule: RuleWIP},
		{name: "wip followed by period is not a wip marker", subject: "wip.", rule: RuleTrailingPeriod},
		{name: "wip then period", subject: "WIP: nearly there.", rule: RuleWIP},
		{
			name:    "fixup",
			subject: "fixup! Add widget cache",
			rule:    RuleFixup,
			reason:  "Fix-up commits should be rebased",
		},
		{name: "fixup uppercase", subject: "FIXUP! Add widget cache", rule: RuleFixup},
		{
			name:    "temp with colon",
			subject: "temp: debug output",
			rule:    RuleTemporary,
			reason:  "Temporary commits should be rebased",
		},
		{name: "tmp", subject: "TMP disable flaky test", rule: RuleTemporary},
		{name: "temp without colon", subject: "Temp hack", rule: RuleTemporary},
		{name: "tmp colon without whitespace", subject: "tmp:debug", rule: RuleCapitalisation},
		{name: "tmp with no-break space", subject: "tmp\u00a0hack", rule: RuleTemporary},
		{name: "temp with vertical tab", subject: "Temp\vhack", rule: RuleTemporary},
		{name: "tmp with ideographic space", subject: "TMP:\u3000hack", rule: RuleTemporary},
		{
			name:    "trailing period",
			subject: "Do the thing.",
			rule:    RuleTrailingPeriod,
			reason:  "Commit subject should not end with a period",
		},
		{
			name:    "lowercase start",
			subject: "do the thing",
			rule:    RuleCapitalisation,
			reason:  "Commit subject should be capitalised",
		},
		{name: "period beats capitalisation", subject: "do the thing.", rule: RuleTrailingPeriod},
		{
			name:    "deploy branch to test",
			subject: "Deploy branch to test",
			rule:    RuleDeployToTest,
			reason:  "Deploy-to-test commits should be removed before merge",
		},
		{name: "deploy to test", subject: "Deploy to test", rule: RuleDeployToTest},
		{name: "deploy named branch to test", subject: "DEPLOY payments branch to test", rule: RuleDeployToTest},
		{name: "deploy words to test env", subject: "Deploy the new thing to test env", rule: RuleDeployToTest},
		{name: "deployed to test", subject: "Deployed to test", rule: RuleDeployToTest},
		{name: "deploying to test", subject: "Deploying to test", rule: RuleDeployToTest},
		{name: "deployment to test env", subject: "Deployment to test env", rule: RuleDeployToTest},
		{name: "deploy colon to test", subject: "Deploy:to test", rule: RuleDeployToTest},
		{name: "to test glued to previous word", subject: "Deploy celery-to test", rule: RuleDeployToTest},
		{name: "deploy celery branch to test", subject: "Deploy Celery branch to test", rule: RuleDeployToTest},
		{
			name:    "merge branch",
			subject: "Merge branch 'main' into statements-variable-payment",
			rule:    RuleMergeBranch,
			reason:  "Rebase PR branches off their target branch rather than adding merge commits",
		},
		{
			name:    "too long",
			subject: "A" + strings.Repeat("b", MaxLength),
			rule:    RuleLength,
			reason:  "Commit subject should not be longer than 70 characters",
		},
		{name: "lowercase and too long reports capitalisation", subject: strings.Repeat("a", 100), rule: RuleCapitalisation},
		{name: "merge branch beats length", subject: "Merge branch '" + strings.Repeat("x", 80) + "'", rule: RuleMergeBranch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(tt.subject)
			assert.False(t, v.Valid)
			assert.Equal(t, tt.rule, v.Rule)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, v.Reason)
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	subjects := []string{
		"Add support for widget caching",
		"",
		"Wipe stale cache entries",
		"Template engine tweaks",
		"Deployment docs for staging",
		"Redeploy to test",
		"Deploy to staging",
		"Merge pull request #12 from feature/x",
		"A" + strings.Repeat("b", MaxLength-1),
		"É" + strings.Repeat("é", MaxLength-1),
		"ébauche de la fonctionnalité",
		"Bump version to 1.2.3",
	}

	for _, s := range subjects {
		t.Run(s, func(t *testing.T) {
			v := Validate(s)
			assert.True(t, v.Valid, "reason: %s", v.Reason)
			assert.Empty(t, v.Reason)
			assert.Empty(t, v.Rule)
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	for _, s := range []string{"WIP: x", "Do the thing.", "Add support for widget caching"} {
		assert.Equal(t, Validate(s), Validate(s))
	}
}

func TestValidate_KnownInvalidSubjects(t *testing.T) {
	// Regression table of subjects that have slipped into branches before.
	invalid := []string{
		"WIP",
		"wip: rework parser",
		"fixup! Rework parser",
		"tmp: log everything",
		"Rework parser.",
		"rework parser",
		"Deploy branch to test",
		"Merge branch 'main' into parser-rework",
		"Rework the parser so that it no longer allocates on every token it reads",
	}

	for _, s := range invalid {
		t.Run(s, func(t *testing.T) {
			v := Validate(s)
			require.False(t, v.Valid)
			require.NotEmpty(t, v.Reason)
		})
	}
}

func TestRules_Order(t *testing.T) {
	got := Rules()
	ids := make([]RuleID, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
		assert.NotEmpty(t, r.Reason)
	}
	assert.Equal(t, []RuleID{
		RuleWIP,
		RuleFixup,
		RuleTemporary,
		RuleTrailingPeriod,
		RuleCapitalisation,
		RuleDeployToTest,
		RuleMergeBranch,
		RuleLength,
	}, ids)

	// Callers get a copy.
	got[0].Reason = "changed"
	assert.Equal(t, "WIP commits should be rebased", Rules()[0].Reason)
}
