package check

import (
	"fmt"
	"strings"

	"github.com/bartekus/commitgate/internal/subject"
)

// Status represents the outcome of checking one subject or a whole run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// RuleEmpty is reported for commits whose message has no subject at all.
// subject.Validate accepts the empty string, so the runner catches it first.
const RuleEmpty subject.RuleID = "empty"

const reasonEmpty = "Commit subject should not be empty"

// Result is the verdict for a single commit.
type Result struct {
	ShortID string         `json:"short_id,omitempty"`
	Subject string         `json:"subject"`
	Status  Status         `json:"status"`
	Rule    subject.RuleID `json:"rule,omitempty"`
	Reason  string         `json:"reason,omitempty"`
}

// Report summarises a run.
type Report struct {
	Target  string   `json:"target,omitempty"`
	Status  Status   `json:"status"`
	Checked int      `json:"checked"`
	Results []Result `json:"results"`
	Failed  []Result `json:"failed"`
}

// FailureError is returned by Report.Err when at least one subject is invalid.
type FailureError struct {
	Failed []Result
}

func (e *FailureError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		if f.ShortID != "" {
			parts = append(parts, f.ShortID)
		} else {
			parts = append(parts, fmt.Sprintf("%q", f.Subject))
		}
	}
	return fmt.Sprintf("%d invalid commit subject(s): %s", len(e.Failed), strings.Join(parts, ", "))
}

// Err returns a *FailureError if the report failed, nil otherwise.
func (r *Report) Err() error {
	if r.Status == StatusPass {
		return nil
	}
	return &FailureError{Failed: r.Failed}
}

func (r *Report) add(res Result) {
	r.Checked++
	r.Results = append(r.Results, res)
	if res.Status == StatusFail {
		r.Failed = append(r.Failed, res)
		r.Status = StatusFail
	}
}

func newReport(target string) *Report {
	return &Report{
		Target:  target,
		Status:  StatusPass,
		Results: []Result{},
		Failed:  []Result{},
	}
}
