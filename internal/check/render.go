package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Render writes report to w in the given format.
func Render(w io.Writer, report *Report, format string) error {
	switch format {
	case FormatText, "":
		return RenderText(w, report)
	case FormatJSON:
		return RenderJSON(w, report)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
	}
}

// RenderText writes one FAIL line per invalid subject followed by a summary.
func RenderText(w io.Writer, report *Report) error {
	var b strings.Builder
	for _, f := range report.Failed {
		if f.ShortID != "" {
			fmt.Fprintf(&b, "FAIL: %s %q: %s\n", f.ShortID, f.Subject, f.Reason)
		} else {
			fmt.Fprintf(&b, "FAIL: %q: %s\n", f.Subject, f.Reason)
		}
	}

	against := ""
	if report.Target != "" {
		against = " against " + report.Target
	}
	if report.Status == StatusPass {
		fmt.Fprintf(&b, "PASS: %d commit subject(s) checked%s\n", report.Checked, against)
	} else {
		fmt.Fprintf(&b, "Checked %d commit subject(s)%s: %d invalid\n", report.Checked, against, len(report.Failed))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing text output: %w", err)
	}
	return nil
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}
