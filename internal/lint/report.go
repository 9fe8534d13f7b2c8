// SPDX-License-Identifier: MPL-2.0

package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// severityOrder fixes the reporting order of severities.
var severityOrder = []Severity{SeverityWarning, SeverityInfo}

// WriteMarkdown writes the lint report as a markdown summary to path.
func WriteMarkdown(report *Report, path string) error {
	if report == nil {
		return errors.New("report is nil")
	}
	if path == "" {
		return errors.New("report path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}

	generatedAt := report.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	var sb strings.Builder
	sb.WriteString("# Sheet Lint Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", generatedAt.UTC().Format(time.RFC3339))

	sb.WriteString("## Metrics\n\n")
	fmt.Fprintf(&sb, "- Files checked: %d\n", report.Metrics.FilesChecked)
	fmt.Fprintf(&sb, "- Findings: %d\n\n", len(report.Findings))

	sb.WriteString("| Rule | Findings |\n")
	sb.WriteString("| --- | --- |\n")
	for _, rule := range ruleOrder {
		fmt.Fprintf(&sb, "| %s | %d |\n", rule, report.Metrics.CountsByRule[rule])
	}
	sb.WriteString("\n")

	sb.WriteString("| Severity | Findings |\n")
	sb.WriteString("| --- | --- |\n")
	for _, sev := range severityOrder {
		fmt.Fprintf(&sb, "| %s | %d |\n", sev, report.Metrics.CountsBySeverity[sev])
	}
	sb.WriteString("\n")

	if len(report.Findings) > 0 {
		sb.WriteString("## Findings\n\n")
		for _, f := range report.Findings {
			fmt.Fprintf(&sb, "- `%s` %s: %s\n", f.Rule, f.Location(), f.Message)
		}
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteJSON writes the report to the provided writer as indented JSON.
func WriteJSON(w io.Writer, report *Report) error {
	if w == nil {
		return errors.New("writer is nil")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Location formats the finding position as path:line.
func (f Finding) Location() string {
	if f.Line == 0 {
		return f.Path
	}
	return fmt.Sprintf("%s:%d", f.Path, f.Line)
}
