// SPDX-License-Identifier: MPL-2.0

package lint

import "time"

// Lint rule identifiers and severity levels.
const (
	// RuleTOCAnchor checks that every table-of-contents link resolves to an
	// existing heading anchor.
	RuleTOCAnchor Rule = "toc-anchor"
	// RuleTableColumns checks that every table row has the header's column count.
	RuleTableColumns Rule = "table-columns"
	// RuleFencePaired checks that every opening code fence has a closing fence.
	RuleFencePaired Rule = "fence-paired"
	// RuleHeadingJump checks that no heading skips a nesting level downward.
	RuleHeadingJump Rule = "heading-jump"
	// RuleAnchorDup checks that no two headings produce the same anchor slug.
	RuleAnchorDup Rule = "anchor-dup"
	// RuleShellSyntax checks that sh/bash fences contain parseable shell.
	// The snippets are parsed, never executed.
	RuleShellSyntax Rule = "shell-syntax"

	// SeverityWarning marks structural defects a renderer would mishandle.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks cosmetic defects.
	SeverityInfo Severity = "info"
)

type (
	// Rule identifies a lint rule.
	Rule string

	// Severity identifies the severity of a finding.
	Severity string

	// Finding is a single lint result.
	Finding struct {
		Rule     Rule     `json:"rule"`
		Severity Severity `json:"severity"`
		Path     string   `json:"path"`
		Line     int      `json:"line"`
		Message  string   `json:"message"`
	}

	// Metrics captures aggregate counts for a lint run.
	Metrics struct {
		FilesChecked     int              `json:"files_checked"`
		CountsByRule     map[Rule]int     `json:"counts_by_rule"`
		CountsBySeverity map[Severity]int `json:"counts_by_severity"`
	}

	// Report is the complete result of a lint run.
	Report struct {
		GeneratedAt time.Time `json:"generated_at"`
		Findings    []Finding `json:"findings"`
		Metrics     Metrics   `json:"metrics"`
	}
)

// ruleOrder fixes the reporting order of rules.
var ruleOrder = []Rule{
	RuleTOCAnchor,
	RuleTableColumns,
	RuleFencePaired,
	RuleHeadingJump,
	RuleAnchorDup,
	RuleShellSyntax,
}

// AllRules returns every rule id in reporting order.
func AllRules() []Rule {
	return append([]Rule(nil), ruleOrder...)
}

// IsValid reports whether r names a known rule.
func (r Rule) IsValid() bool {
	for _, known := range ruleOrder {
		if r == known {
			return true
		}
	}
	return false
}

// severityFor maps a rule to its default severity.
func severityFor(rule Rule) Severity {
	if rule == RuleShellSyntax {
		return SeverityInfo
	}
	return SeverityWarning
}

// ApplySeverity assigns default severities to findings lacking one.
func ApplySeverity(findings []Finding) []Finding {
	if len(findings) == 0 {
		return findings
	}
	updated := append([]Finding(nil), findings...)
	for i, f := range updated {
		if f.Severity == "" {
			updated[i].Severity = severityFor(f.Rule)
		}
	}
	return updated
}

// ComputeMetrics calculates per-rule and per-severity counts.
func ComputeMetrics(filesChecked int, findings []Finding) Metrics {
	m := Metrics{
		FilesChecked:     filesChecked,
		CountsByRule:     make(map[Rule]int),
		CountsBySeverity: make(map[Severity]int),
	}
	for _, rule := range ruleOrder {
		m.CountsByRule[rule] = 0
	}
	for _, f := range findings {
		m.CountsByRule[f.Rule]++
		m.CountsBySeverity[f.Severity]++
	}
	return m
}
