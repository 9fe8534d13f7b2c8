// SPDX-License-Identifier: MPL-2.0

package lint

import (
	"fmt"
	"os"
	"time"
)

type (
	// Options configures a lint run.
	Options struct {
		// Disabled lists rules to skip.
		Disabled []Rule
	}

	// UnknownRuleError is returned when Options name a rule that does not exist.
	UnknownRuleError struct {
		Rule Rule
	}
)

// Error implements the error interface.
func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown lint rule: %q", e.Rule)
}

// Validate checks that every disabled rule exists.
func (o Options) Validate() error {
	for _, r := range o.Disabled {
		if !r.IsValid() {
			return &UnknownRuleError{Rule: r}
		}
	}
	return nil
}

// enabled reports whether the rule should run.
func (o Options) enabled(rule Rule) bool {
	for _, r := range o.Disabled {
		if r == rule {
			return false
		}
	}
	return true
}

// Source lints a single in-memory document. path is used for reporting only.
func Source(path string, src []byte, opts Options) ([]Finding, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	doc := scan(path, src)
	var findings []Finding
	for _, rule := range ruleOrder {
		if !opts.enabled(rule) {
			continue
		}
		findings = append(findings, checks[rule](doc)...)
	}
	return ApplySeverity(findings), nil
}

// Files lints the given sheet files and assembles the run report.
func Files(paths []string, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sheet: %w", err)
		}
		fs, err := Source(path, src, opts)
		if err != nil {
			return nil, err
		}
		findings = append(findings, fs...)
	}

	return &Report{
		GeneratedAt: time.Now().UTC(),
		Findings:    findings,
		Metrics:     ComputeMetrics(len(paths), findings),
	}, nil
}
