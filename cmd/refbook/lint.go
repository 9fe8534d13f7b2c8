// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"refbook/internal/config"
	"refbook/internal/discovery"
	"refbook/internal/issue"
	"refbook/internal/lint"

	"github.com/spf13/cobra"
)

var (
	lintStrict  bool
	lintJSON    bool
	lintReport  string
	lintDisable []string

	// lintCmd checks sheets for structural defects
	lintCmd = &cobra.Command{
		Use:   "lint [files...]",
		Short: "Check sheets for structural defects",
		Long: `Check sheets for structural defects.

Without arguments, every discovered sheet is checked. Rules:

  toc-anchor     every TOC link resolves to an existing heading anchor
  table-columns  every table row has the header's column count
  fence-paired   every opening code fence has a closing fence
  heading-jump   no heading skips a nesting level downward
  anchor-dup     no two headings produce the same anchor
  shell-syntax   sh/bash fences contain parseable shell (never executed)

Findings are warnings by default; --strict makes any finding fail the
run with a non-zero exit code.`,
		RunE: runLint,
	}
)

func init() {
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "exit non-zero on any finding")
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "write the report as JSON to stdout")
	lintCmd.Flags().StringVar(&lintReport, "report", "", "write a markdown report to the given path")
	lintCmd.Flags().StringSliceVar(&lintDisable, "disable", nil, "lint rules to skip (repeatable)")
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	paths := args
	if len(paths) == 0 {
		d := discovery.New(cfg, sheetPaths...)
		files, err := d.DiscoverAll()
		if err != nil {
			return err
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		return issue.NewErrorContext().
			WithOperation("lint sheets").
			WithSuggestion("Run 'refbook init' to scaffold a starter sheet").
			WithSuggestion("Name sheet files explicitly: refbook lint <file>").
			Wrap(fmt.Errorf("no sheets found")).
			BuildError()
	}

	opts := lint.Options{Disabled: lintRules(cfg)}
	if err := opts.Validate(); err != nil {
		return err
	}

	report, err := lint.Files(paths, opts)
	if err != nil {
		return err
	}

	if lintReport != "" {
		if err := lint.WriteMarkdown(report, lintReport); err != nil {
			return err
		}
		fmt.Printf("%s Wrote report to %s\n", SuccessStyle.Render("✓"), lintReport)
	}

	if lintJSON {
		if err := lint.WriteJSON(os.Stdout, report); err != nil {
			return err
		}
	} else {
		printFindings(report)
	}

	strict := lintStrict || cfg.Lint.Strict
	if strict && len(report.Findings) > 0 {
		printIssueCard(issue.LintProblemsFoundId)
		return &ExitError{Code: 1, Err: fmt.Errorf("%d lint finding(s)", len(report.Findings))}
	}
	return nil
}

// lintRules merges rules disabled on the command line with rules disabled in
// the configuration file.
func lintRules(cfg *config.Config) []lint.Rule {
	seen := make(map[lint.Rule]bool)
	var rules []lint.Rule
	for _, r := range append(append([]string(nil), cfg.Lint.DisabledRules...), lintDisable...) {
		rule := lint.Rule(r)
		if !seen[rule] {
			seen[rule] = true
			rules = append(rules, rule)
		}
	}
	return rules
}

// printFindings writes the human-readable lint summary to stdout.
func printFindings(report *lint.Report) {
	if len(report.Findings) == 0 {
		fmt.Printf("%s %d file(s) checked, no problems found\n",
			SuccessStyle.Render("✓"), report.Metrics.FilesChecked)
		return
	}

	for _, f := range report.Findings {
		style := WarningStyle
		if f.Severity == lint.SeverityInfo {
			style = SubtitleStyle
		}
		fmt.Printf("%s %s [%s] %s\n",
			style.Render(string(f.Severity)+":"), f.Location(), f.Rule, f.Message)
	}

	fmt.Println()
	fmt.Printf("%d file(s) checked, %d finding(s)\n",
		report.Metrics.FilesChecked, len(report.Findings))
}
