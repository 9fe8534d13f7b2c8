// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"refbook/internal/config"
	"refbook/internal/discovery"
	"refbook/internal/issue"
	"refbook/internal/render"
	"refbook/pkg/catalog"
)

// loadCatalog discovers and parses sheets, prints non-fatal diagnostics to
// stderr, and builds the topic catalog. Explicit --sheet paths win over
// scanned sources.
func loadCatalog() (*catalog.Catalog, error) {
	cfg := config.Get()

	d := discovery.New(cfg, sheetPaths...)
	result, err := d.LoadAll()
	if err != nil {
		var notFound *discovery.SheetNotFoundError
		if errors.As(err, &notFound) {
			printIssueCard(issue.SheetNotFoundId)
		}
		return nil, err
	}

	printDiagnostics(result.Diagnostics)

	sheets := result.Parsed()
	if len(sheets) == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("load sheets").
			WithSuggestion("Run 'refbook init' to scaffold a starter sheet").
			WithSuggestion("Pass a sheet file explicitly with --sheet <path>").
			Wrap(fmt.Errorf("no sheets found")).
			BuildError()
	}

	return catalog.New(sheets...), nil
}

// printDiagnostics renders discovery diagnostics to stderr. Warnings are
// shown only in verbose mode; errors always. A parse failure additionally
// gets its issue card, once, no matter how many sheets were skipped.
func printDiagnostics(diags []discovery.Diagnostic) {
	parseSkipped := false
	for _, diag := range diags {
		switch diag.Severity {
		case discovery.SeverityError:
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+diag.Message)
			if diag.Code == discovery.CodeSheetParseSkipped {
				parseSkipped = true
			}
		default:
			if verbose {
				fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+diag.Message)
			}
		}
	}
	if parseSkipped {
		printIssueCard(issue.SheetParseErrorId)
	}
}

// printIssueCard renders a known-issue card to stderr. Rendering failures
// are swallowed: the card supplements the error, it never replaces it.
func printIssueCard(id issue.Id) {
	if rendered, err := issue.Get(id).Render("dark"); err == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

// newRenderer builds a terminal renderer from the effective configuration.
func newRenderer() (*render.Renderer, error) {
	cfg := config.Get()
	return render.New(render.Options{
		Theme: cfg.UI.Theme,
		Width: cfg.UI.Width,
	})
}
