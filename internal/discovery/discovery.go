// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"os"

	"refbook/internal/config"
	"refbook/internal/issue"
	"refbook/pkg/sheet"
)

// SheetNotFoundError is returned when an explicitly named sheet file does not
// exist or is a directory.
type SheetNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet file not found: %s", e.Path)
}

const (
	// SourceExplicit indicates the file was named directly (--sheet flag or argument)
	SourceExplicit Source = iota
	// SourceCurrentDir indicates the file was found in the current directory
	SourceCurrentDir
	// SourceUserDir indicates the file was found in ~/.refbook/sheets
	SourceUserDir
	// SourceConfigPath indicates the file was found in a configured search path
	SourceConfigPath
)

const (
	// SheetExt is the extension sheet files carry in scanned directories.
	SheetExt = ".sheet.md"
	// LocalSheetName is the conventional sheet file name for the current directory.
	LocalSheetName = "REFBOOK.md"
)

type (
	// Source represents where a sheet file was found
	Source int

	// DiscoveredSheet represents a found sheet file with its source
	DiscoveredSheet struct {
		// Path is the absolute path to the sheet file
		Path string
		// Source indicates where the file was found
		Source Source
		// Sheet is the parsed content (nil until loaded, or on parse failure)
		Sheet *sheet.Sheet
		// Error contains any error that occurred during parsing
		Error error
	}

	// Discovery finds and loads sheet files according to source precedence.
	Discovery struct {
		cfg      *config.Config
		baseDir  string
		userDir  string
		explicit []string

		// initDiagnostics holds non-fatal failures from construction
		// (os.Getwd, SheetsDir) so they surface through the standard
		// diagnostic pipeline instead of being lost.
		initDiagnostics []Diagnostic
	}
)

// String returns a human-readable source name
func (s Source) String() string {
	switch s {
	case SourceExplicit:
		return "explicit path"
	case SourceCurrentDir:
		return "current directory"
	case SourceUserDir:
		return "user sheets (~/.refbook/sheets)"
	case SourceConfigPath:
		return "configured search path"
	default:
		return "unknown"
	}
}

// New creates a Discovery instance. Explicit paths, when given, take
// precedence over every scanned source.
func New(cfg *config.Config, explicitPaths ...string) *Discovery {
	d := &Discovery{cfg: cfg, explicit: explicitPaths}

	baseDir, err := os.Getwd()
	if err != nil {
		d.initDiagnostics = append(d.initDiagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     "working_dir_unavailable",
			Message:  fmt.Sprintf("failed to determine working directory, skipping current-directory discovery: %v", err),
			Cause:    err,
		})
	} else {
		d.baseDir = baseDir
	}

	userDir, err := config.SheetsDir()
	if err != nil {
		d.initDiagnostics = append(d.initDiagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     "user_sheets_dir_unavailable",
			Message:  fmt.Sprintf("failed to resolve user sheets directory, skipping: %v", err),
			Cause:    err,
		})
	} else {
		d.userDir = userDir
	}

	return d
}

// SetBaseDir overrides the current-directory source. Intended for tests.
func (d *Discovery) SetBaseDir(dir string) { d.baseDir = dir }

// SetUserDir overrides the user sheets directory source. Intended for tests.
func (d *Discovery) SetUserDir(dir string) { d.userDir = dir }

// LoadAll discovers and parses all sheet files. Parse failures do not abort
// the load: the failing file carries its error and a diagnostic is emitted,
// so one broken sheet cannot hide every other sheet from the catalog.
func (d *Discovery) LoadAll() (*LoadResult, error) {
	files, diagnostics, err := d.discoverAllWithDiagnostics()
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		s, parseErr := sheet.ParseFile(file.Path)
		if parseErr != nil {
			file.Error = parseErr
			diagnostics = append(diagnostics, Diagnostic{
				Severity: SeverityError,
				Code:     CodeSheetParseSkipped,
				Message:  fmt.Sprintf("failed to parse sheet %s: %v", file.Path, parseErr),
				Path:     file.Path,
				Cause:    parseErr,
			})
			continue
		}
		file.Sheet = s
	}

	return &LoadResult{Sheets: files, Diagnostics: diagnostics}, nil
}

// LoadFirst loads the first sheet found, respecting precedence. Unlike
// LoadAll it fails hard: an empty result or a parse failure on the winning
// file is an error the caller must handle.
func (d *Discovery) LoadFirst() (*DiscoveredSheet, error) {
	files, _, err := d.discoverAllWithDiagnostics()
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("discover sheets").
			WithSuggestion("Run 'refbook init' to scaffold a starter sheet").
			WithSuggestion("Pass a sheet file explicitly with --sheet <path>").
			Wrap(fmt.Errorf("no sheet file found")).
			BuildError()
	}

	file := files[0]
	s, parseErr := sheet.ParseFile(file.Path)
	if parseErr != nil {
		file.Error = parseErr
		return file, parseErr
	}

	file.Sheet = s
	return file, nil
}

// Parsed extracts the successfully parsed sheets from a LoadResult, in
// precedence order.
func (r *LoadResult) Parsed() []*sheet.Sheet {
	parsed := make([]*sheet.Sheet, 0, len(r.Sheets))
	for _, f := range r.Sheets {
		if f.Sheet != nil {
			parsed = append(parsed, f.Sheet)
		}
	}
	return parsed
}
