// SPDX-License-Identifier: MPL-2.0

package discovery

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"
)

// Diagnostic codes callers are expected to match on.
const (
	// CodeSheetParseSkipped marks a sheet that failed to parse and was
	// excluded from the load result.
	CodeSheetParseSkipped = "sheet_parse_skipped"
	// CodeSheetShadowed marks a sheet hidden by a same-named sheet from a
	// higher-precedence source.
	CodeSheetShadowed = "sheet_shadowed"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "sheet_parse_skipped").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}

	// LoadResult bundles loaded sheets with the diagnostics produced while
	// discovering and parsing them. Diagnostics include unreadable search
	// paths, shadowed sheet files, and per-file parse failures that should be
	// rendered by the CLI layer rather than silently dropped.
	LoadResult struct {
		Sheets      []*DiscoveredSheet
		Diagnostics []Diagnostic
	}
)
