// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverAll finds all sheet files from all sources in 4-level precedence order:
//  1. Explicit paths (--sheet flags, highest precedence)
//  2. Current directory (*.sheet.md and REFBOOK.md, non-recursive)
//  3. User sheets directory (~/.refbook/sheets, recursive)
//  4. Configured search paths (recursive)
//
// When the same file basename appears in multiple sources, the earlier source
// wins and the later occurrence is skipped with a diagnostic.
func (d *Discovery) DiscoverAll() ([]*DiscoveredSheet, error) {
	files, _, err := d.discoverAllWithDiagnostics()
	return files, err
}

// discoverAllWithDiagnostics discovers files plus non-fatal warnings about
// skipped paths so callers can surface observability without failing.
func (d *Discovery) discoverAllWithDiagnostics() ([]*DiscoveredSheet, []Diagnostic, error) {
	var files []*DiscoveredSheet
	// Seed with any init-time diagnostics (e.g., os.Getwd failures) so they
	// surface through the standard diagnostic rendering pipeline.
	diagnostics := make([]Diagnostic, 0, len(d.initDiagnostics))
	diagnostics = append(diagnostics, d.initDiagnostics...)

	// Tracks basenames already claimed by a higher-precedence source.
	seen := make(map[string]string)

	// 1. Explicit paths (highest precedence). A missing explicit path is an
	// error, not a diagnostic: the user named it directly.
	for _, path := range d.explicit {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve sheet path %q: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			return nil, nil, &SheetNotFoundError{Path: path}
		}
		files, diagnostics = appendSheet(files, diagnostics, seen, &DiscoveredSheet{Path: abs, Source: SourceExplicit})
	}

	// 2. Current directory (non-recursive). Skipped when baseDir is empty
	// (e.g., os.Getwd() failed because the working directory was deleted);
	// this prevents filepath.Abs("") from silently resolving to a directory
	// that may not exist.
	if d.baseDir != "" {
		localFiles, localDiags := d.discoverInDir(d.baseDir, SourceCurrentDir)
		diagnostics = append(diagnostics, localDiags...)
		for _, f := range localFiles {
			files, diagnostics = appendSheet(files, diagnostics, seen, f)
		}
	}

	// 3. User sheets directory (~/.refbook/sheets)
	if d.userDir != "" {
		userFiles, userDiags := d.discoverInDirRecursive(d.userDir, SourceUserDir)
		diagnostics = append(diagnostics, userDiags...)
		for _, f := range userFiles {
			files, diagnostics = appendSheet(files, diagnostics, seen, f)
		}
	}

	// 4. Configured search paths
	if d.cfg != nil {
		for _, searchPath := range d.cfg.SearchPaths {
			pathFiles, pathDiags := d.discoverInDirRecursive(searchPath, SourceConfigPath)
			diagnostics = append(diagnostics, pathDiags...)
			for _, f := range pathFiles {
				files, diagnostics = appendSheet(files, diagnostics, seen, f)
			}
		}
	}

	return files, diagnostics, nil
}

// discoverInDir looks for sheet files directly inside a directory.
// REFBOOK.md sorts ahead of *.sheet.md files within the same directory.
func (d *Discovery) discoverInDir(dir string, source Source) ([]*DiscoveredSheet, []Diagnostic) {
	var files []*DiscoveredSheet
	diagnostics := make([]Diagnostic, 0)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		diagnostics = append(diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     "scan_path_invalid",
			Message:  fmt.Sprintf("failed to resolve scan path %q: %v", dir, err),
			Path:     dir,
			Cause:    err,
		})
		return files, diagnostics
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return files, diagnostics
		}
		diagnostics = append(diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     "scan_failed",
			Message:  fmt.Sprintf("failed to list directory %s while scanning sheets: %v", absDir, err),
			Path:     absDir,
			Cause:    err,
		})
		return files, diagnostics
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isSheetFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == LocalSheetName) != (names[j] == LocalSheetName) {
			return names[i] == LocalSheetName
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		files = append(files, &DiscoveredSheet{
			Path:   filepath.Join(absDir, name),
			Source: source,
		})
	}

	return files, diagnostics
}

// discoverInDirRecursive finds all sheet files in a directory tree.
func (d *Discovery) discoverInDirRecursive(dir string, source Source) ([]*DiscoveredSheet, []Diagnostic) {
	var files []*DiscoveredSheet
	diagnostics := make([]Diagnostic, 0)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		diagnostics = append(diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     "scan_path_invalid",
			Message:  fmt.Sprintf("failed to resolve scan path %q: %v", dir, err),
			Path:     dir,
			Cause:    err,
		})
		return files, diagnostics
	}

	if _, err := os.Stat(absDir); os.IsNotExist(err) {
		return files, diagnostics
	}

	walkErr := filepath.WalkDir(absDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Code:     "scan_entry_skipped",
				Message:  fmt.Sprintf("skipping unreadable entry %s: %v", path, err),
				Path:     path,
				Cause:    err,
			})
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if strings.HasSuffix(entry.Name(), SheetExt) {
			files = append(files, &DiscoveredSheet{Path: path, Source: source})
		}
		return nil
	})
	if walkErr != nil {
		diagnostics = append(diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     "scan_failed",
			Message:  fmt.Sprintf("failed to walk directory %s: %v", absDir, walkErr),
			Path:     absDir,
			Cause:    walkErr,
		})
	}

	// WalkDir yields lexical order per directory but keep the whole set
	// deterministic across sources of the same kind.
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return files, diagnostics
}

// appendSheet adds a discovered file unless a higher-precedence source
// already claimed its basename, in which case a shadowing diagnostic is
// emitted and the file is skipped.
func appendSheet(
	files []*DiscoveredSheet,
	diagnostics []Diagnostic,
	seen map[string]string,
	file *DiscoveredSheet,
) ([]*DiscoveredSheet, []Diagnostic) {
	base := filepath.Base(file.Path)
	if prior, ok := seen[base]; ok {
		if prior != file.Path {
			diagnostics = append(diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeSheetShadowed,
				Message:  fmt.Sprintf("sheet %s is shadowed by %s from a higher-precedence source", file.Path, prior),
				Path:     file.Path,
			})
		}
		return files, diagnostics
	}
	seen[base] = file.Path
	return append(files, file), diagnostics
}

// isSheetFile reports whether a basename looks like a sheet file for
// non-recursive current-directory discovery.
func isSheetFile(name string) bool {
	return name == LocalSheetName || strings.HasSuffix(name, SheetExt)
}
