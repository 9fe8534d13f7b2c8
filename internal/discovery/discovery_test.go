// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"refbook/internal/config"
)

const minimalSheet = `# Git

## Basics

` + "```bash\ngit status\n```\n"

func writeSheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write sheet: %v", err)
	}
	return path
}

// newTestDiscovery builds a Discovery with both scanned directories pointed
// at throwaway temp dirs so the host environment cannot leak into tests.
func newTestDiscovery(t *testing.T, cfg *config.Config, explicit ...string) *Discovery {
	t.Helper()
	d := New(cfg, explicit...)
	d.SetBaseDir(t.TempDir())
	d.SetUserDir(t.TempDir())
	return d
}

func TestDiscoverAllCurrentDir(t *testing.T) {
	base := t.TempDir()
	writeSheet(t, base, "git.sheet.md", minimalSheet)
	writeSheet(t, base, LocalSheetName, minimalSheet)
	writeSheet(t, base, "notes.md", "# Not a sheet\n")

	d := newTestDiscovery(t, config.DefaultConfig())
	d.SetBaseDir(base)

	files, err := d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("DiscoverAll() found %d files, want 2", len(files))
	}
	// REFBOOK.md sorts ahead of other sheet files in the same directory.
	if filepath.Base(files[0].Path) != LocalSheetName {
		t.Errorf("first file = %s, want %s", files[0].Path, LocalSheetName)
	}
	if files[0].Source != SourceCurrentDir {
		t.Errorf("source = %v, want SourceCurrentDir", files[0].Source)
	}
}

func TestDiscoverAllExplicitPrecedence(t *testing.T) {
	base := t.TempDir()
	writeSheet(t, base, "git.sheet.md", minimalSheet)
	explicit := writeSheet(t, t.TempDir(), "tmux.md", minimalSheet)

	d := newTestDiscovery(t, config.DefaultConfig(), explicit)
	d.SetBaseDir(base)

	files, err := d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("DiscoverAll() found %d files, want 2", len(files))
	}
	if files[0].Source != SourceExplicit {
		t.Errorf("first source = %v, want SourceExplicit", files[0].Source)
	}
	if files[0].Path != explicit {
		t.Errorf("first path = %s, want %s", files[0].Path, explicit)
	}
}

func TestDiscoverAllExplicitMissing(t *testing.T) {
	d := newTestDiscovery(t, config.DefaultConfig(), filepath.Join(t.TempDir(), "nope.md"))

	_, err := d.DiscoverAll()
	if err == nil {
		t.Fatal("DiscoverAll() = nil, want error for missing explicit path")
	}
	var nfErr *SheetNotFoundError
	if !errors.As(err, &nfErr) {
		t.Errorf("errors.As(*SheetNotFoundError) = false for %v", err)
	}
}

func TestDiscoverAllUserDirRecursive(t *testing.T) {
	userDir := t.TempDir()
	writeSheet(t, userDir, filepath.Join("unix", "awk.sheet.md"), minimalSheet)
	writeSheet(t, userDir, "sed.sheet.md", minimalSheet)

	d := newTestDiscovery(t, config.DefaultConfig())
	d.SetUserDir(userDir)

	files, err := d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("DiscoverAll() found %d files, want 2", len(files))
	}
	for _, f := range files {
		if f.Source != SourceUserDir {
			t.Errorf("source for %s = %v, want SourceUserDir", f.Path, f.Source)
		}
	}
}

func TestDiscoverAllSearchPaths(t *testing.T) {
	searchDir := t.TempDir()
	writeSheet(t, searchDir, "docker.sheet.md", minimalSheet)

	cfg := config.DefaultConfig()
	cfg.SearchPaths = []string{searchDir, filepath.Join(searchDir, "does-not-exist")}

	d := newTestDiscovery(t, cfg)

	files, err := d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("DiscoverAll() found %d files, want 1", len(files))
	}
	if files[0].Source != SourceConfigPath {
		t.Errorf("source = %v, want SourceConfigPath", files[0].Source)
	}
}

func TestDiscoverAllShadowing(t *testing.T) {
	base := t.TempDir()
	userDir := t.TempDir()
	writeSheet(t, base, "git.sheet.md", minimalSheet)
	writeSheet(t, userDir, "git.sheet.md", minimalSheet)

	d := newTestDiscovery(t, config.DefaultConfig())
	d.SetBaseDir(base)
	d.SetUserDir(userDir)

	files, diags, err := d.discoverAllWithDiagnostics()
	if err != nil {
		t.Fatalf("discoverAllWithDiagnostics() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("found %d files, want 1 (shadowed duplicate skipped)", len(files))
	}
	if files[0].Source != SourceCurrentDir {
		t.Errorf("surviving source = %v, want SourceCurrentDir", files[0].Source)
	}

	found := false
	for _, diag := range diags {
		if diag.Code == "sheet_shadowed" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v, want a sheet_shadowed entry", diags)
	}
}

func TestLoadAllParseFailureIsDiagnostic(t *testing.T) {
	base := t.TempDir()
	writeSheet(t, base, "good.sheet.md", minimalSheet)
	writeSheet(t, base, "bad.sheet.md", "+++\ntitle = [broken\n+++\n# X\n")

	d := newTestDiscovery(t, config.DefaultConfig())
	d.SetBaseDir(base)

	result, err := d.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(result.Sheets) != 2 {
		t.Fatalf("LoadAll() found %d files, want 2", len(result.Sheets))
	}

	parsed := result.Parsed()
	if len(parsed) != 1 {
		t.Fatalf("Parsed() = %d sheets, want 1", len(parsed))
	}
	if parsed[0].Title() != "Git" {
		t.Errorf("parsed sheet title = %q, want Git", parsed[0].Title())
	}

	found := false
	for _, diag := range result.Diagnostics {
		if diag.Code == "sheet_parse_skipped" && diag.Severity == SeverityError {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v, want a sheet_parse_skipped error", result.Diagnostics)
	}
}

func TestLoadFirst(t *testing.T) {
	t.Run("loads highest precedence sheet", func(t *testing.T) {
		base := t.TempDir()
		writeSheet(t, base, "git.sheet.md", minimalSheet)

		d := newTestDiscovery(t, config.DefaultConfig())
		d.SetBaseDir(base)

		file, err := d.LoadFirst()
		if err != nil {
			t.Fatalf("LoadFirst() error = %v", err)
		}
		if file.Sheet == nil {
			t.Fatal("LoadFirst() returned nil Sheet")
		}
		if file.Sheet.Title() != "Git" {
			t.Errorf("title = %q, want Git", file.Sheet.Title())
		}
	})

	t.Run("no sheets anywhere", func(t *testing.T) {
		d := newTestDiscovery(t, config.DefaultConfig())

		_, err := d.LoadFirst()
		if err == nil {
			t.Fatal("LoadFirst() = nil, want error when nothing is found")
		}
	})
}

func TestSourceString(t *testing.T) {
	cases := map[Source]string{
		SourceExplicit:   "explicit path",
		SourceCurrentDir: "current directory",
		Source(99):       "unknown",
	}
	for src, want := range cases {
		if got := src.String(); got != want {
			t.Errorf("Source(%d).String() = %q, want %q", src, got, want)
		}
	}
}
