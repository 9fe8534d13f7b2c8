// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"refbook/internal/config"
	"refbook/internal/discovery"
	"refbook/internal/lint"
	"refbook/pkg/sheet"

	"github.com/spf13/cobra"
)

const (
	tocBeginMarker = "<!-- toc -->"
	tocEndMarker   = "<!-- /toc -->"
)

var (
	tocCheck bool
	tocWrite bool

	// tocCmd generates a table of contents for a sheet
	tocCmd = &cobra.Command{
		Use:   "toc [file]",
		Short: "Generate a table of contents for a sheet",
		Long: `Generate a table of contents for a sheet.

Without a file argument the highest-precedence discovered sheet is used.
By default the TOC is printed to stdout. With --write it is inserted into
the file between '` + tocBeginMarker + `' and '` + tocEndMarker + `' markers,
replacing any existing block. With --check the sheet's own TOC links are
verified against its heading anchors instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTOC,
	}
)

func init() {
	tocCmd.Flags().BoolVar(&tocCheck, "check", false, "verify existing TOC links resolve, don't generate")
	tocCmd.Flags().BoolVar(&tocWrite, "write", false, "write the TOC into the file between toc markers")
}

func runTOC(cmd *cobra.Command, args []string) error {
	path, err := tocTarget(args)
	if err != nil {
		return err
	}

	if tocCheck {
		return checkTOC(path)
	}

	s, err := sheet.ParseFile(path)
	if err != nil {
		return err
	}

	toc := generateTOC(s)
	if !tocWrite {
		fmt.Print(toc)
		return nil
	}

	if err := writeTOC(path, toc); err != nil {
		return err
	}
	fmt.Printf("%s Updated TOC in %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

// tocTarget resolves the sheet file the command operates on.
func tocTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	d := discovery.New(config.Get(), sheetPaths...)
	files, err := d.DiscoverAll()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no sheet file found; name one explicitly: refbook toc <file>")
	}
	return files[0].Path, nil
}

// generateTOC produces a markdown link list for every topic below the sheet
// title, indented by nesting level.
func generateTOC(s *sheet.Sheet) string {
	var b strings.Builder
	for _, t := range s.AllTopics() {
		if t.Level == 1 {
			continue // The sheet title doesn't list itself.
		}
		b.WriteString(strings.Repeat("  ", t.Level-2))
		fmt.Fprintf(&b, "- [%s](#%s)\n", t.Title, t.Anchor)
	}
	return b.String()
}

// checkTOC verifies that every TOC link in the file resolves to a heading
// anchor, using only the toc-anchor lint rule.
func checkTOC(path string) error {
	var disabled []lint.Rule
	for _, rule := range lint.AllRules() {
		if rule != lint.RuleTOCAnchor {
			disabled = append(disabled, rule)
		}
	}

	report, err := lint.Files([]string{path}, lint.Options{Disabled: disabled})
	if err != nil {
		return err
	}

	if len(report.Findings) == 0 {
		fmt.Printf("%s All TOC links in %s resolve\n", SuccessStyle.Render("✓"), path)
		return nil
	}

	for _, f := range report.Findings {
		fmt.Printf("%s %s %s\n", WarningStyle.Render("warning:"), f.Location(), f.Message)
	}
	return &ExitError{Code: 1, Err: fmt.Errorf("%d unresolved TOC link(s)", len(report.Findings))}
}

// writeTOC inserts or replaces the marker-delimited TOC block in the file.
// Without existing markers the block is inserted after the first H1 heading.
func writeTOC(path, toc string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	block := tocBeginMarker + "\n" + toc + tocEndMarker + "\n"
	content := string(data)

	begin := strings.Index(content, tocBeginMarker)
	end := strings.Index(content, tocEndMarker)
	switch {
	case begin >= 0 && end > begin:
		rest := strings.TrimPrefix(content[end+len(tocEndMarker):], "\n")
		content = content[:begin] + block + rest
	case begin >= 0 || end >= 0:
		return fmt.Errorf("unpaired toc markers in %s", path)
	default:
		lines := strings.SplitAfter(content, "\n")
		inserted := false
		var b strings.Builder
		for _, line := range lines {
			b.WriteString(line)
			if !inserted && strings.HasPrefix(line, "# ") {
				b.WriteString("\n" + block)
				inserted = true
			}
		}
		if !inserted {
			// No H1: prepend the block.
			content = block + "\n" + content
		} else {
			content = b.String()
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
