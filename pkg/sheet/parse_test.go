// SPDX-License-Identifier: MPL-2.0

package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSheet = `+++
title = "Go Cheat Sheet"
description = "Syntax reference"
language = "go"
+++

- [Variables](#variables)
- [Containers](#containers)

# Go Cheat Sheet

## Variables

Short declarations infer the type.

` + "```go\nx := 42\nvar y string\n```" + `

## Containers

| Feature | Syntax | Example |
| --- | --- | --- |
| slice | []T | s := []int{1} |
| map | map[K]V | m := map[string]int{} |

### Maps

Lookup returns a second ok value.
`

func TestParse_TopicTree(t *testing.T) {
	s, err := Parse([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if s.Meta.Title != "Go Cheat Sheet" {
		t.Errorf("Meta.Title = %q, want %q", s.Meta.Title, "Go Cheat Sheet")
	}
	if s.Meta.Language != "go" {
		t.Errorf("Meta.Language = %q, want %q", s.Meta.Language, "go")
	}

	if len(s.Topics) != 1 {
		t.Fatalf("len(Topics) = %d, want 1", len(s.Topics))
	}
	root := s.Topics[0]
	if root.Title != "Go Cheat Sheet" || root.Level != 1 {
		t.Fatalf("root topic = %q level %d", root.Title, root.Level)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(root.Children) = %d, want 2", len(root.Children))
	}

	containers := root.Children[1]
	if containers.Anchor != "containers" {
		t.Errorf("anchor = %q, want containers", containers.Anchor)
	}
	if len(containers.Children) != 1 || containers.Children[0].Title != "Maps" {
		t.Errorf("expected Maps as child of Containers, got %+v", containers.Children)
	}
}

func TestParse_Entries(t *testing.T) {
	s, err := Parse([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	all := s.AllTopics()
	if len(all) != 4 {
		t.Fatalf("len(AllTopics) = %d, want 4", len(all))
	}

	variables := all[1]
	if len(variables.Entries) != 2 {
		t.Fatalf("Variables entries = %d, want 2", len(variables.Entries))
	}
	if _, ok := variables.Entries[0].(*Text); !ok {
		t.Errorf("first Variables entry should be *Text, got %T", variables.Entries[0])
	}
	cb, ok := variables.Entries[1].(*CodeBlock)
	if !ok {
		t.Fatalf("second Variables entry should be *CodeBlock, got %T", variables.Entries[1])
	}
	if cb.Language != "go" {
		t.Errorf("code language = %q, want go", cb.Language)
	}
	if !strings.Contains(cb.Text, "x := 42") {
		t.Errorf("code text missing snippet: %q", cb.Text)
	}

	containers := all[2]
	tbl, ok := containers.Entries[0].(*Table)
	if !ok {
		t.Fatalf("Containers entry should be *Table, got %T", containers.Entries[0])
	}
	if len(tbl.Header) != 3 {
		t.Errorf("table header width = %d, want 3", len(tbl.Header))
	}
	if len(tbl.Rows) != 2 {
		t.Errorf("table rows = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "slice" {
		t.Errorf("rows[0][0] = %q, want slice", tbl.Rows[0][0])
	}
}

func TestParse_Preamble(t *testing.T) {
	s, err := Parse([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(s.Preamble) != 1 {
		t.Fatalf("len(Preamble) = %d, want 1", len(s.Preamble))
	}
	txt, ok := s.Preamble[0].(*Text)
	if !ok {
		t.Fatalf("preamble entry should be *Text, got %T", s.Preamble[0])
	}
	if !strings.Contains(txt.Content, "[Variables](#variables)") {
		t.Errorf("preamble should keep raw TOC links, got %q", txt.Content)
	}
}

func TestParse_LineNumbers(t *testing.T) {
	s, err := Parse([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// "# Go Cheat Sheet" sits on line 10 of the file, frontmatter included.
	if got := s.Topics[0].Line; got != 10 {
		t.Errorf("root topic line = %d, want 10", got)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	s, err := Parse([]byte("# Only\n\ntext\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Meta.Title != "" {
		t.Errorf("Meta should be zero, got %+v", s.Meta)
	}
	if s.Topics[0].Line != 1 {
		t.Errorf("heading line = %d, want 1", s.Topics[0].Line)
	}
}

func TestParse_UnterminatedFrontmatter(t *testing.T) {
	_, err := Parse([]byte("+++\ntitle = \"x\"\n\n# Heading\n"))
	if err == nil {
		t.Fatal("expected error for unterminated frontmatter")
	}
	var fmErr *FrontmatterError
	if !errors.As(err, &fmErr) {
		t.Fatalf("error type = %T, want *FrontmatterError", err)
	}
}

func TestParse_InvalidTOML(t *testing.T) {
	_, err := Parse([]byte("+++\nnot toml ===\n+++\n# H\n"))
	if err == nil {
		t.Fatal("expected error for invalid TOML frontmatter")
	}
}

func TestParse_DuplicateHeadings(t *testing.T) {
	src := "# A\n## Usage\n## Usage\n"
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	kids := s.Topics[0].Children
	if kids[0].Anchor != "usage" || kids[1].Anchor != "usage-1" {
		t.Errorf("duplicate anchors = %q, %q; want usage, usage-1", kids[0].Anchor, kids[1].Anchor)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.sheet.md")
	if err := os.WriteFile(path, []byte(sampleSheet), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if s.Path != path {
		t.Errorf("Path = %q, want %q", s.Path, path)
	}
	if s.Title() != "Go Cheat Sheet" {
		t.Errorf("Title() = %q", s.Title())
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "absent.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTopic_Markdown(t *testing.T) {
	s, err := Parse([]byte(sampleSheet))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	md := s.AllTopics()[2].Markdown()
	if !strings.HasPrefix(md, "## Containers") {
		t.Errorf("Markdown() should start with heading, got %q", md)
	}
	if !strings.Contains(md, "| slice | []T | s := []int{1} |") {
		t.Errorf("Markdown() should reconstruct table rows, got %q", md)
	}
	if !strings.Contains(md, "### Maps") {
		t.Errorf("Markdown() should include nested sub-topics, got %q", md)
	}

	md = s.AllTopics()[1].Markdown()
	if !strings.Contains(md, "```go\nx := 42\n") {
		t.Errorf("Markdown() should reconstruct fences, got %q", md)
	}
}
