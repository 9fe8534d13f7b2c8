// SPDX-License-Identifier: MPL-2.0

package sheettest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type (
	// SheetOption configures a generated sheet.
	SheetOption func(*builder)

	// Entry appends markdown content under a topic.
	Entry func(*strings.Builder)

	builder struct {
		frontmatter map[string]string
		body        strings.Builder
	}
)

// NewSheet builds the markdown source of a sheet with the given title.
// By default the sheet has only the title heading; add topics and
// frontmatter through options.
func NewSheet(title string, opts ...SheetOption) string {
	b := &builder{}
	fmt.Fprintf(&b.body, "# %s\n", title)

	for _, opt := range opts {
		opt(b)
	}

	var out strings.Builder
	if len(b.frontmatter) > 0 {
		out.WriteString("+++\n")
		for _, key := range []string{"title", "description", "language"} {
			if v, ok := b.frontmatter[key]; ok {
				fmt.Fprintf(&out, "%s = %q\n", key, v)
			}
		}
		out.WriteString("+++\n\n")
	}
	out.WriteString(b.body.String())
	return out.String()
}

// WithFrontmatter adds a TOML frontmatter block. Recognized keys are
// title, description, and language.
func WithFrontmatter(key, value string) SheetOption {
	return func(b *builder) {
		if b.frontmatter == nil {
			b.frontmatter = make(map[string]string)
		}
		b.frontmatter[key] = value
	}
}

// WithTopic appends a heading of the given level followed by its entries.
func WithTopic(level int, title string, entries ...Entry) SheetOption {
	return func(b *builder) {
		fmt.Fprintf(&b.body, "\n%s %s\n", strings.Repeat("#", level), title)
		for _, entry := range entries {
			entry(&b.body)
		}
	}
}

// Code appends a fenced code block entry.
func Code(language, text string) Entry {
	return func(b *strings.Builder) {
		fmt.Fprintf(b, "\n```%s\n%s", language, text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}
}

// Table appends a pipe table entry with the given header and rows.
func Table(header []string, rows ...[]string) Entry {
	return func(b *strings.Builder) {
		b.WriteString("\n| " + strings.Join(header, " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
		for _, row := range rows {
			b.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
	}
}

// Text appends a prose paragraph entry.
func Text(content string) Entry {
	return func(b *strings.Builder) {
		b.WriteString("\n" + content + "\n")
	}
}

// TOC appends a table-of-contents link list entry. Each target becomes a
// "[target](#target)" bullet.
func TOC(targets ...string) Entry {
	return func(b *strings.Builder) {
		b.WriteString("\n")
		for _, target := range targets {
			fmt.Fprintf(b, "- [%s](#%s)\n", target, target)
		}
	}
}

// WriteFile writes a sheet source to dir/name and returns the path.
// The test fails immediately if the write fails.
func WriteFile(t testing.TB, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write fixture sheet: %v", err)
	}
	return path
}
