// SPDX-License-Identifier: MPL-2.0

package sheet

import "strings"

type (
	// Sheet is one parsed reference document.
	Sheet struct {
		// Path is the file the sheet was loaded from (empty for in-memory parses).
		Path string
		// Meta holds the optional TOML frontmatter metadata.
		Meta Metadata
		// Preamble contains entries appearing before the first heading
		// (typically the table of contents).
		Preamble []Entry
		// Topics are the top-level topics in document order.
		Topics []*Topic
	}

	// Metadata is the frontmatter block of a sheet, delimited by +++ lines.
	Metadata struct {
		// Title is the display title of the sheet.
		Title string `toml:"title"`
		// Description is a one-line summary.
		Description string `toml:"description"`
		// Language is the language the sheet documents (e.g. "python").
		Language string `toml:"language"`
	}

	// Topic is a named section of a sheet. Topic order and entry order are
	// insertion order and carry no meaning beyond presentation sequence.
	Topic struct {
		// Title is the heading text.
		Title string
		// Level is the heading level (1 for #, 2 for ##, ...).
		Level int
		// Anchor is the slug derived from the heading text, unique within
		// the sheet.
		Anchor string
		// Line is the 1-based source line of the heading.
		Line int
		// Entries are the tables, code blocks and prose owned by this topic,
		// in document order.
		Entries []Entry
		// Children are nested sub-topics in document order.
		Children []*Topic
	}

	// Entry is a single item within a topic: a Table, a CodeBlock, or a Text
	// paragraph.
	Entry interface {
		entry()
	}

	// Table is a pipe-delimited comparison table.
	Table struct {
		// Header holds the header row cells.
		Header []string
		// Rows holds the body rows. Row widths may differ from the header;
		// the linter flags that, the model preserves it.
		Rows [][]string
		// Line is the 1-based source line of the header row.
		Line int
	}

	// CodeBlock is a fenced code block. The text is an opaque payload, never
	// compiled or executed.
	CodeBlock struct {
		// Language is the fence info label (may be empty).
		Language string
		// Text is the literal block content.
		Text string
		// Line is the 1-based source line of the opening fence.
		Line int
	}

	// Text is a run of prose.
	Text struct {
		// Content is the paragraph text.
		Content string
		// Line is the 1-based source line where the paragraph starts.
		Line int
	}
)

func (*Table) entry()     {}
func (*CodeBlock) entry() {}
func (*Text) entry()      {}

// Title returns the sheet title: frontmatter title if present, otherwise the
// first level-1 heading, otherwise the path.
func (s *Sheet) Title() string {
	if s.Meta.Title != "" {
		return s.Meta.Title
	}
	for _, t := range s.Topics {
		if t.Level == 1 {
			return t.Title
		}
	}
	return s.Path
}

// AllTopics returns every topic of the sheet in document (pre-order) order.
func (s *Sheet) AllTopics() []*Topic {
	var out []*Topic
	var walk func(ts []*Topic)
	walk = func(ts []*Topic) {
		for _, t := range ts {
			out = append(out, t)
			walk(t.Children)
		}
	}
	walk(s.Topics)
	return out
}

// CodeBlocks returns the code block entries of the topic and its sub-topics,
// in document order.
func (t *Topic) CodeBlocks() []*CodeBlock {
	var out []*CodeBlock
	for _, e := range t.Entries {
		if cb, ok := e.(*CodeBlock); ok {
			out = append(out, cb)
		}
	}
	for _, child := range t.Children {
		out = append(out, child.CodeBlocks()...)
	}
	return out
}

// Markdown reconstructs the topic subtree (heading, entries, and nested
// sub-topics) as markdown source, suitable for standalone rendering.
func (t *Topic) Markdown() string {
	var sb strings.Builder
	t.writeMarkdown(&sb)
	return sb.String()
}

func (t *Topic) writeMarkdown(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("#", t.Level))
	sb.WriteString(" ")
	sb.WriteString(t.Title)
	sb.WriteString("\n")
	for _, e := range t.Entries {
		sb.WriteString("\n")
		switch v := e.(type) {
		case *Text:
			sb.WriteString(v.Content)
			sb.WriteString("\n")
		case *CodeBlock:
			sb.WriteString("```")
			sb.WriteString(v.Language)
			sb.WriteString("\n")
			sb.WriteString(v.Text)
			if !strings.HasSuffix(v.Text, "\n") && v.Text != "" {
				sb.WriteString("\n")
			}
			sb.WriteString("```\n")
		case *Table:
			writeRow(sb, v.Header)
			sep := make([]string, len(v.Header))
			for i := range sep {
				sep[i] = "---"
			}
			writeRow(sb, sep)
			for _, row := range v.Rows {
				writeRow(sb, row)
			}
		}
	}
	for _, child := range t.Children {
		sb.WriteString("\n")
		child.writeMarkdown(sb)
	}
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}
