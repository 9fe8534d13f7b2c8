// SPDX-License-Identifier: MPL-2.0

package sheet

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdown is the shared goldmark instance. Only the table extension is
// enabled; everything else a sheet contains is core markdown.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ParseFile reads and parses a sheet from disk.
func ParseFile(path string) (*Sheet, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	s, err := Parse(src)
	if err != nil {
		var fmErr *FrontmatterError
		if errors.As(err, &fmErr) {
			fmErr.Path = path
		}
		return nil, err
	}
	s.Path = path
	return s, nil
}

// Parse builds the sheet model from markdown source. Markdown itself always
// parses; errors are limited to malformed frontmatter.
func Parse(src []byte) (*Sheet, error) {
	meta, body, bodyLine, err := splitFrontmatter(src)
	if err != nil {
		return nil, &FrontmatterError{Err: err}
	}

	p := &parser{
		src:     body,
		lines:   newLineIndex(body),
		lineOff: bodyLine - 1,
		slugs:   NewSlugger(),
		sheet:   &Sheet{Meta: meta},
	}

	doc := markdown.Parser().Parse(text.NewReader(body))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		p.block(n)
	}
	return p.sheet, nil
}

// parser carries the state of one Parse call.
type parser struct {
	src     []byte
	lines   lineIndex
	lineOff int
	slugs   *Slugger
	sheet   *Sheet
	stack   []*Topic
}

// block dispatches one top-level block node into the topic tree.
func (p *parser) block(n ast.Node) {
	switch v := n.(type) {
	case *ast.Heading:
		p.heading(v)
	case *extast.Table:
		p.append(p.table(v))
	case *ast.FencedCodeBlock:
		p.append(p.fenced(v))
	case *ast.CodeBlock:
		p.append(p.indented(v))
	default:
		if e := p.prose(n); e != nil {
			p.append(e)
		}
	}
}

// heading opens a new topic at the heading's level.
func (p *parser) heading(h *ast.Heading) {
	title := nodeText(h, p.src)
	t := &Topic{
		Title:  title,
		Level:  h.Level,
		Anchor: p.slugs.Anchor(title),
		Line:   p.lineAt(firstSegmentStart(h)),
	}

	for len(p.stack) > 0 && p.stack[len(p.stack)-1].Level >= h.Level {
		p.stack = p.stack[:len(p.stack)-1]
	}
	if len(p.stack) == 0 {
		p.sheet.Topics = append(p.sheet.Topics, t)
	} else {
		parent := p.stack[len(p.stack)-1]
		parent.Children = append(parent.Children, t)
	}
	p.stack = append(p.stack, t)
}

// append attaches an entry to the current topic, or to the preamble when no
// heading has been seen yet.
func (p *parser) append(e Entry) {
	if len(p.stack) == 0 {
		p.sheet.Preamble = append(p.sheet.Preamble, e)
		return
	}
	t := p.stack[len(p.stack)-1]
	t.Entries = append(t.Entries, e)
}

func (p *parser) table(n *extast.Table) *Table {
	t := &Table{Line: p.lineAt(firstSegmentStart(n))}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, nodeText(cell, p.src))
		}
		if _, ok := row.(*extast.TableHeader); ok {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func (p *parser) fenced(n *ast.FencedCodeBlock) *CodeBlock {
	cb := &CodeBlock{Text: blockContent(n, p.src)}
	if lang := n.Language(p.src); lang != nil {
		cb.Language = string(lang)
	}
	switch {
	case n.Info != nil:
		cb.Line = p.lineAt(n.Info.Segment.Start)
	case n.Lines().Len() > 0:
		cb.Line = p.lineAt(n.Lines().At(0).Start) - 1
	}
	return cb
}

func (p *parser) indented(n *ast.CodeBlock) *CodeBlock {
	return &CodeBlock{
		Text: blockContent(n, p.src),
		Line: p.lineAt(firstSegmentStart(n)),
	}
}

// prose captures any other block (paragraphs, lists, block quotes) as a Text
// entry holding the raw source slice, so bullets and link syntax survive for
// re-rendering.
func (p *parser) prose(n ast.Node) *Text {
	start, stop := sourceExtent(n)
	if start < 0 {
		return nil
	}
	raw := strings.TrimRight(string(p.src[lineStart(p.src, start):stop]), "\n")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &Text{Content: raw, Line: p.lineAt(start)}
}

// lineAt converts a byte offset in the body to a 1-based line number in the
// original file (frontmatter included).
func (p *parser) lineAt(off int) int {
	if off < 0 {
		return 0
	}
	return p.lines.line(off) + p.lineOff
}

// --- source helpers ---

// lineIndex maps byte offsets to line numbers.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	var idx lineIndex
	for i, b := range src {
		if b == '\n' {
			idx = append(idx, i)
		}
	}
	return idx
}

// line returns the 1-based line containing the given byte offset.
func (idx lineIndex) line(off int) int {
	return sort.SearchInts(idx, off) + 1
}

// lineStart returns the offset of the first byte of the line containing off.
func lineStart(src []byte, off int) int {
	for off > 0 && src[off-1] != '\n' {
		off--
	}
	return off
}

// nodeText collects the plain text of a node and its descendants.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// blockContent joins the raw line segments of a code block.
func blockContent(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

// firstSegmentStart returns the byte offset where the node's source begins,
// or -1 when the node covers no source text.
func firstSegmentStart(n ast.Node) int {
	start, _ := sourceExtent(n)
	return start
}

// sourceExtent returns the [start, stop) byte range covered by the node's
// text segments, descending into children for container nodes.
func sourceExtent(n ast.Node) (start, stop int) {
	start, stop = -1, -1
	note := func(s, e int) {
		if start == -1 || s < start {
			start = s
		}
		if e > stop {
			stop = e
		}
	}
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			note(t.Segment.Start, t.Segment.Stop)
		}
		if c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			note(seg.Start, seg.Stop)
		}
		return ast.WalkContinue, nil
	})
	return start, stop
}
