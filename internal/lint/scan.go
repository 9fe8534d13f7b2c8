// SPDX-License-Identifier: MPL-2.0

package lint

import (
	"regexp"
	"strings"
)

type (
	// document is the line-level view of one sheet that the rules consume.
	document struct {
		path     string
		lines    []string
		headings []headingRef
		fences   []fenceSpan
		tables   []tableSpan
		links    []linkRef
	}

	// headingRef is an ATX heading outside any fence.
	headingRef struct {
		level int
		title string
		line  int
	}

	// fenceSpan is a fenced code block. closeLine is 0 while unterminated.
	fenceSpan struct {
		lang string
		// marker is the fence rune (` or ~); markerLen its run length. A
		// closing line must repeat the same rune at least markerLen times.
		marker    byte
		markerLen int
		openLine  int
		closeLine int
	}

	// tableSpan is a run of consecutive pipe rows outside any fence.
	tableSpan struct {
		headerLine int
		// columns holds the cell count of each row, header first.
		columns []int
	}

	// linkRef is an intra-document link target.
	linkRef struct {
		target string
		line   int
	}
)

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*\s*$`)
	anchorRe  = regexp.MustCompile(`\[[^\]]*\]\(#([^)\s]+)\)`)
)

// scan performs the single line pass shared by all rules. Headings, tables
// and links inside fenced blocks are fence payload, not document structure,
// so fence state gates everything else.
func scan(path string, src []byte) *document {
	doc := &document{
		path:  path,
		lines: splitLines(src),
	}

	var open *fenceSpan
	var table *tableSpan
	endTable := func() {
		if table != nil {
			doc.tables = append(doc.tables, *table)
			table = nil
		}
	}

	for i, raw := range doc.lines {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")

		if open != nil {
			if closesFence(line, open.marker, open.markerLen) {
				open.closeLine = lineNo
				doc.fences = append(doc.fences, *open)
				open = nil
			}
			continue
		}

		if f, ok := opensFence(line); ok {
			endTable()
			f.openLine = lineNo
			open = &f
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			endTable()
			doc.headings = append(doc.headings, headingRef{
				level: len(m[1]),
				title: m[2],
				line:  lineNo,
			})
			continue
		}

		if isTableRow(line) {
			if table == nil {
				table = &tableSpan{headerLine: lineNo}
			}
			table.columns = append(table.columns, countColumns(line))
		} else {
			endTable()
		}

		for _, m := range anchorRe.FindAllStringSubmatch(line, -1) {
			doc.links = append(doc.links, linkRef{target: m[1], line: lineNo})
		}
	}

	endTable()
	if open != nil {
		doc.fences = append(doc.fences, *open)
	}
	return doc
}

// splitLines splits source into lines without trailing newlines.
func splitLines(src []byte) []string {
	s := strings.TrimSuffix(string(src), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// opensFence reports whether the line opens a fenced code block, returning
// the span with its language label and fence marker recorded.
func opensFence(line string) (fenceSpan, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, "```") && !strings.HasPrefix(trimmed, "~~~") {
		return fenceSpan{}, false
	}

	marker := trimmed[0]
	rest := strings.TrimLeft(trimmed, string(marker))
	f := fenceSpan{marker: marker, markerLen: len(trimmed) - len(rest)}
	if fields := strings.Fields(strings.TrimSpace(rest)); len(fields) > 0 {
		f.lang = fields[0]
	}
	return f, true
}

// closesFence reports whether the line closes the open fence: the same marker
// rune, a run at least as long as the opening one, and no info string. A ~~~
// line inside a backtick fence is payload, not a close.
func closesFence(line string, marker byte, markerLen int) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] != marker {
		return false
	}
	rest := strings.TrimLeft(trimmed, string(marker))
	return rest == "" && len(trimmed) >= markerLen
}

// isTableRow reports whether the line looks like a pipe-delimited table row.
func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") && len(trimmed) > 1
}

// countColumns counts the cells of a pipe row. Escaped pipes belong to cell
// content and do not delimit.
func countColumns(line string) int {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	count := 1
	escaped := false
	for _, r := range trimmed {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			count++
		}
	}
	return count
}
