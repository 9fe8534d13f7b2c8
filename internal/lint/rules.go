// SPDX-License-Identifier: MPL-2.0

package lint

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"refbook/pkg/sheet"
)

// checkFunc runs one rule over a scanned document.
type checkFunc func(doc *document) []Finding

// checks maps each rule to its implementation.
var checks = map[Rule]checkFunc{
	RuleTOCAnchor:    checkTOCAnchors,
	RuleTableColumns: checkTableColumns,
	RuleFencePaired:  checkFencesPaired,
	RuleHeadingJump:  checkHeadingJumps,
	RuleAnchorDup:    checkAnchorDups,
	RuleShellSyntax:  checkShellSyntax,
}

// checkTOCAnchors verifies every intra-document link resolves to a heading
// anchor. The anchor set is derived from heading text exactly the way the
// sheet parser derives it, so the two can never disagree.
func checkTOCAnchors(doc *document) []Finding {
	slugs := sheet.NewSlugger()
	anchors := make(map[string]bool, len(doc.headings))
	for _, h := range doc.headings {
		anchors[slugs.Anchor(h.title)] = true
	}

	var findings []Finding
	for _, link := range doc.links {
		if anchors[link.target] {
			continue
		}
		findings = append(findings, Finding{
			Rule:    RuleTOCAnchor,
			Path:    doc.path,
			Line:    link.line,
			Message: fmt.Sprintf("link target #%s has no matching heading", link.target),
		})
	}
	return findings
}

// checkTableColumns verifies every table row has the header row's cell count.
func checkTableColumns(doc *document) []Finding {
	var findings []Finding
	for _, tbl := range doc.tables {
		if len(tbl.columns) < 2 {
			continue
		}
		header := tbl.columns[0]
		for i, cols := range tbl.columns[1:] {
			if cols == header {
				continue
			}
			findings = append(findings, Finding{
				Rule: RuleTableColumns,
				Path: doc.path,
				Line: tbl.headerLine + 1 + i,
				Message: fmt.Sprintf("table row has %d columns, header has %d",
					cols, header),
			})
		}
	}
	return findings
}

// checkFencesPaired reports fences left open at end of document.
func checkFencesPaired(doc *document) []Finding {
	var findings []Finding
	for _, f := range doc.fences {
		if f.closeLine != 0 {
			continue
		}
		findings = append(findings, Finding{
			Rule:    RuleFencePaired,
			Path:    doc.path,
			Line:    f.openLine,
			Message: "code fence is never closed",
		})
	}
	return findings
}

// checkHeadingJumps reports headings that skip a nesting level downward
// relative to the preceding heading (e.g. # followed directly by ###).
func checkHeadingJumps(doc *document) []Finding {
	var findings []Finding
	prev := 0
	for _, h := range doc.headings {
		if prev > 0 && h.level > prev+1 {
			findings = append(findings, Finding{
				Rule: RuleHeadingJump,
				Path: doc.path,
				Line: h.line,
				Message: fmt.Sprintf("heading level jumps from %d to %d without an intervening parent",
					prev, h.level),
			})
		}
		prev = h.level
	}
	return findings
}

// checkAnchorDups reports headings whose slug collides with an earlier one.
// Renderers disambiguate with -N suffixes, which makes plain TOC links
// against the base slug ambiguous.
func checkAnchorDups(doc *document) []Finding {
	var findings []Finding
	first := make(map[string]int)
	for _, h := range doc.headings {
		slug := sheet.Slug(h.title)
		if prevLine, seen := first[slug]; seen {
			findings = append(findings, Finding{
				Rule: RuleAnchorDup,
				Path: doc.path,
				Line: h.line,
				Message: fmt.Sprintf("heading anchor #%s duplicates the heading on line %d",
					slug, prevLine),
			})
			continue
		}
		first[slug] = h.line
	}
	return findings
}

// shellLangs are fence labels handed to the shell parser.
var shellLangs = map[string]bool{
	"sh":    true,
	"bash":  true,
	"shell": true,
}

// checkShellSyntax parses sh/bash fences with the POSIX shell grammar. The
// snippet text is only parsed; it is never executed.
func checkShellSyntax(doc *document) []Finding {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))

	var findings []Finding
	for _, f := range doc.fences {
		if !shellLangs[f.lang] || f.closeLine == 0 {
			continue
		}
		body := strings.Join(doc.lines[f.openLine:f.closeLine-1], "\n")
		if _, err := parser.Parse(strings.NewReader(body), doc.path); err != nil {
			findings = append(findings, Finding{
				Rule:    RuleShellSyntax,
				Path:    doc.path,
				Line:    f.openLine,
				Message: fmt.Sprintf("%s snippet does not parse: %v", f.lang, shellErr(err)),
			})
		}
	}
	return findings
}

// shellErr strips the synthetic file name the parser prefixes to its errors.
func shellErr(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
