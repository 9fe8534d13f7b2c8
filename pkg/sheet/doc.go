// SPDX-License-Identifier: MPL-2.0

// Package sheet defines the document model for markdown reference sheets and
// the parser that builds it.
//
// A sheet is a single markdown file made of topics (headings), each owning an
// ordered sequence of entries: comparison tables, fenced code blocks, and
// prose. Code block contents are opaque text; nothing in this package
// interprets or executes them.
package sheet
