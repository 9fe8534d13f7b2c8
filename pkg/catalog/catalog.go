// SPDX-License-Identifier: MPL-2.0

// Package catalog exposes parsed sheets as a read-only, ordered collection of
// topics with anchor lookup and keyword search. A Catalog is immutable once
// built and safe for concurrent readers.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"refbook/pkg/sheet"
)

// ErrTopicNotFound is the sentinel error wrapped by TopicNotFoundError.
var ErrTopicNotFound = errors.New("topic not found")

type (
	// TopicNotFoundError is returned by Get when no topic matches the
	// requested identifier. It wraps ErrTopicNotFound for errors.Is().
	TopicNotFoundError struct {
		ID string
	}

	// Catalog is an ordered, immutable collection of topics drawn from one or
	// more sheets.
	Catalog struct {
		sheets   []*sheet.Sheet
		ordered  []*sheet.Topic
		byAnchor map[string]*sheet.Topic
		byTitle  map[string][]*sheet.Topic
		keywords map[string][]*sheet.Topic
	}
)

// Error implements the error interface.
func (e *TopicNotFoundError) Error() string {
	return fmt.Sprintf("topic not found: %q", e.ID)
}

// Unwrap returns ErrTopicNotFound for errors.Is() compatibility.
func (e *TopicNotFoundError) Unwrap() error { return ErrTopicNotFound }

// New builds a catalog over the given sheets. Topic order follows sheet order
// and, within a sheet, document order. When sheets collide on an anchor the
// earliest sheet wins, matching discovery precedence.
func New(sheets ...*sheet.Sheet) *Catalog {
	c := &Catalog{
		sheets:   sheets,
		byAnchor: make(map[string]*sheet.Topic),
		byTitle:  make(map[string][]*sheet.Topic),
		keywords: make(map[string][]*sheet.Topic),
	}
	for _, s := range sheets {
		for _, t := range s.AllTopics() {
			c.ordered = append(c.ordered, t)
			if _, taken := c.byAnchor[t.Anchor]; !taken {
				c.byAnchor[t.Anchor] = t
			}
			title := strings.ToLower(t.Title)
			c.byTitle[title] = append(c.byTitle[title], t)
			for _, word := range headingWords(t.Title) {
				c.keywords[word] = append(c.keywords[word], t)
			}
		}
	}
	return c
}

// Sheets returns the underlying sheets in catalog order.
func (c *Catalog) Sheets() []*sheet.Sheet {
	return slices.Clone(c.sheets)
}

// Topics returns every topic in document order. The result is a fresh slice,
// so callers may iterate and re-iterate freely.
func (c *Catalog) Topics() []*sheet.Topic {
	return slices.Clone(c.ordered)
}

// Len returns the number of topics in the catalog.
func (c *Catalog) Len() int { return len(c.ordered) }

// Get resolves a topic identifier: first as an anchor slug, then as a
// case-insensitive title. Returns TopicNotFoundError when nothing matches.
func (c *Catalog) Get(id string) (*sheet.Topic, error) {
	if t, ok := c.byAnchor[strings.ToLower(strings.TrimPrefix(id, "#"))]; ok {
		return t, nil
	}
	if ts := c.byTitle[strings.ToLower(id)]; len(ts) > 0 {
		return ts[0], nil
	}
	// Last resort: treat the id as a title and slug it, so "Pointers and
	// References" finds #pointers-and-references.
	if t, ok := c.byAnchor[sheet.Slug(id)]; ok {
		return t, nil
	}
	return nil, &TopicNotFoundError{ID: id}
}

// headingWords splits heading text into distinct lowercase index words. A
// title like "Step by Step Guide" indexes each word once, so per-term hit
// counting in Search stays accurate.
func headingWords(title string) []string {
	slug := sheet.Slug(title)
	seen := make(map[string]bool)
	var words []string
	for _, w := range strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' }) {
		if w != "" && !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}
