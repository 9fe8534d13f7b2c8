// SPDX-License-Identifier: MPL-2.0

package sheet

import (
	"fmt"
	"strings"
	"unicode"
)

// Slug converts heading text to its anchor form: lowercased, punctuation
// stripped, runs of spaces and hyphens collapsed to single hyphens. This is
// the GitHub slug algorithm, which is what sheet tables of contents link
// against.
func Slug(heading string) string {
	var sb strings.Builder
	for _, r := range strings.TrimSpace(heading) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			sb.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '-' || r == '_':
			sb.WriteRune(r)
		}
	}
	slug := strings.ReplaceAll(sb.String(), " ", "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return slug
}

// Slugger assigns unique anchors within a single document. Repeated headings
// get a -1, -2, ... suffix, matching renderer behavior.
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns a Slugger with no anchors assigned.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Anchor returns the unique anchor for the given heading text, recording it
// so later duplicates receive suffixed anchors.
func (s *Slugger) Anchor(heading string) string {
	base := Slug(heading)
	n, dup := s.seen[base]
	s.seen[base] = n + 1
	if !dup {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
