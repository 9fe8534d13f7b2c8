// SPDX-License-Identifier: MPL-2.0

package sheet

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"Pointers and References", "pointers-and-references"},
		{"Variables", "variables"},
		{"Error Handling (idioms)", "error-handling-idioms"},
		{"  Trim Me  ", "trim-me"},
		{"C++ Interop", "c-interop"},
		{"snake_case", "snake_case"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"UTF-8 Strings", "utf-8-strings"},
	}
	for _, tt := range tests {
		if got := Slug(tt.heading); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.heading, got, tt.want)
		}
	}
}

func TestSlugger_Duplicates(t *testing.T) {
	s := NewSlugger()
	if got := s.Anchor("Usage"); got != "usage" {
		t.Errorf("first anchor = %q, want usage", got)
	}
	if got := s.Anchor("Usage"); got != "usage-1" {
		t.Errorf("second anchor = %q, want usage-1", got)
	}
	if got := s.Anchor("Usage"); got != "usage-2" {
		t.Errorf("third anchor = %q, want usage-2", got)
	}
	if got := s.Anchor("Other"); got != "other" {
		t.Errorf("unrelated anchor = %q, want other", got)
	}
}
