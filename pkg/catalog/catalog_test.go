// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"testing"

	"refbook/pkg/sheet"
)

func mustParse(t *testing.T, src string) *sheet.Sheet {
	t.Helper()
	s, err := sheet.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return s
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	s := mustParse(t, `# Python Cheat Sheet

## Pointers and References

Text.

## Exception Handling

More text.

### Exception Groups

Nested.
`)
	return New(s)
}

func TestCatalog_TopicsOrder(t *testing.T) {
	c := testCatalog(t)
	topics := c.Topics()
	if len(topics) != 4 {
		t.Fatalf("len(Topics) = %d, want 4", len(topics))
	}
	want := []string{
		"Python Cheat Sheet",
		"Pointers and References",
		"Exception Handling",
		"Exception Groups",
	}
	for i, w := range want {
		if topics[i].Title != w {
			t.Errorf("topics[%d] = %q, want %q", i, topics[i].Title, w)
		}
	}

	// Topics must be restartable: a second call returns the same sequence.
	again := c.Topics()
	for i := range topics {
		if topics[i] != again[i] {
			t.Fatalf("second Topics() call diverged at %d", i)
		}
	}
}

func TestCatalog_Get(t *testing.T) {
	c := testCatalog(t)

	t.Run("by anchor", func(t *testing.T) {
		topic, err := c.Get("pointers-and-references")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if topic.Title != "Pointers and References" {
			t.Errorf("Title = %q", topic.Title)
		}
	})

	t.Run("by anchor with hash", func(t *testing.T) {
		if _, err := c.Get("#exception-handling"); err != nil {
			t.Errorf("Get(#...) error = %v", err)
		}
	})

	t.Run("by title", func(t *testing.T) {
		topic, err := c.Get("Exception Handling")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if topic.Anchor != "exception-handling" {
			t.Errorf("Anchor = %q", topic.Anchor)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.Get("no-such-topic")
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, ErrTopicNotFound) {
			t.Errorf("errors.Is(err, ErrTopicNotFound) = false, err = %v", err)
		}
		var nf *TopicNotFoundError
		if !errors.As(err, &nf) || nf.ID != "no-such-topic" {
			t.Errorf("error detail = %#v", err)
		}
	})
}

func TestCatalog_Search(t *testing.T) {
	c := testCatalog(t)

	t.Run("exact heading short-circuits", func(t *testing.T) {
		got := c.Search("exception handling")
		if len(got) != 1 || got[0].Title != "Exception Handling" {
			t.Fatalf("Search = %v", titles(got))
		}
	})

	t.Run("all terms required", func(t *testing.T) {
		got := c.Search("exception")
		if len(got) != 2 {
			t.Fatalf("Search(exception) = %v", titles(got))
		}
		// Shallower heading sorts first.
		if got[0].Title != "Exception Handling" {
			t.Errorf("first result = %q", got[0].Title)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := c.Search("goroutines"); got != nil {
			t.Errorf("Search = %v, want nil", titles(got))
		}
	})

	t.Run("empty query", func(t *testing.T) {
		if got := c.Search("   "); got != nil {
			t.Errorf("Search = %v, want nil", titles(got))
		}
	})
}

func TestCatalog_SearchRepeatedWords(t *testing.T) {
	c := New(mustParse(t, `# Guide

## Step by Step Guide

Text.

## Quick Guide

Text.
`))

	t.Run("repeated title word matches all terms", func(t *testing.T) {
		got := c.Search("step guide")
		if len(got) != 1 || got[0].Title != "Step by Step Guide" {
			t.Fatalf("Search(step guide) = %v, want [Step by Step Guide]", titles(got))
		}
	})

	t.Run("repeated query term counts once", func(t *testing.T) {
		got := c.Search("quick quick")
		if len(got) != 1 || got[0].Title != "Quick Guide" {
			t.Fatalf("Search(quick quick) = %v, want [Quick Guide]", titles(got))
		}
	})

	t.Run("unmatched term still excludes", func(t *testing.T) {
		if got := c.Search("step missing"); got != nil {
			t.Errorf("Search(step missing) = %v, want nil", titles(got))
		}
	})
}

func TestCatalog_AnchorPrecedence(t *testing.T) {
	a := mustParse(t, "# First\n\n## Usage\n")
	b := mustParse(t, "# Second\n\n## Usage\n")
	c := New(a, b)

	topic, err := c.Get("usage")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if topic != a.AllTopics()[1] {
		t.Error("earlier sheet should win anchor collisions")
	}
}

func titles(ts []*sheet.Topic) []string {
	var out []string
	for _, t := range ts {
		out = append(out, t.Title)
	}
	return out
}
