// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"sort"
	"strings"

	"refbook/pkg/sheet"
)

// Search finds topics whose headings match the query. An exact heading match
// wins outright; otherwise every query term must hit the topic's keyword
// index. Results are ordered shallowest heading first, then by title.
func (c *Catalog) Search(query string) []*sheet.Topic {
	query = strings.ToLower(strings.TrimSpace(query))
	terms := uniqueFields(query)
	if len(terms) == 0 {
		return nil
	}

	// The keyword index lists each topic at most once per word and terms are
	// deduplicated, so a topic matched by every term hits exactly len(terms).
	hits := map[*sheet.Topic]int{}
	for _, term := range terms {
		for _, t := range c.keywords[term] {
			if strings.ToLower(t.Title) == query {
				return []*sheet.Topic{t}
			}
			hits[t]++
		}
	}

	var results []*sheet.Topic
	for t, n := range hits {
		if n == len(terms) {
			results = append(results, t)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Level == results[j].Level {
			return results[i].Title < results[j].Title
		}
		return results[i].Level < results[j].Level
	})
	return results
}

// uniqueFields splits the query into distinct terms, preserving first
// occurrence order.
func uniqueFields(query string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, f := range strings.Fields(query) {
		if !seen[f] {
			seen[f] = true
			terms = append(terms, f)
		}
	}
	return terms
}
