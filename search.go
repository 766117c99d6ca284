package docsearch

import (
	"slices"
	"strings"
	"unicode"
)

// MaxResults caps the number of entries returned by Search.
const MaxResults = 15

// Search returns the entries whose title or content contains query,
// compared case-insensitively.
//
// Page-level matches are deduplicated by base URL: once a page entry for a
// base URL has been kept, later page entries sharing it are dropped.
// Section-level entries are never dropped by this rule. Results whose title
// matches rank first; among ties, page entries precede section entries;
// otherwise index order is kept. At most MaxResults entries are returned.
//
// An empty or whitespace-only query returns an empty slice without scanning.
func Search(query string, entries []IndexEntry) []IndexEntry {
	results := []IndexEntry{}
	if strings.TrimSpace(query) == "" {
		return results
	}

	q := fold(query)
	seen := make(map[string]struct{})

	for _, entry := range entries {
		titleMatch := strings.Contains(fold(entry.Title), q)
		contentMatch := strings.Contains(fold(entry.Content), q)
		if !titleMatch && !contentMatch {
			continue
		}

		base := entry.BaseURL()
		if _, ok := seen[base]; ok && entry.IsPage() {
			continue
		}
		results = append(results, entry)
		if entry.IsPage() {
			seen[base] = struct{}{}
		}
	}

	slices.SortStableFunc(results, func(a, b IndexEntry) int {
		aTitle := strings.Contains(fold(a.Title), q)
		bTitle := strings.Contains(fold(b.Title), q)
		if aTitle && !bTitle {
			return -1
		}
		if !aTitle && bTitle {
			return 1
		}
		if a.IsPage() && !b.IsPage() {
			return -1
		}
		if !a.IsPage() && b.IsPage() {
			return 1
		}
		return 0
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// fold lowercases s rune by rune so that rune offsets in the folded string
// line up with offsets in s.
func fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}
