package docsearch

import "strings"

// Excerpt window sizes, in characters.
const (
	ExcerptBefore   = 40
	ExcerptAfter    = 80
	ExcerptFallback = 120
)

// Ellipsis marks text cut from either side of an excerpt.
const Ellipsis = "..."

// Excerpt returns a short snippet of content around the first
// case-insensitive occurrence of query, for display only.
//
// When query does not occur, the first ExcerptFallback characters are
// returned followed by Ellipsis. Otherwise the window spans ExcerptBefore
// characters before the match to ExcerptAfter characters after it, with
// Ellipsis added on each side that was cut.
func Excerpt(content, query string) string {
	text := []rune(content)
	i := indexRunes([]rune(fold(content)), []rune(fold(query)))

	if i == -1 {
		return string(text[:min(len(text), ExcerptFallback)]) + Ellipsis
	}

	start := max(0, i-ExcerptBefore)
	end := min(len(text), i+len([]rune(query))+ExcerptAfter)

	var b strings.Builder
	if start > 0 {
		b.WriteString(Ellipsis)
	}
	b.WriteString(string(text[start:end]))
	if end < len(text) {
		b.WriteString(Ellipsis)
	}
	return b.String()
}

// Segment is a run of text that either matches the highlighted query or not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into segments, marking every case-insensitive
// occurrence of the literal query. Concatenating the segment texts yields
// text unchanged. An empty query yields a single unmatched segment.
func Highlight(text, query string) []Segment {
	if text == "" {
		return nil
	}
	src := []rune(text)
	q := []rune(fold(query))
	if len(q) == 0 {
		return []Segment{{Text: text}}
	}

	folded := []rune(fold(text))
	var segments []Segment
	pos := 0
	for pos < len(src) {
		i := indexRunes(folded[pos:], q)
		if i == -1 {
			break
		}
		i += pos
		if i > pos {
			segments = append(segments, Segment{Text: string(src[pos:i])})
		}
		segments = append(segments, Segment{Text: string(src[i : i+len(q)]), Match: true})
		pos = i + len(q)
	}
	if pos < len(src) {
		segments = append(segments, Segment{Text: string(src[pos:])})
	}
	return segments
}

// indexRunes returns the rune offset of the first occurrence of sub in s,
// or -1.
func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i] == sub[0] && equalRunes(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
