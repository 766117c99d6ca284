package docsearch

import (
	"regexp"
	"strings"
	"unicode"
)

// Section represents a second-level heading in a content document.
type Section struct {
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// h2Re matches second-level markdown headings. The separator accepts any
// Unicode space, including U+3000 and U+00A0. Deeper headings never match
// because the third '#' is not whitespace.
var h2Re = regexp.MustCompile(`(?m)^##[\s\p{Z}\x{FEFF}]+(.+)$`)

// ExtractSections returns every second-level heading in markdown, in
// document order, with an anchor derived from the heading text.
func ExtractSections(markdown string) []Section {
	matches := h2Re.FindAllStringSubmatch(markdown, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]Section, 0, len(matches))
	for _, match := range matches {
		title := strings.TrimSpace(match[1])
		sections = append(sections, Section{
			Title:  title,
			Anchor: Slugify(title),
		})
	}
	return sections
}

// Slugify creates a URL fragment from heading text: lowercased, whitespace
// runs collapsed to a single hyphen, and every character other than a
// letter, digit, underscore or hyphen removed.
//
// Example: "Request Body (JSON)" -> "request-body-json"
func Slugify(text string) string {
	var sb strings.Builder
	inSpace := false

	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteRune('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
