package docsearch

import (
	"fmt"
	"strings"
	"unicode"
)

// Renderer turns markdown into terminal output.
type Renderer interface {
	Render(markdown string) (string, error)
}

// NoResultsMessage is shown when a query matches nothing.
func NoResultsMessage(query string) string {
	return fmt.Sprintf("No results for %q", query)
}

// FormatResults formats search results as markdown, one heading per result
// followed by its URL and an excerpt around the match.
func FormatResults(query string, results []IndexEntry) string {
	if len(results) == 0 {
		return NoResultsMessage(query)
	}

	parts := make([]string, 0, len(results))
	for i, e := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, MarkdownHighlight(e.Title, query))
		b.WriteString("`" + e.URL + "`")
		if !e.IsPage() {
			b.WriteString(" in *" + EscapeMarkdown(e.PageTitle) + "*")
		}
		b.WriteString("\n\n")
		b.WriteString(MarkdownHighlight(Excerpt(e.Content, query), query))
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// MarkdownHighlight escapes text for markdown and wraps every
// case-insensitive occurrence of query in bold. Whitespace at the edges of
// a match stays outside the delimiters, which must touch non-space text to
// count as emphasis.
func MarkdownHighlight(text, query string) string {
	var b strings.Builder
	for _, seg := range Highlight(text, query) {
		if !seg.Match {
			b.WriteString(EscapeMarkdown(seg.Text))
			continue
		}
		core := strings.TrimLeftFunc(seg.Text, unicode.IsSpace)
		lead := seg.Text[:len(seg.Text)-len(core)]
		core = strings.TrimRightFunc(core, unicode.IsSpace)
		trail := seg.Text[len(lead)+len(core):]

		b.WriteString(lead)
		if core != "" {
			b.WriteString("**" + EscapeMarkdown(core) + "**")
		}
		b.WriteString(trail)
	}
	return escapeBlockStart(b.String())
}

// escapeBlockStart escapes a leading list item or thematic break marker so
// the text stays an inline paragraph.
func escapeBlockStart(s string) string {
	if s == "" {
		return s
	}
	if s[0] == '-' || s[0] == '+' || s[0] == '=' {
		return `\` + s
	}

	digits := 0
	for digits < len(s) && digits < 10 && '0' <= s[digits] && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < 10 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + `\` + s[digits:]
	}
	return s
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "!", `\!`, "|", `\|`, "~", `\~`,
)

// EscapeMarkdown backslash-escapes markdown punctuation so text renders
// literally.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
