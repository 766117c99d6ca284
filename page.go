package docsearch

import (
	"context"
	"strings"
)

// Content length caps applied at index-build time, in characters.
const (
	PageContentLimit    = 2000
	SectionContentLimit = 500
)

// UntitledPage is the display title used when neither the document nor its
// URL provide one.
const UntitledPage = "Untitled"

// SourceFile is one content document discovered in a content tree.
type SourceFile struct {
	Path string // location within the source
	URL  string // absolute site path the document is served at
}

// Page is a parsed content document.
type Page struct {
	Title    string
	Text     string // plain text with markup stripped
	Sections []Section
}

// ContentSource discovers content documents and reads them.
type ContentSource interface {
	// Discover returns all content documents in a stable order.
	Discover(ctx context.Context) ([]SourceFile, error)

	// ReadFile returns the raw content of a discovered document.
	ReadFile(ctx context.Context, file SourceFile) (string, error)
}

// Parser converts raw document content into a Page.
type Parser interface {
	Parse(content string) (*Page, error)
}

// NewEntries builds the index entries for one document: a page-level entry
// followed by one section-level entry per section, in document order.
func NewEntries(url string, page *Page) []IndexEntry {
	title := DisplayTitle(url, page.Title)

	entries := make([]IndexEntry, 0, 1+len(page.Sections))
	entries = append(entries, IndexEntry{
		URL:       url,
		Title:     title,
		PageTitle: title,
		Content:   truncate(page.Text, PageContentLimit),
	})

	for _, section := range page.Sections {
		entries = append(entries, IndexEntry{
			URL:       url + "#" + section.Anchor,
			Title:     section.Title,
			PageTitle: title,
			Content:   truncate(page.Text, SectionContentLimit),
			Section:   section.Title,
		})
	}

	return entries
}

// DisplayTitle returns title, falling back to the last path segment of url
// and then to UntitledPage.
func DisplayTitle(url, title string) string {
	if title != "" {
		return title
	}
	segments := strings.Split(url, "/")
	if last := segments[len(segments)-1]; last != "" {
		return last
	}
	return UntitledPage
}

// truncate returns at most n characters of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
