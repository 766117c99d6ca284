package docsearch

import (
	"context"
	"strings"
)

// IndexEntry is one searchable record: either a whole page or a single
// second-level section within a page.
type IndexEntry struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	PageTitle string `json:"pageTitle"`
	Content   string `json:"content"`

	// Section is set only for section-level entries.
	Section string `json:"section,omitempty"`
}

// IsPage reports whether the entry represents an entire page.
// A missing section is treated as page-level.
func (e *IndexEntry) IsPage() bool {
	return e.Section == ""
}

// BaseURL returns the entry URL without any #fragment suffix.
func (e *IndexEntry) BaseURL() string {
	return BaseURL(e.URL)
}

// BaseURL strips the #fragment suffix from a URL.
func BaseURL(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// Index is an immutable, in-memory snapshot of index entries.
// Reloading produces a new Index; an Index is never mutated by querying.
type Index struct {
	entries []IndexEntry
}

// NewIndex returns an Index holding a copy of entries.
func NewIndex(entries []IndexEntry) *Index {
	cp := make([]IndexEntry, len(entries))
	copy(cp, entries)
	return &Index{entries: cp}
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Entries returns a copy of the index entries in index order.
func (idx *Index) Entries() []IndexEntry {
	if idx == nil {
		return nil
	}
	cp := make([]IndexEntry, len(idx.entries))
	copy(cp, idx.entries)
	return cp
}

// Search runs the query engine against the index.
func (idx *Index) Search(query string) []IndexEntry {
	if idx == nil {
		return []IndexEntry{}
	}
	return Search(query, idx.entries)
}

// IndexReader loads a previously built index.
type IndexReader interface {
	// ReadIndex returns all entries in index order.
	// Returns ENOTFOUND if no index exists at the source.
	ReadIndex(ctx context.Context) ([]IndexEntry, error)
}

// IndexWriter persists a built index, replacing any previous one.
type IndexWriter interface {
	WriteIndex(ctx context.Context, entries []IndexEntry) error
}

// Searcher answers queries against a loaded index.
type Searcher interface {
	// Search returns ranked, deduplicated results for the query.
	// Implementations degrade to an empty result rather than fail when the
	// index is unavailable.
	Search(ctx context.Context, query string) ([]IndexEntry, error)
}
