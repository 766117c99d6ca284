// Package memory serves queries from an index held in memory.
package memory

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/fwojciec/docsearch"
)

// Ensure Searcher implements docsearch.Searcher and docsearch.IndexReader
// at compile time.
var (
	_ docsearch.Searcher    = (*Searcher)(nil)
	_ docsearch.IndexReader = (*Searcher)(nil)
)

// Searcher answers queries against the most recently loaded index.
// Loading swaps in a new snapshot; queries in flight keep the snapshot
// they started with.
type Searcher struct {
	reader  docsearch.IndexReader
	logger  *slog.Logger
	current atomic.Pointer[docsearch.Index]
}

// NewSearcher creates a Searcher that loads from reader. It starts with an
// empty index until Load is called.
func NewSearcher(reader docsearch.IndexReader, logger *slog.Logger) *Searcher {
	s := &Searcher{reader: reader, logger: logger}
	s.current.Store(docsearch.NewIndex(nil))
	return s
}

// Load reads the index and makes it current. When the index cannot be read
// the searcher degrades to an empty index, so that queries return no
// results rather than fail. The read error is logged and returned.
func (s *Searcher) Load(ctx context.Context) error {
	entries, err := s.reader.ReadIndex(ctx)
	if err != nil {
		s.current.Store(docsearch.NewIndex(nil))
		s.logger.Warn("search index unavailable", "error", err)
		return err
	}

	s.current.Store(docsearch.NewIndex(entries))
	if len(entries) == 0 {
		s.logger.Warn("search index is empty")
	}
	return nil
}

// Len returns the number of entries in the current index.
func (s *Searcher) Len() int {
	return s.current.Load().Len()
}

// ReadIndex returns the entries of the current snapshot without touching
// the underlying reader.
func (s *Searcher) ReadIndex(ctx context.Context) ([]docsearch.IndexEntry, error) {
	return s.current.Load().Entries(), nil
}

// Search runs query against the current index. It never returns an error.
func (s *Searcher) Search(ctx context.Context, query string) ([]docsearch.IndexEntry, error) {
	return s.current.Load().Search(query), nil
}
