package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var (
	_ docsearch.IndexReader = (*IndexReader)(nil)
	_ docsearch.IndexWriter = (*IndexWriter)(nil)
)

// IndexReader is a mock implementation of docsearch.IndexReader.
type IndexReader struct {
	ReadIndexFn func(ctx context.Context) ([]docsearch.IndexEntry, error)
}

func (r *IndexReader) ReadIndex(ctx context.Context) ([]docsearch.IndexEntry, error) {
	return r.ReadIndexFn(ctx)
}

// IndexWriter is a mock implementation of docsearch.IndexWriter.
type IndexWriter struct {
	WriteIndexFn func(ctx context.Context, entries []docsearch.IndexEntry) error
}

func (w *IndexWriter) WriteIndex(ctx context.Context, entries []docsearch.IndexEntry) error {
	return w.WriteIndexFn(ctx, entries)
}
