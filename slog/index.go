package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure the decorators implement their interfaces.
var (
	_ docsearch.IndexReader = (*LoggingIndexReader)(nil)
	_ docsearch.IndexWriter = (*LoggingIndexWriter)(nil)
)

// LoggingIndexReader wraps an IndexReader with load logging.
type LoggingIndexReader struct {
	next   docsearch.IndexReader
	source string
	logger *slog.Logger
}

// NewLoggingIndexReader creates a new LoggingIndexReader. The source names
// where the index is read from.
func NewLoggingIndexReader(next docsearch.IndexReader, source string, logger *slog.Logger) *LoggingIndexReader {
	return &LoggingIndexReader{next: next, source: source, logger: logger}
}

// ReadIndex delegates to the wrapped reader and logs the load.
func (r *LoggingIndexReader) ReadIndex(ctx context.Context) (entries []docsearch.IndexEntry, err error) {
	defer func(begin time.Time) {
		r.logger.Info("index load",
			"source", r.source,
			"entries", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadIndex(ctx)
}

// LoggingIndexWriter wraps an IndexWriter with write logging.
type LoggingIndexWriter struct {
	next   docsearch.IndexWriter
	target string
	logger *slog.Logger
}

// NewLoggingIndexWriter creates a new LoggingIndexWriter. The target names
// where the index is written to.
func NewLoggingIndexWriter(next docsearch.IndexWriter, target string, logger *slog.Logger) *LoggingIndexWriter {
	return &LoggingIndexWriter{next: next, target: target, logger: logger}
}

// WriteIndex delegates to the wrapped writer and logs the write.
func (w *LoggingIndexWriter) WriteIndex(ctx context.Context, entries []docsearch.IndexEntry) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("index write",
			"target", w.target,
			"entries", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteIndex(ctx, entries)
}
