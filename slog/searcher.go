// Package slog provides structured logging decorators for docsearch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingSearcher implements docsearch.Searcher.
var _ docsearch.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with query logging.
type LoggingSearcher struct {
	next   docsearch.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docsearch.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query.
func (s *LoggingSearcher) Search(ctx context.Context, query string) (results []docsearch.IndexEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}
