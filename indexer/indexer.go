// Package indexer builds a search index from a content tree.
// It coordinates content discovery, parsing, and index storage.
package indexer

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages parsed at once when
// Builder.Concurrency is not set.
const DefaultConcurrency = 8

// Builder orchestrates building the index.
type Builder struct {
	Source docsearch.ContentSource

	// Parsers maps a file extension, including the leading dot, to the
	// parser for files of that type.
	Parsers map[string]docsearch.Parser

	// Writers receive the finished index in order.
	Writers []docsearch.IndexWriter

	Concurrency int
}

// Result holds the outcome of a build.
type Result struct {
	Pages   int
	Entries int
	Skipped int
}

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// parseResult holds the outcome of parsing a single file.
type parseResult struct {
	position int
	file     docsearch.SourceFile
	page     *docsearch.Page
	err      error
}

// Build discovers and parses every page, writes the resulting entries
// through each writer and returns them in discovery order.
//
// A page that cannot be read or parsed, or whose URL was already indexed,
// is reported through progress and skipped. Discovery and write failures
// abort the build.
func (b *Builder) Build(ctx context.Context, progress ProgressFunc) ([]docsearch.IndexEntry, *Result, error) {
	files, err := b.Source.Discover(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("discover content: %w", err)
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(files)
	notify := func(event ProgressEvent) {
		if progress != nil {
			event.Total = total
			progress(event)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted})

	resultCh := make(chan parseResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, file := range files {
			g.Go(func() error {
				resultCh <- b.parseFile(gctx, i, file)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in discovery order
	results := make([]parseResult, len(files))
	var completed atomic.Int64
	for result := range resultCh {
		n := int(completed.Add(1))
		results[result.position] = result

		if result.err != nil {
			notify(ProgressEvent{Type: ProgressSkipped, Completed: n, Path: result.file.Path, URL: result.file.URL, Error: result.err})
		} else {
			notify(ProgressEvent{Type: ProgressCompleted, Completed: n, Path: result.file.Path, URL: result.file.URL})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	res := &Result{}
	urls := bloom.NewURLSet(uint(len(files)), 0.01)
	entries := []docsearch.IndexEntry{}

	for _, result := range results {
		if result.err != nil {
			res.Skipped++
			continue
		}
		if !urls.Add(result.file.URL) {
			res.Skipped++
			notify(ProgressEvent{
				Type:      ProgressSkipped,
				Completed: total,
				Path:      result.file.Path,
				URL:       result.file.URL,
				Error:     docsearch.Errorf(docsearch.EINVALID, "duplicate page URL %q", result.file.URL),
			})
			continue
		}

		entries = append(entries, docsearch.NewEntries(result.file.URL, result.page)...)
	}
	res.Pages = urls.Len()
	res.Entries = len(entries)

	for _, w := range b.Writers {
		if err := w.WriteIndex(ctx, entries); err != nil {
			return nil, nil, fmt.Errorf("write index: %w", err)
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total})

	return entries, res, nil
}

// parseFile reads and parses a single file.
func (b *Builder) parseFile(ctx context.Context, position int, file docsearch.SourceFile) parseResult {
	result := parseResult{position: position, file: file}

	if err := ctx.Err(); err != nil {
		result.err = err
		return result
	}

	parser, ok := b.Parsers[strings.ToLower(path.Ext(file.Path))]
	if !ok {
		result.err = docsearch.Errorf(docsearch.EINVALID, "no parser for %q", file.Path)
		return result
	}

	content, err := b.Source.ReadFile(ctx, file)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", file.Path, err)
		return result
	}

	page, err := parser.Parse(content)
	if err != nil {
		result.err = fmt.Errorf("parse %s: %w", file.Path, err)
		return result
	}

	result.page = page
	return result
}
