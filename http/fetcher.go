// Package http serves search over HTTP and reads indexes published on
// static sites.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
)

// DefaultFetchTimeout is the default timeout for index requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure IndexFetcher implements docsearch.IndexReader at compile time.
var _ docsearch.IndexReader = (*IndexFetcher)(nil)

// IndexFetcher reads a JSON index published at a URL, such as the
// search-data.json of a deployed documentation site.
type IndexFetcher struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// Option configures an IndexFetcher.
type Option func(*IndexFetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *IndexFetcher) {
		f.timeout = d
	}
}

// NewIndexFetcher creates an IndexFetcher for the index at url.
func NewIndexFetcher(url string, opts ...Option) *IndexFetcher {
	f := &IndexFetcher{
		url:     url,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// URL returns the location of the index.
func (f *IndexFetcher) URL() string {
	return f.url
}

// ReadIndex downloads and decodes the index. Any status other than 200 is
// reported as ENOTFOUND.
func (f *IndexFetcher) ReadIndex(ctx context.Context) ([]docsearch.IndexEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "invalid index URL %q", f.url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "index %s: HTTP %d", f.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	entries, err := fs.DecodeIndex(body)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "index %s: %v", f.url, err)
	}
	return entries, nil
}
