package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var (
	_ docsearch.ContentSource = (*ContentSource)(nil)
	_ docsearch.Parser        = (*Parser)(nil)
)

// ContentSource is a mock implementation of docsearch.ContentSource.
type ContentSource struct {
	DiscoverFn func(ctx context.Context) ([]docsearch.SourceFile, error)
	ReadFileFn func(ctx context.Context, file docsearch.SourceFile) (string, error)
}

func (s *ContentSource) Discover(ctx context.Context) ([]docsearch.SourceFile, error) {
	return s.DiscoverFn(ctx)
}

func (s *ContentSource) ReadFile(ctx context.Context, file docsearch.SourceFile) (string, error) {
	return s.ReadFileFn(ctx, file)
}

// Parser is a mock implementation of docsearch.Parser.
type Parser struct {
	ParseFn func(content string) (*docsearch.Page, error)
}

func (p *Parser) Parse(content string) (*docsearch.Page, error) {
	return p.ParseFn(content)
}
