// Package mcp exposes documentation search as a Model Context Protocol tool.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName identifies the server to MCP clients.
const ServerName = "docsearch"

// SearchToolName is the name of the search tool.
const SearchToolName = "search_docs"

// SearchInput is the argument of the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"Text to find in page and section titles or content, matched case-insensitively"`
}

// SearchResult is one match returned by the search tool.
type SearchResult struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	PageTitle string `json:"pageTitle"`
	Section   string `json:"section,omitempty"`
	Excerpt   string `json:"excerpt"`
}

// SearchOutput is the result of the search tool.
type SearchOutput struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// Server serves the search tool over MCP.
type Server struct {
	searcher docsearch.Searcher
	server   *mcp.Server
}

// NewServer creates a Server answering queries with searcher.
func NewServer(searcher docsearch.Searcher, version string) *Server {
	s := &Server{
		searcher: searcher,
		server: mcp.NewServer(
			&mcp.Implementation{
				Name:    ServerName,
				Version: version,
			},
			nil,
		),
	}

	mcp.AddTool(s.server,
		&mcp.Tool{
			Name:        SearchToolName,
			Description: "Search the documentation by page and section. Returns up to 15 matches, title matches first, each with its URL and an excerpt around the match.",
		},
		s.Search,
	)

	return s
}

// Run serves MCP over t until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.server.Run(ctx, t)
}

// Search handles the search tool.
func (s *Server) Search(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	output := SearchOutput{Query: input.Query, Results: []SearchResult{}}
	if strings.TrimSpace(input.Query) == "" {
		return nil, output, nil
	}

	entries, err := s.searcher.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("search failed: %w", err)
	}

	for _, e := range entries {
		output.Results = append(output.Results, SearchResult{
			URL:       e.URL,
			Title:     e.Title,
			PageTitle: e.PageTitle,
			Section:   e.Section,
			Excerpt:   docsearch.Excerpt(e.Content, input.Query),
		})
	}
	output.Total = len(output.Results)

	return nil, output, nil
}
