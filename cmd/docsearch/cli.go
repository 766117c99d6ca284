package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/indexer"
	"github.com/fwojciec/docsearch/memory"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Builder   *indexer.Builder
	IndexPath string

	// Index is the snapshot loaded at startup. Searcher queries the same
	// snapshot.
	Index    *memory.Searcher
	Searcher docsearch.Searcher
	Renderer docsearch.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag values from a YAML file" type:"path"`
	Verbose bool            `short:"v" env:"DOCSEARCH_VERBOSE" help:"Enable debug logging"`

	Index    string `default:"search-data.json" env:"DOCSEARCH_INDEX" type:"path" help:"JSON index file"`
	DB       string `env:"DOCSEARCH_DB" type:"path" help:"SQLite database holding the index"`
	IndexURL string `name:"index-url" env:"DOCSEARCH_INDEX_URL" help:"URL of a published JSON index"`

	Build       BuildCmd       `cmd:"" help:"Build the search index from a content tree"`
	Search      SearchCmd      `cmd:"" help:"Search the index once and print the results"`
	Serve       ServeCmd       `cmd:"" help:"Serve the search API over HTTP"`
	Interactive InteractiveCmd `cmd:"" help:"Search interactively in the terminal"`
	MCP         MCPCmd         `cmd:"" name:"mcp" help:"Serve the search tool over MCP on stdio"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Root        string   `default:"content" type:"path" help:"Content root directory"`
	Base        string   `default:"/docs" help:"Site path the content root is served at"`
	Page        []string `default:"page.mdx" help:"File names that mark a page (repeatable)"`
	HTML        bool     `help:"Also index exported index.html pages"`
	Out         string   `type:"path" help:"Output JSON file (defaults to --index)"`
	Concurrency int      `short:"c" default:"8" help:"Concurrent parse limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Text to search for"`
	JSON  bool   `help:"Print results as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string  `default:":8080" env:"DOCSEARCH_ADDR" help:"Listen address"`
	Static    string  `type:"path" help:"Directory of static files served at /"`
	RateLimit float64 `default:"10" help:"Requests per second allowed per client (0 disables)"`
	Burst     int     `default:"20" help:"Requests a client may burst above the rate"`
}

// InteractiveCmd is the "interactive" subcommand.
type InteractiveCmd struct {
	Delay time.Duration `default:"100ms" help:"Quiet period after typing before searching"`
}

// MCPCmd is the "mcp" subcommand.
type MCPCmd struct{}
