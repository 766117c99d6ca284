package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/glamour"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/fwojciec/docsearch/htmltomarkdown"
	dshttp "github.com/fwojciec/docsearch/http"
	"github.com/fwojciec/docsearch/indexer"
	"github.com/fwojciec/docsearch/mdx"
	"github.com/fwojciec/docsearch/memory"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/joho/godotenv"
)

// version is set at build time.
var version = "dev"

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "docsearch.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigFiles are the configuration files tried when --config is not
	// given. Set before calling Run().
	ConfigFiles []string

	// SQLite database, opened when --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigFiles: []string{DefaultConfigFile},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Description("Build and search a static documentation index"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(YAMLConfig, m.ConfigFiles...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	defer m.Close()

	// Wire command-specific dependencies based on command
	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "build":
		if err := m.wireBuilder(cli, deps); err != nil {
			return err
		}
	case "search", "serve", "interactive", "mcp":
		if err := m.wireSearcher(cli, deps); err != nil {
			return err
		}
		if cmd == "search" {
			deps.Renderer = glamour.ForWriter(stdout)
		}
	}

	return kongCtx.Run(deps)
}

// openDB opens the SQLite database at path once.
func (m *Main) openDB(path string) (*sqlite.DB, error) {
	if m.DB != nil {
		return m.DB, nil
	}
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.DB = db
	return db, nil
}

func (m *Main) wireBuilder(cli *CLI, deps *Dependencies) error {
	walker := fs.NewWalker(cli.Build.Root)
	walker.BasePath = cli.Build.Base
	walker.PageNames = cli.Build.Page
	if cli.Build.HTML {
		walker.PageNames = append(walker.PageNames, "index.html")
	}

	mdxParser := mdx.NewParser()
	out := cli.Build.Out
	if out == "" {
		out = cli.Index
	}

	file := fs.NewIndexFile(out)
	writers := []docsearch.IndexWriter{
		dsslog.NewLoggingIndexWriter(file, file.Path(), deps.Logger),
	}
	if cli.DB != "" {
		db, err := m.openDB(cli.DB)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "Hint: Set DOCSEARCH_DB to use a different database path\n")
			return err
		}
		writers = append(writers, dsslog.NewLoggingIndexWriter(sqlite.NewIndexStore(db), cli.DB, deps.Logger))
	}

	deps.IndexPath = file.Path()
	deps.Builder = &indexer.Builder{
		Source: walker,
		Parsers: map[string]docsearch.Parser{
			".mdx":  mdxParser,
			".md":   mdxParser,
			".html": goquery.NewParser(htmltomarkdown.NewConverter()),
		},
		Writers:     writers,
		Concurrency: cli.Build.Concurrency,
	}
	return nil
}

func (m *Main) wireSearcher(cli *CLI, deps *Dependencies) error {
	var reader docsearch.IndexReader
	var source string
	switch {
	case cli.IndexURL != "":
		f := dshttp.NewIndexFetcher(cli.IndexURL)
		reader, source = f, f.URL()
	case cli.DB != "":
		db, err := m.openDB(cli.DB)
		if err != nil {
			return err
		}
		reader, source = sqlite.NewIndexStore(db), cli.DB
	default:
		f := fs.NewIndexFile(cli.Index)
		reader, source = f, f.Path()
	}
	reader = dsslog.NewLoggingIndexReader(reader, source, deps.Logger)

	searcher := memory.NewSearcher(reader, deps.Logger)
	// A missing index degrades to empty results; Load has already logged it.
	_ = searcher.Load(deps.Ctx)
	deps.Logger.Debug("search index loaded", "source", source, "entries", searcher.Len())

	deps.Index = searcher
	deps.Searcher = dsslog.NewLoggingSearcher(searcher, deps.Logger)
	return nil
}
