package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
)

// ShutdownTimeout bounds how long Close waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// IndexPath is the path the raw index is served at.
const IndexPath = "/search-data.json"

// Server serves the search API, the raw index and optional static files.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the address to listen on, e.g. ":8080".
	Addr string

	// StaticDir, when set, is served at "/".
	StaticDir string

	// RateLimit is the number of requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimit float64
	Burst     int

	Searcher docsearch.Searcher
	Index    docsearch.IndexReader
	Logger   *slog.Logger
}

// NewServer returns a Server with a discarding logger.
func NewServer() *Server {
	return &Server{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Handler builds the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET "+IndexPath, s.handleIndex)
	if s.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.StaticDir)))
	}

	if s.RateLimit <= 0 {
		return mux
	}
	return NewClientLimiter(s.RateLimit, s.Burst).Middleware(mux)
}

// Open starts listening and serving in the background.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	addr := s.ln.Addr().(*net.TCPAddr)
	host := "localhost"
	if ip := addr.IP; ip != nil && !ip.IsUnspecified() {
		host = ip.String()
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(addr.Port)))
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
	Total   int            `json:"total"`
}

type searchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	PageTitle   string `json:"pageTitle"`
	Section     string `json:"section,omitempty"`
	Excerpt     string `json:"excerpt"`
	TitleHTML   string `json:"titleHTML"`
	ExcerptHTML string `json:"excerptHTML"`
}

// handleSearch never fails: an unavailable index yields no results.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	entries, err := s.Searcher.Search(r.Context(), query)
	if err != nil {
		s.Logger.Warn("search failed", "query", query, "err", err)
		entries = nil
	}

	results := make([]searchResult, 0, len(entries))
	for _, e := range entries {
		excerpt := docsearch.Excerpt(e.Content, query)
		results = append(results, searchResult{
			URL:         e.URL,
			Title:       e.Title,
			PageTitle:   e.PageTitle,
			Section:     e.Section,
			Excerpt:     excerpt,
			TitleHTML:   HighlightHTML(e.Title, query),
			ExcerptHTML: HighlightHTML(excerpt, query),
		})
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.Index == nil {
		writeError(w, http.StatusNotFound, "no index configured")
		return
	}

	entries, err := s.Index.ReadIndex(r.Context())
	if err != nil {
		s.Logger.Warn("read index", "err", err)
		writeError(w, errorStatus(err), docsearch.ErrorMessage(err))
		return
	}

	data, err := fs.EncodeIndex(entries)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode index")
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(data))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HighlightHTML escapes text and wraps every case-insensitive occurrence of
// query in <mark>.
func HighlightHTML(text, query string) string {
	var b strings.Builder
	for _, seg := range docsearch.Highlight(text, query) {
		if seg.Match {
			b.WriteString("<mark>")
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString("</mark>")
			continue
		}
		b.WriteString(html.EscapeString(seg.Text))
	}
	return b.String()
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// errorStatus maps an index read failure to a status. The index is
// server-side state, so only a missing index is not a server error.
func errorStatus(err error) int {
	switch docsearch.ErrorCode(err) {
	case docsearch.ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
