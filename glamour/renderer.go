// Package glamour renders markdown search output for terminals.
package glamour

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/docsearch"
	"golang.org/x/term"
)

// Defaults for terminal output.
const (
	DefaultStyle = "dark"
	DefaultWidth = 80
)

// Ensure Renderer implements docsearch.Renderer at compile time.
var _ docsearch.Renderer = (*Renderer)(nil)

// Renderer renders markdown with glamour.
type Renderer struct {
	style string
	width int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle sets the glamour standard style name.
func WithStyle(style string) Option {
	return func(r *Renderer) { r.style = style }
}

// WithWordWrap wraps output at width columns.
func WithWordWrap(width int) Option {
	return func(r *Renderer) { r.width = width }
}

// NewRenderer creates a Renderer using DefaultStyle and DefaultWidth.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{style: DefaultStyle, width: DefaultWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts markdown to styled terminal text.
func (r *Renderer) Render(markdown string) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return "", err
	}
	defer tr.Close()
	return tr.Render(markdown)
}

// PlainRenderer returns markdown unchanged, for pipes and redirects.
type PlainRenderer struct{}

// Render returns markdown with a trailing newline.
func (PlainRenderer) Render(markdown string) (string, error) {
	if strings.HasSuffix(markdown, "\n") {
		return markdown, nil
	}
	return markdown + "\n", nil
}

// ForWriter picks the glamour renderer when w is a terminal and the plain
// renderer otherwise.
func ForWriter(w io.Writer, opts ...Option) docsearch.Renderer {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			opts = append([]Option{WithWordWrap(width)}, opts...)
		}
		return NewRenderer(opts...)
	}
	return PlainRenderer{}
}
