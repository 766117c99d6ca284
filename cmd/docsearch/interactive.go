package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/session"
	"golang.org/x/term"
)

// Raw terminal bytes.
const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyTab       = 0x09
	keyNewline   = 0x0a
	keyCtrlK     = 0x0b
	keyEnter     = 0x0d
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// Run executes the interactive command. Ctrl+K opens the search dialog,
// Escape closes it, Tab and the arrow keys move the selection and Enter
// prints the selected URL and exits.
func (c *InteractiveCmd) Run(deps *Dependencies) error {
	if f, ok := deps.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		old, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("enable raw mode: %w", err)
		}
		defer func() { _ = term.Restore(int(f.Fd()), old) }()
	}

	nav := &urlNavigator{}
	p := &prompt{w: deps.Stdout}
	s := session.New(deps.Searcher, nav,
		session.WithDelay(c.Delay),
		session.WithContext(deps.Ctx),
		session.WithOnChange(p.draw),
	)
	p.draw(s.State())

	r := bufio.NewReader(deps.Stdin)
	for {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		if quit := p.handle(s, r, b); quit {
			s.Close()
			return nil
		}
		if url := nav.selected(); url != "" {
			fmt.Fprintf(deps.Stdout, "%s\r\n", url)
			return nil
		}
	}
}

// urlNavigator records the selected URL.
type urlNavigator struct {
	mu  sync.Mutex
	url string
}

func (n *urlNavigator) Navigate(url string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.url = url
	return nil
}

func (n *urlNavigator) selected() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.url
}

// prompt draws session state and tracks the highlighted result.
type prompt struct {
	mu       sync.Mutex
	w        io.Writer
	state    session.State
	selected int
}

// handle applies one input byte and reports whether to quit.
func (p *prompt) handle(s *session.Session, r *bufio.Reader, b byte) bool {
	switch b {
	case keyCtrlC, keyCtrlD:
		return true
	case keyCtrlK:
		s.HandleKey(session.Key{Name: "k", Ctrl: true})
		return false
	case keyEscape:
		if isArrow(r) {
			p.arrow(r)
			return false
		}
		s.HandleKey(session.Key{Name: session.KeyEscape})
		return false
	}

	st := s.State()
	if !st.Open {
		return b == 'q'
	}

	switch b {
	case keyTab:
		p.move(1)
	case keyEnter, keyNewline:
		if url, ok := p.current(); ok {
			_ = s.Select(url)
		}
	case keyBackspace, keyDelete:
		if st.Query != "" {
			_, size := utf8.DecodeLastRuneInString(st.Query)
			s.SetQuery(st.Query[:len(st.Query)-size])
		}
	default:
		if b < 0x20 {
			return false
		}
		_ = r.UnreadByte()
		ch, _, err := r.ReadRune()
		if err != nil {
			return false
		}
		s.SetQuery(st.Query + string(ch))
	}
	return false
}

// isArrow reports whether an escape byte starts an arrow key sequence that
// arrived in the same read.
func isArrow(r *bufio.Reader) bool {
	if r.Buffered() == 0 {
		return false
	}
	next, err := r.Peek(1)
	return err == nil && next[0] == '['
}

// arrow consumes the rest of an arrow key sequence.
func (p *prompt) arrow(r *bufio.Reader) {
	_, _ = r.ReadByte()
	code, err := r.ReadByte()
	if err != nil {
		return
	}
	switch code {
	case 'A':
		p.move(-1)
	case 'B':
		p.move(1)
	}
}

func (p *prompt) move(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.state.Results)
	if n == 0 {
		return
	}
	p.selected = (p.selected + delta + n) % n
	p.render()
}

func (p *prompt) current() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected >= len(p.state.Results) {
		return "", false
	}
	return p.state.Results[p.selected].URL, true
}

// draw is the session change listener.
func (p *prompt) draw(st session.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = st
	p.selected = 0
	p.render()
}

// render redraws the screen. The caller holds p.mu.
func (p *prompt) render() {
	cur := p.state

	var b strings.Builder
	b.WriteString("\x1b[2J\x1b[H")
	if !cur.Open {
		b.WriteString("Press Ctrl+K to search, q to quit\r\n")
		_, _ = io.WriteString(p.w, b.String())
		return
	}

	fmt.Fprintf(&b, "Search: %s\r\n\r\n", cur.Query)
	switch {
	case cur.Phase == session.Idle:
		b.WriteString("Type to search\r\n")
	case cur.Loading:
		b.WriteString("Searching...\r\n")
	case len(cur.Results) == 0:
		b.WriteString(docsearch.NoResultsMessage(cur.Query) + "\r\n")
	default:
		for i, e := range cur.Results {
			marker := "  "
			if i == p.selected {
				marker = "> "
			}
			title := e.Title
			if !e.IsPage() {
				title += " · " + e.PageTitle
			}
			fmt.Fprintf(&b, "%s%s\r\n    %s\r\n", marker, title, docsearch.Excerpt(e.Content, cur.Query))
		}
	}
	_, _ = io.WriteString(p.w, b.String())
}
