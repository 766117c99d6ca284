// Package session implements the interactive search protocol: a search
// dialog that opens on a keyboard shortcut, debounces typed queries and
// navigates to the selected result.
package session

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/docsearch"
)

// DefaultDelay is the quiet period after the last keystroke before a query
// runs.
const DefaultDelay = 100 * time.Millisecond

// Phase describes where a session is in the query cycle.
type Phase int

const (
	// Idle means the query is blank and no results are shown.
	Idle Phase = iota
	// Pending means a query is waiting for the debounce delay to pass.
	Pending
	// Ready means results for the current query are available.
	Ready
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	default:
		return "idle"
	}
}

// KeyEscape names the escape key.
const KeyEscape = "Escape"

// Key is a key press. Name is the produced character, or a key name such as
// KeyEscape.
type Key struct {
	Name string
	Ctrl bool
	Meta bool
}

// State is a snapshot of a session.
type State struct {
	Open    bool
	Query   string
	Results []docsearch.IndexEntry
	Loading bool
	Phase   Phase
}

// Option configures a Session.
type Option func(*Session)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithScheduler replaces the timer implementation.
func WithScheduler(sched Scheduler) Option {
	return func(s *Session) { s.sched = sched }
}

// WithOnChange registers a listener called with a snapshot after every
// state change.
func WithOnChange(f func(State)) Option {
	return func(s *Session) { s.onChange = f }
}

// WithOnFocus registers the callback that focuses the query input after
// the dialog opens.
func WithOnFocus(f func()) Option {
	return func(s *Session) { s.onFocus = f }
}

// WithContext sets the context queries run under.
func WithContext(ctx context.Context) Option {
	return func(s *Session) { s.ctx = ctx }
}

// Session holds the state of one search dialog. It is safe for concurrent
// use; listeners run outside the session lock.
type Session struct {
	searcher docsearch.Searcher
	nav      docsearch.Navigator

	ctx      context.Context
	delay    time.Duration
	sched    Scheduler
	onChange func(State)
	onFocus  func()

	query *Debouncer
	focus *Debouncer

	mu    sync.Mutex
	state State
	seq   uint64
}

// New creates a closed, idle Session.
func New(searcher docsearch.Searcher, nav docsearch.Navigator, opts ...Option) *Session {
	s := &Session{
		searcher: searcher,
		nav:      nav,
		ctx:      context.Background(),
		delay:    DefaultDelay,
		sched:    RealScheduler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.query = NewDebouncer(s.delay, s.sched)
	s.focus = NewDebouncer(0, s.sched)
	return s
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetQuery updates the query. A blank query clears the results at once;
// any other query runs after the debounce delay unless superseded first.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state.Query = q

	if strings.TrimSpace(q) == "" {
		s.query.Cancel()
		s.state.Results = nil
		s.state.Loading = false
		s.state.Phase = Idle
		s.notifyUnlock()
		return
	}

	s.state.Loading = true
	s.state.Phase = Pending
	s.query.Schedule(func() { s.run(seq, q) })
	s.notifyUnlock()
}

// run executes a debounced query and stores its results if no newer query
// or close happened meanwhile.
func (s *Session) run(seq uint64, q string) {
	results, err := s.searcher.Search(s.ctx, q)
	if err != nil {
		results = []docsearch.IndexEntry{}
	}

	s.mu.Lock()
	if s.seq != seq {
		s.mu.Unlock()
		return
	}
	s.state.Results = results
	s.state.Loading = false
	s.state.Phase = Ready
	s.notifyUnlock()
}

// Open opens the dialog and schedules focusing the input. It does nothing
// when the dialog is already open.
func (s *Session) Open() {
	s.mu.Lock()
	if s.state.Open {
		s.mu.Unlock()
		return
	}
	s.state.Open = true
	if s.onFocus != nil {
		s.focus.Schedule(s.onFocus)
	}
	s.notifyUnlock()
}

// Close closes the dialog, clears the query and results and cancels
// pending work.
func (s *Session) Close() {
	s.mu.Lock()
	s.seq++
	s.query.Cancel()
	s.focus.Cancel()
	s.state = State{}
	s.notifyUnlock()
}

// Select closes the dialog and navigates to url.
func (s *Session) Select(url string) error {
	s.Close()
	return s.nav.Navigate(url)
}

// HandleKey applies the keyboard shortcuts and reports whether the key was
// consumed: Ctrl+K or Meta+K opens a closed dialog, Escape closes an open
// one.
func (s *Session) HandleKey(k Key) bool {
	open := s.State().Open

	switch {
	case !open && k.Name == "k" && (k.Ctrl || k.Meta):
		s.Open()
		return true
	case open && k.Name == KeyEscape:
		s.Close()
		return true
	}
	return false
}

func (s *Session) snapshotLocked() State {
	st := s.state
	st.Results = slices.Clone(s.state.Results)
	return st
}

// notifyUnlock releases the lock and calls the change listener with the
// state as of the release.
func (s *Session) notifyUnlock() {
	st := s.snapshotLocked()
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(st)
	}
}
