package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mock"
	"github.com/fwojciec/docsearch/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler records callbacks and runs them only when a test fires them.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) session.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// fireAll runs every timer that has not been stopped or fired.
func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

// forceFire runs timer i even if it was stopped, as if it fired just
// before being stopped.
func (s *fakeScheduler) forceFire(i int) {
	s.mu.Lock()
	t := s.timers[i]
	s.mu.Unlock()
	t.f()
}

func (s *fakeScheduler) timer(i int) *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[i]
}

func (s *fakeScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// recordingSearcher searches a fixed index and records the queries it ran.
type recordingSearcher struct {
	mu      sync.Mutex
	queries []string
	index   []docsearch.IndexEntry
}

func (r *recordingSearcher) Search(_ context.Context, q string) ([]docsearch.IndexEntry, error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
	return docsearch.Search(q, r.index), nil
}

func (r *recordingSearcher) ran() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

var testIndex = []docsearch.IndexEntry{
	{URL: "/docs/zh-CN/video-generation/video-sora", Title: "Sora 参数", PageTitle: "Sora 参数", Content: "..."},
	{URL: "/docs/zh-CN/video-generation/video-sora#参数", Title: "参数", PageTitle: "Sora 参数", Content: "...", Section: "参数"},
}

func noNavigation() *mock.Navigator {
	return &mock.Navigator{NavigateFn: func(string) error { return nil }}
}

func newSession(t *testing.T, opts ...session.Option) (*session.Session, *fakeScheduler, *recordingSearcher) {
	t.Helper()
	sched := &fakeScheduler{}
	searcher := &recordingSearcher{index: testIndex}
	opts = append([]session.Option{session.WithScheduler(sched)}, opts...)
	return session.New(searcher, noNavigation(), opts...), sched, searcher
}

func TestSession_SetQuery(t *testing.T) {
	t.Parallel()

	t.Run("waits for the debounce delay before searching", func(t *testing.T) {
		t.Parallel()

		s, sched, searcher := newSession(t)

		s.SetQuery("参数")

		st := s.State()
		assert.Equal(t, session.Pending, st.Phase)
		assert.True(t, st.Loading)
		assert.Empty(t, searcher.ran())
		assert.Equal(t, session.DefaultDelay, sched.timer(0).delay)

		sched.fireAll()

		st = s.State()
		assert.Equal(t, session.Ready, st.Phase)
		assert.False(t, st.Loading)
		require.Len(t, st.Results, 2)
		assert.Equal(t, "/docs/zh-CN/video-generation/video-sora", st.Results[0].URL)
	})

	t.Run("searches only the last query of a burst", func(t *testing.T) {
		t.Parallel()

		s, sched, searcher := newSession(t)

		s.SetQuery("s")
		s.SetQuery("so")
		s.SetQuery("sora")

		assert.Equal(t, 1, sched.live())
		sched.fireAll()
		assert.Equal(t, []string{"sora"}, searcher.ran())
		assert.Equal(t, "sora", s.State().Query)
	})

	t.Run("ignores a superseded timer that already fired", func(t *testing.T) {
		t.Parallel()

		s, sched, searcher := newSession(t)

		s.SetQuery("a")
		s.SetQuery("参数")
		sched.forceFire(0)

		assert.Empty(t, searcher.ran())
		assert.Equal(t, session.Pending, s.State().Phase)

		sched.fireAll()
		assert.Equal(t, []string{"参数"}, searcher.ran())
	})

	t.Run("blank query clears results and cancels the pending search", func(t *testing.T) {
		t.Parallel()

		s, sched, searcher := newSession(t)
		s.SetQuery("参数")
		sched.fireAll()
		require.NotEmpty(t, s.State().Results)

		s.SetQuery("x")
		s.SetQuery("   ")

		st := s.State()
		assert.Equal(t, session.Idle, st.Phase)
		assert.False(t, st.Loading)
		assert.Empty(t, st.Results)
		assert.Equal(t, 0, sched.live())

		sched.forceFire(1)
		assert.Equal(t, []string{"参数"}, searcher.ran())
	})

	t.Run("discards results of a query superseded during search", func(t *testing.T) {
		t.Parallel()

		sched := &fakeScheduler{}
		var s *session.Session
		searcher := &mock.Searcher{
			SearchFn: func(_ context.Context, q string) ([]docsearch.IndexEntry, error) {
				if q == "first" {
					s.SetQuery("second")
				}
				return []docsearch.IndexEntry{{URL: "/" + q}}, nil
			},
		}
		s = session.New(searcher, noNavigation(), session.WithScheduler(sched))

		s.SetQuery("first")
		sched.fireAll()

		st := s.State()
		assert.Equal(t, "second", st.Query)
		assert.Equal(t, session.Pending, st.Phase)
		assert.Empty(t, st.Results)

		sched.fireAll()
		require.Len(t, s.State().Results, 1)
		assert.Equal(t, "/second", s.State().Results[0].URL)
	})

	t.Run("treats search errors as no results", func(t *testing.T) {
		t.Parallel()

		sched := &fakeScheduler{}
		searcher := &mock.Searcher{
			SearchFn: func(context.Context, string) ([]docsearch.IndexEntry, error) {
				return nil, errors.New("index unavailable")
			},
		}
		s := session.New(searcher, noNavigation(), session.WithScheduler(sched))

		s.SetQuery("sora")
		sched.fireAll()

		st := s.State()
		assert.Equal(t, session.Ready, st.Phase)
		assert.NotNil(t, st.Results)
		assert.Empty(t, st.Results)
	})

	t.Run("uses the configured delay", func(t *testing.T) {
		t.Parallel()

		s, sched, _ := newSession(t, session.WithDelay(250*time.Millisecond))

		s.SetQuery("x")

		assert.Equal(t, 250*time.Millisecond, sched.timer(0).delay)
	})
}

func TestSession_OpenClose(t *testing.T) {
	t.Parallel()

	t.Run("open schedules focus", func(t *testing.T) {
		t.Parallel()

		focused := 0
		s, sched, _ := newSession(t, session.WithOnFocus(func() { focused++ }))

		s.Open()

		assert.True(t, s.State().Open)
		assert.Equal(t, 0, focused)
		assert.Equal(t, time.Duration(0), sched.timer(0).delay)

		sched.fireAll()
		assert.Equal(t, 1, focused)
	})

	t.Run("open is a no-op when already open", func(t *testing.T) {
		t.Parallel()

		changes := 0
		s, sched, _ := newSession(t,
			session.WithOnFocus(func() {}),
			session.WithOnChange(func(session.State) { changes++ }),
		)

		s.Open()
		s.Open()

		assert.Equal(t, 1, changes)
		assert.Equal(t, 1, sched.live())
	})

	t.Run("closing before focus cancels it", func(t *testing.T) {
		t.Parallel()

		focused := false
		s, sched, _ := newSession(t, session.WithOnFocus(func() { focused = true }))

		s.Open()
		s.Close()
		sched.forceFire(0)

		assert.False(t, focused)
	})

	t.Run("close clears query and results", func(t *testing.T) {
		t.Parallel()

		s, sched, _ := newSession(t)
		s.Open()
		s.SetQuery("参数")
		sched.fireAll()

		s.Close()

		assert.Equal(t, session.State{}, s.State())
	})

	t.Run("close discards a pending search", func(t *testing.T) {
		t.Parallel()

		s, sched, searcher := newSession(t)
		s.Open()
		s.SetQuery("参数")

		s.Close()
		sched.forceFire(0)

		assert.Empty(t, searcher.ran())
		assert.Equal(t, session.Idle, s.State().Phase)
	})
}

func TestSession_Select(t *testing.T) {
	t.Parallel()

	t.Run("closes clears and navigates", func(t *testing.T) {
		t.Parallel()

		var navigated string
		nav := &mock.Navigator{NavigateFn: func(url string) error {
			navigated = url
			return nil
		}}
		sched := &fakeScheduler{}
		s := session.New(&recordingSearcher{index: testIndex}, nav, session.WithScheduler(sched))
		s.Open()
		s.SetQuery("参数")
		sched.fireAll()

		err := s.Select("/docs/zh-CN/video-generation/video-sora#参数")

		require.NoError(t, err)
		assert.Equal(t, "/docs/zh-CN/video-generation/video-sora#参数", navigated)
		assert.Equal(t, session.State{}, s.State())
	})

	t.Run("returns navigation errors", func(t *testing.T) {
		t.Parallel()

		nav := &mock.Navigator{NavigateFn: func(string) error { return errors.New("no route") }}
		s := session.New(&recordingSearcher{}, nav, session.WithScheduler(&fakeScheduler{}))

		err := s.Select("/missing")

		require.Error(t, err)
		assert.False(t, s.State().Open)
	})
}

func TestSession_HandleKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		open     bool
		key      session.Key
		handled  bool
		wantOpen bool
	}{
		{name: "ctrl+k opens", key: session.Key{Name: "k", Ctrl: true}, handled: true, wantOpen: true},
		{name: "meta+k opens", key: session.Key{Name: "k", Meta: true}, handled: true, wantOpen: true},
		{name: "plain k is ignored", key: session.Key{Name: "k"}, handled: false, wantOpen: false},
		{name: "ctrl+shift+K is ignored", key: session.Key{Name: "K", Ctrl: true}, handled: false, wantOpen: false},
		{name: "ctrl+k while open is ignored", open: true, key: session.Key{Name: "k", Ctrl: true}, handled: false, wantOpen: true},
		{name: "escape closes", open: true, key: session.Key{Name: session.KeyEscape}, handled: true, wantOpen: false},
		{name: "escape while closed is ignored", key: session.Key{Name: session.KeyEscape}, handled: false, wantOpen: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _, _ := newSession(t)
			if tt.open {
				s.Open()
			}

			assert.Equal(t, tt.handled, s.HandleKey(tt.key))
			assert.Equal(t, tt.wantOpen, s.State().Open)
		})
	}

	t.Run("escape clears the query", func(t *testing.T) {
		t.Parallel()

		s, _, _ := newSession(t)
		s.Open()
		s.SetQuery("sora")

		s.HandleKey(session.Key{Name: session.KeyEscape})

		assert.Empty(t, s.State().Query)
	})
}

func TestSession_OnChange(t *testing.T) {
	t.Parallel()

	var states []session.State
	s, sched, _ := newSession(t, session.WithOnChange(func(st session.State) {
		states = append(states, st)
	}))

	s.Open()
	s.SetQuery("参数")
	sched.fireAll()
	s.Close()

	require.Len(t, states, 4)
	assert.True(t, states[0].Open)
	assert.Equal(t, session.Pending, states[1].Phase)
	assert.Equal(t, session.Ready, states[2].Phase)
	assert.Len(t, states[2].Results, 2)
	assert.Equal(t, session.State{}, states[3])
}
