package views

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sozercan/listing-lens/internal/analyzer"
	"github.com/sozercan/listing-lens/internal/metrics"
)

type entry struct {
	session  *analyzer.Session
	lastSeen time.Time
}

// Store keeps the live page views. A view lives until it has been idle
// for ttl or is pushed out by max newer views; nothing outlives the process.
type Store struct {
	analyzer *analyzer.Analyzer
	metrics  *metrics.Metrics
	ttl      time.Duration
	max      int
	now      func() time.Time

	mu    sync.Mutex
	views map[string]*entry
}

// Option configures the Store.
type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithMetrics reports the number of live views.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

func NewStore(a *analyzer.Analyzer, ttl time.Duration, max int, opts ...Option) *Store {
	s := &Store{
		analyzer: a,
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		views:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new view in the Idle state.
func (s *Store) Create() *analyzer.Session {
	session := analyzer.NewSession(uuid.NewString(), s.analyzer)

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.views) >= s.max {
		s.evictOldestLocked()
	}
	s.views[session.ID] = &entry{session: session, lastSeen: s.now()}
	s.metrics.SetActiveViews(len(s.views))
	return session
}

// Get returns the view with the given id and marks it as used.
func (s *Store) Get(id string) (*analyzer.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.views[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.lastSeen) > s.ttl {
		delete(s.views, id)
		s.metrics.SetActiveViews(len(s.views))
		return nil, false
	}
	e.lastSeen = s.now()
	return e.session, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep drops every view idle for longer than the ttl and returns how many went.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.views {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.views, id)
			removed++
		}
	}
	s.metrics.SetActiveViews(len(s.views))
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("Swept idle views", "removed", n, "remaining", s.Len())
			}
		}
	}
}

func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.views {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		slog.Debug("Evicting least recently used view", "view_id", oldestID)
		delete(s.views, oldestID)
	}
}
