package analyzer

import (
	"context"
	"log/slog"
	"sync"
)

// Session is the state of one page view. Each submission is tagged with a
// generation; only the completion of the latest generation may settle the
// view, so a slow superseded request can never overwrite a newer result.
type Session struct {
	ID string

	analyzer *Analyzer

	mu         sync.Mutex
	state      RequestState
	query      string
	generation uint64
}

func NewSession(id string, a *Analyzer) *Session {
	return &Session{
		ID:       id,
		analyzer: a,
		state:    Idle{},
	}
}

// State returns the current state of the view.
func (s *Session) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query returns the text of the latest submission, as typed.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Snapshot returns the current state together with the query that
// produced it, read under one lock.
func (s *Session) Snapshot() (RequestState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.query
}

// Submit runs one submission to completion. It returns the state this
// submission produced and whether that state was applied to the view;
// false means a newer submission was issued meanwhile and the result was
// discarded.
func (s *Session) Submit(ctx context.Context, query string) (RequestState, bool) {
	if _, err := ValidateQuery(query); err != nil {
		failed := s.analyzer.Dispatch(ctx, query)
		s.mu.Lock()
		s.generation++
		s.query = query
		s.state = failed
		s.mu.Unlock()
		return failed, true
	}

	gen := s.begin(query)
	result := s.analyzer.Dispatch(ctx, query)
	return result, s.complete(gen, result)
}

func (s *Session) begin(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.query = query
	trimmed, _ := ValidateQuery(query)
	s.state = Loading{Query: trimmed}
	return s.generation
}

func (s *Session) complete(gen uint64, result RequestState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		slog.Info("Discarding stale analysis result", "view_id", s.ID, "generation", gen, "latest", s.generation, "phase", result.Phase())
		s.analyzer.metrics.StaleCompletion()
		return false
	}
	s.state = result
	return true
}
