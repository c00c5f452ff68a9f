// Package store holds the canonical in-memory collections of candidates,
// positions and interviews.
//
// Entities live in an arena keyed by stable IDs, with a separate slot order
// per collection so that replacing an entity keeps its place in every list
// view. All mutation goes through RunInTransaction, which works on a clone of
// the state and swaps it in only when the callback succeeds.
package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// state is the arena. Order slices hold IDs in display order; maps hold the
// entity values.
type state struct {
	candidateOrder []string
	candidates     map[string]types.Candidate
	positionOrder  []string
	positions      map[string]types.Position
	interviewOrder []string
	interviews     map[string]types.Interview
}

func newState() state {
	return state{
		candidates: make(map[string]types.Candidate),
		positions:  make(map[string]types.Position),
		interviews: make(map[string]types.Interview),
	}
}

func (s *state) clone() state {
	cp := state{
		candidateOrder: slices.Clone(s.candidateOrder),
		candidates:     make(map[string]types.Candidate, len(s.candidates)),
		positionOrder:  slices.Clone(s.positionOrder),
		positions:      make(map[string]types.Position, len(s.positions)),
		interviewOrder: slices.Clone(s.interviewOrder),
		interviews:     make(map[string]types.Interview, len(s.interviews)),
	}
	for k, v := range s.candidates {
		cp.candidates[k] = v.Clone()
	}
	for k, v := range s.positions {
		cp.positions[k] = v
	}
	for k, v := range s.interviews {
		cp.interviews[k] = v.Clone()
	}
	return cp
}

// Store owns the entity arena for one session. The zero value is not usable;
// call New.
type Store struct {
	mu    sync.RWMutex
	state state
	nowFn func() time.Time

	candidateFilter func(types.Candidate) bool
	positionFilter  func(types.Position) bool
	interviewFilter func(types.Interview) bool
}

// New constructs an empty store.
func New() *Store {
	return &Store{
		state: newState(),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the clock used to stamp CreatedAt/UpdatedAt.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = fn
}

// newID generates a UUID v7 for entity IDs.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// RunInTransaction executes fn against a clone of the store state. If fn
// returns nil the clone replaces the live state; otherwise the store is left
// exactly as it was.
func (s *Store) RunInTransaction(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cloned := s.state.clone()
	tx := &Tx{
		View: View{st: &cloned},
		now:  s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return err
	}
	s.state = cloned
	return nil
}

// Read executes fn against a read-only view of the live state. The view must
// not escape fn.
func (s *Store) Read(fn func(v View) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(View{st: &s.state})
}

// Candidates returns every candidate in display order.
func (s *Store) Candidates() []types.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.Candidates()
}

// Positions returns every position in display order.
func (s *Store) Positions() []types.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.Positions()
}

// Interviews returns every interview in display order.
func (s *Store) Interviews() []types.Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.Interviews()
}

// Candidate returns the candidate with the given ID.
func (s *Store) Candidate(id string) (types.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.Candidate(id)
}

// Position returns the position with the given ID.
func (s *Store) Position(id string) (types.Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.Position(id)
}

// Interview returns the interview with the given ID.
func (s *Store) Interview(id string) (types.Interview, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.Interview(id)
}

// HasCandidate reports whether a stored candidate has c's identity.
func (s *Store) HasCandidate(c types.Candidate) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.HasCandidate(c)
}

// HasPosition reports whether a stored position has p's identity.
func (s *Store) HasPosition(p types.Position) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.HasPosition(p)
}

// PositionReference returns the stored position sharing p's identity.
func (s *Store) PositionReference(p types.Position) (types.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.PositionReference(p)
}

// IsPositionOpen reports whether the stored position sharing p's identity
// exists and is OPEN.
func (s *Store) IsPositionOpen(p types.Position) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{st: &s.state}.IsPositionOpen(p)
}

// SetCandidateFilter sets the predicate for the displayed candidate list.
// A nil predicate shows every candidate.
func (s *Store) SetCandidateFilter(pred func(types.Candidate) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidateFilter = pred
}

// SetPositionFilter sets the predicate for the displayed position list.
func (s *Store) SetPositionFilter(pred func(types.Position) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positionFilter = pred
}

// SetInterviewFilter sets the predicate for the displayed interview list.
func (s *Store) SetInterviewFilter(pred func(types.Interview) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviewFilter = pred
}

// FilteredCandidates returns the displayed candidate list.
func (s *Store) FilteredCandidates() []types.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(View{st: &s.state}.Candidates(), s.candidateFilter)
}

// FilteredPositions returns the displayed position list.
func (s *Store) FilteredPositions() []types.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(View{st: &s.state}.Positions(), s.positionFilter)
}

// FilteredInterviews returns the displayed interview list.
func (s *Store) FilteredInterviews() []types.Interview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(View{st: &s.state}.Interviews(), s.interviewFilter)
}

// CandidateAt resolves a 1-based index into the displayed candidate list.
func (s *Store) CandidateAt(index int) (types.Candidate, error) {
	return at(s.FilteredCandidates(), index, "candidate")
}

// PositionAt resolves a 1-based index into the displayed position list.
func (s *Store) PositionAt(index int) (types.Position, error) {
	return at(s.FilteredPositions(), index, "position")
}

// InterviewAt resolves a 1-based index into the displayed interview list.
func (s *Store) InterviewAt(index int) (types.Interview, error) {
	return at(s.FilteredInterviews(), index, "interview")
}

func filter[T any](items []T, pred func(T) bool) []T {
	if pred == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func at[T any](items []T, index int, kind string) (T, error) {
	var zero T
	if index < 1 || index > len(items) {
		return zero, fmt.Errorf("%w: %s index %d (displayed: %d)", types.ErrInvalidIndex, kind, index, len(items))
	}
	return items[index-1], nil
}
