package store

import (
	"fmt"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// View is a read-only window over a store state. Every value it returns is a
// copy; mutating it does not affect the store.
type View struct {
	st *state
}

// Candidates returns every candidate in display order.
func (v View) Candidates() []types.Candidate {
	out := make([]types.Candidate, 0, len(v.st.candidateOrder))
	for _, id := range v.st.candidateOrder {
		out = append(out, v.st.candidates[id].Clone())
	}
	return out
}

// Positions returns every position in display order.
func (v View) Positions() []types.Position {
	out := make([]types.Position, 0, len(v.st.positionOrder))
	for _, id := range v.st.positionOrder {
		out = append(out, v.st.positions[id])
	}
	return out
}

// Interviews returns every interview in display order.
func (v View) Interviews() []types.Interview {
	out := make([]types.Interview, 0, len(v.st.interviewOrder))
	for _, id := range v.st.interviewOrder {
		out = append(out, v.st.interviews[id].Clone())
	}
	return out
}

// Candidate returns the candidate with the given ID.
func (v View) Candidate(id string) (types.Candidate, bool) {
	c, ok := v.st.candidates[id]
	if !ok {
		return types.Candidate{}, false
	}
	return c.Clone(), true
}

// Position returns the position with the given ID.
func (v View) Position(id string) (types.Position, bool) {
	p, ok := v.st.positions[id]
	return p, ok
}

// Interview returns the interview with the given ID.
func (v View) Interview(id string) (types.Interview, bool) {
	i, ok := v.st.interviews[id]
	if !ok {
		return types.Interview{}, false
	}
	return i.Clone(), true
}

// HasCandidate reports whether a stored candidate shares c's identity.
// Matching is by identity (email), not by ID, so a freshly built edit copy
// still matches its stored original.
func (v View) HasCandidate(c types.Candidate) bool {
	_, ok := v.findCandidate(c.IdentityKey())
	return ok
}

// HasPosition reports whether a stored position shares p's identity.
func (v View) HasPosition(p types.Position) bool {
	_, ok := v.findPosition(p.IdentityKey())
	return ok
}

// HasInterview reports whether an interview for the same position and start
// time is stored.
func (v View) HasInterview(i types.Interview) bool {
	for _, id := range v.st.interviewOrder {
		stored := v.st.interviews[id]
		if stored.IsSameInterview(&i) {
			return true
		}
	}
	return false
}

// PositionReference returns the canonical stored position sharing p's
// identity, or an error wrapping ErrPositionNotFound.
func (v View) PositionReference(p types.Position) (types.Position, error) {
	id, ok := v.findPosition(p.IdentityKey())
	if !ok {
		return types.Position{}, fmt.Errorf("%w: %s", types.ErrPositionNotFound, p.Title)
	}
	return v.st.positions[id], nil
}

// IsPositionOpen reports whether the stored position sharing p's identity
// exists and is OPEN.
func (v View) IsPositionOpen(p types.Position) bool {
	ref, err := v.PositionReference(p)
	return err == nil && ref.IsOpen()
}

// CandidatesHoldingPosition returns the candidates that hold positionID, in
// display order.
func (v View) CandidatesHoldingPosition(positionID string) []types.Candidate {
	var out []types.Candidate
	for _, id := range v.st.candidateOrder {
		c := v.st.candidates[id]
		if c.HasPosition(positionID) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// InterviewsForPosition returns the interviews scheduled for positionID, in
// display order.
func (v View) InterviewsForPosition(positionID string) []types.Interview {
	var out []types.Interview
	for _, id := range v.st.interviewOrder {
		i := v.st.interviews[id]
		if i.PositionID == positionID {
			out = append(out, i.Clone())
		}
	}
	return out
}

func (v View) findCandidate(key string) (string, bool) {
	for _, id := range v.st.candidateOrder {
		c := v.st.candidates[id]
		if c.IdentityKey() == key {
			return id, true
		}
	}
	return "", false
}

func (v View) findPosition(key string) (string, bool) {
	for _, id := range v.st.positionOrder {
		p := v.st.positions[id]
		if p.IdentityKey() == key {
			return id, true
		}
	}
	return "", false
}
