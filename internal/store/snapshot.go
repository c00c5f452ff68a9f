package store

import (
	"fmt"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// Snapshot captures the store contents in display order for persistence.
type Snapshot struct {
	Candidates []types.Candidate `json:"candidates"`
	Positions  []types.Position  `json:"positions"`
	Interviews []types.Interview `json:"interviews"`
}

// ExportState clones the current store state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := View{st: &s.state}
	return Snapshot{
		Candidates: v.Candidates(),
		Positions:  v.Positions(),
		Interviews: v.Interviews(),
	}
}

// ImportState replaces the store state with the snapshot. Entities without
// an ID, duplicate IDs, and duplicate identities are rejected with
// ErrInvalidData and leave the store unchanged.
func (s *Store) ImportState(snap Snapshot) error {
	next := newState()
	candidateKeys := make(map[string]bool, len(snap.Candidates))
	for _, c := range snap.Candidates {
		if c.CandidateID == "" {
			return fmt.Errorf("%w: candidate %q has no ID", types.ErrInvalidData, c.Name)
		}
		if _, dup := next.candidates[c.CandidateID]; dup {
			return fmt.Errorf("%w: duplicate candidate ID %s", types.ErrInvalidData, c.CandidateID)
		}
		if candidateKeys[c.IdentityKey()] {
			return fmt.Errorf("%w: %s", types.ErrDuplicateCandidate, c.Email)
		}
		candidateKeys[c.IdentityKey()] = true
		next.candidates[c.CandidateID] = c.Clone()
		next.candidateOrder = append(next.candidateOrder, c.CandidateID)
	}
	positionKeys := make(map[string]bool, len(snap.Positions))
	for _, p := range snap.Positions {
		if p.PositionID == "" {
			return fmt.Errorf("%w: position %q has no ID", types.ErrInvalidData, p.Title)
		}
		if _, dup := next.positions[p.PositionID]; dup {
			return fmt.Errorf("%w: duplicate position ID %s", types.ErrInvalidData, p.PositionID)
		}
		if positionKeys[p.IdentityKey()] {
			return fmt.Errorf("%w: %s", types.ErrDuplicatePosition, p.Title)
		}
		positionKeys[p.IdentityKey()] = true
		next.positions[p.PositionID] = p
		next.positionOrder = append(next.positionOrder, p.PositionID)
	}
	for _, i := range snap.Interviews {
		if i.InterviewID == "" {
			return fmt.Errorf("%w: interview has no ID", types.ErrInvalidData)
		}
		if _, dup := next.interviews[i.InterviewID]; dup {
			return fmt.Errorf("%w: duplicate interview ID %s", types.ErrInvalidData, i.InterviewID)
		}
		next.interviews[i.InterviewID] = i.Clone()
		next.interviewOrder = append(next.interviewOrder, i.InterviewID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	return nil
}
