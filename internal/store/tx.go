package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// Tx is a mutable unit of work over a cloned store state. Reads through the
// embedded View see the transaction's own writes.
type Tx struct {
	View
	now time.Time
}

// Now returns the timestamp shared by every write in the transaction.
func (tx *Tx) Now() time.Time {
	return tx.now
}

// InsertCandidate appends a candidate and returns its ID. An empty
// CandidateID is filled with a UUID v7.
func (tx *Tx) InsertCandidate(c types.Candidate) (string, error) {
	if c.CandidateID == "" {
		c.CandidateID = newID()
	}
	if _, ok := tx.st.candidates[c.CandidateID]; ok {
		return "", fmt.Errorf("%w: candidate ID %s already stored", types.ErrInvalidID, c.CandidateID)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = tx.now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = tx.now
	}
	tx.st.candidates[c.CandidateID] = c.Clone()
	tx.st.candidateOrder = append(tx.st.candidateOrder, c.CandidateID)
	return c.CandidateID, nil
}

// InsertPosition appends a position and returns its ID.
func (tx *Tx) InsertPosition(p types.Position) (string, error) {
	if p.PositionID == "" {
		p.PositionID = newID()
	}
	if _, ok := tx.st.positions[p.PositionID]; ok {
		return "", fmt.Errorf("%w: position ID %s already stored", types.ErrInvalidID, p.PositionID)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = tx.now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = tx.now
	}
	tx.st.positions[p.PositionID] = p
	tx.st.positionOrder = append(tx.st.positionOrder, p.PositionID)
	return p.PositionID, nil
}

// InsertInterview appends an interview and returns its ID. The position must
// already be stored.
func (tx *Tx) InsertInterview(i types.Interview) (string, error) {
	if _, ok := tx.st.positions[i.PositionID]; !ok {
		return "", fmt.Errorf("%w: interview position %s", types.ErrPositionNotFound, i.PositionID)
	}
	if i.InterviewID == "" {
		i.InterviewID = newID()
	}
	if _, ok := tx.st.interviews[i.InterviewID]; ok {
		return "", fmt.Errorf("%w: interview ID %s already stored", types.ErrInvalidID, i.InterviewID)
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = tx.now
	}
	tx.st.interviews[i.InterviewID] = i.Clone()
	tx.st.interviewOrder = append(tx.st.interviewOrder, i.InterviewID)
	return i.InterviewID, nil
}

// ReplaceCandidate swaps old for replacement in old's slot. The replacement
// keeps old's ID when its own is empty. Returns ErrNotFound if old is not
// stored.
func (tx *Tx) ReplaceCandidate(old, replacement types.Candidate) error {
	idx := slices.Index(tx.st.candidateOrder, old.CandidateID)
	if idx < 0 {
		return fmt.Errorf("%w: candidate %s", types.ErrNotFound, old.CandidateID)
	}
	if replacement.CandidateID == "" {
		replacement.CandidateID = old.CandidateID
	}
	if replacement.CandidateID != old.CandidateID {
		if _, taken := tx.st.candidates[replacement.CandidateID]; taken {
			return fmt.Errorf("%w: candidate ID %s already stored", types.ErrInvalidID, replacement.CandidateID)
		}
		delete(tx.st.candidates, old.CandidateID)
	}
	tx.st.candidateOrder[idx] = replacement.CandidateID
	tx.st.candidates[replacement.CandidateID] = replacement.Clone()
	return nil
}

// ReplacePosition swaps old for replacement in old's slot.
func (tx *Tx) ReplacePosition(old, replacement types.Position) error {
	idx := slices.Index(tx.st.positionOrder, old.PositionID)
	if idx < 0 {
		return fmt.Errorf("%w: position %s", types.ErrNotFound, old.PositionID)
	}
	if replacement.PositionID == "" {
		replacement.PositionID = old.PositionID
	}
	if replacement.PositionID != old.PositionID {
		if _, taken := tx.st.positions[replacement.PositionID]; taken {
			return fmt.Errorf("%w: position ID %s already stored", types.ErrInvalidID, replacement.PositionID)
		}
		delete(tx.st.positions, old.PositionID)
	}
	tx.st.positionOrder[idx] = replacement.PositionID
	tx.st.positions[replacement.PositionID] = replacement
	return nil
}

// ReplaceInterview swaps old for replacement in old's slot.
func (tx *Tx) ReplaceInterview(old, replacement types.Interview) error {
	idx := slices.Index(tx.st.interviewOrder, old.InterviewID)
	if idx < 0 {
		return fmt.Errorf("%w: interview %s", types.ErrNotFound, old.InterviewID)
	}
	if replacement.InterviewID == "" {
		replacement.InterviewID = old.InterviewID
	}
	if replacement.InterviewID != old.InterviewID {
		if _, taken := tx.st.interviews[replacement.InterviewID]; taken {
			return fmt.Errorf("%w: interview ID %s already stored", types.ErrInvalidID, replacement.InterviewID)
		}
		delete(tx.st.interviews, old.InterviewID)
	}
	tx.st.interviewOrder[idx] = replacement.InterviewID
	tx.st.interviews[replacement.InterviewID] = replacement.Clone()
	return nil
}

// UpdateCandidate applies fn to the stored candidate with the given ID.
func (tx *Tx) UpdateCandidate(id string, fn func(c *types.Candidate)) error {
	c, ok := tx.st.candidates[id]
	if !ok {
		return fmt.Errorf("%w: candidate %s", types.ErrNotFound, id)
	}
	c = c.Clone()
	fn(&c)
	tx.st.candidates[id] = c
	return nil
}

// UpdateInterview applies fn to the stored interview with the given ID.
func (tx *Tx) UpdateInterview(id string, fn func(i *types.Interview)) error {
	i, ok := tx.st.interviews[id]
	if !ok {
		return fmt.Errorf("%w: interview %s", types.ErrNotFound, id)
	}
	i = i.Clone()
	fn(&i)
	tx.st.interviews[id] = i
	return nil
}

// DeleteCandidate removes a candidate. Links held by other entities are the
// caller's responsibility.
func (tx *Tx) DeleteCandidate(id string) error {
	if _, ok := tx.st.candidates[id]; !ok {
		return fmt.Errorf("%w: candidate %s", types.ErrNotFound, id)
	}
	delete(tx.st.candidates, id)
	tx.st.candidateOrder = slices.DeleteFunc(tx.st.candidateOrder, func(s string) bool { return s == id })
	return nil
}

// DeletePosition removes a position.
func (tx *Tx) DeletePosition(id string) error {
	if _, ok := tx.st.positions[id]; !ok {
		return fmt.Errorf("%w: position %s", types.ErrNotFound, id)
	}
	delete(tx.st.positions, id)
	tx.st.positionOrder = slices.DeleteFunc(tx.st.positionOrder, func(s string) bool { return s == id })
	return nil
}

// DeleteInterview removes an interview.
func (tx *Tx) DeleteInterview(id string) error {
	if _, ok := tx.st.interviews[id]; !ok {
		return fmt.Errorf("%w: interview %s", types.ErrNotFound, id)
	}
	delete(tx.st.interviews, id)
	tx.st.interviewOrder = slices.DeleteFunc(tx.st.interviewOrder, func(s string) bool { return s == id })
	return nil
}
