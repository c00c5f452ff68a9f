package store

import (
	"fmt"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// AddCandidateToInterview adds the candidate to the interview's attendee set.
// Only the interview side changes; the caller records the candidate side with
// Candidate.AddInterview in the same transaction.
func (tx *Tx) AddCandidateToInterview(interviewID, candidateID string) error {
	if _, ok := tx.st.candidates[candidateID]; !ok {
		return fmt.Errorf("%w: candidate %s", types.ErrNotFound, candidateID)
	}
	return tx.UpdateInterview(interviewID, func(i *types.Interview) {
		i.AddCandidate(candidateID)
	})
}

// RemoveCandidateFromInterview drops the candidate from the interview's
// attendee set. Only the interview side changes. The candidate need not be
// stored, so stale attendees can be cleaned up after a delete.
func (tx *Tx) RemoveCandidateFromInterview(interviewID, candidateID string) error {
	return tx.UpdateInterview(interviewID, func(i *types.Interview) {
		i.DeleteCandidate(candidateID)
	})
}

// Link records both sides of a candidate/interview link.
func (tx *Tx) Link(interviewID, candidateID string) error {
	if err := tx.AddCandidateToInterview(interviewID, candidateID); err != nil {
		return err
	}
	return tx.UpdateCandidate(candidateID, func(c *types.Candidate) {
		c.AddInterview(interviewID)
	})
}

// Unlink removes both sides of a candidate/interview link.
func (tx *Tx) Unlink(interviewID, candidateID string) error {
	if err := tx.RemoveCandidateFromInterview(interviewID, candidateID); err != nil {
		return err
	}
	return tx.UpdateCandidate(candidateID, func(c *types.Candidate) {
		c.DeleteInterview(interviewID)
	})
}
