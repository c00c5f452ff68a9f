package manager

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// InterviewInput describes a new interview for the open position with the
// given title.
type InterviewInput struct {
	Position string
	StartsAt time.Time
	Duration time.Duration
}

// AddInterview schedules a new interview with no attendees.
func (m *Manager) AddInterview(in InterviewInput) (Result, error) {
	i := types.Interview{
		StartsAt: in.StartsAt,
		Duration: in.Duration,
		Status:   types.InterviewPending,
	}

	var title string
	err := m.store.RunInTransaction(func(tx *store.Tx) error {
		ids, err := resolvePositions(tx.View, positionsFromTitles([]string{in.Position}))
		if err != nil {
			return err
		}
		i.PositionID = ids[0]
		if tx.HasInterview(i) {
			return fmt.Errorf("%w: %s at %s", types.ErrDuplicateInterview, in.Position, in.StartsAt.Format(time.RFC3339))
		}
		if err := i.Validate(); err != nil {
			return err
		}
		p, _ := tx.Position(i.PositionID)
		title = p.Title
		i.InterviewID, err = tx.InsertInterview(i)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("interview added", "interview_id", i.InterviewID, "position_id", i.PositionID)
	return Result{Message: fmt.Sprintf("New interview added: %s %s", title, i), ID: i.InterviewID}, nil
}

// DeleteInterview removes the interview at the 1-based index of the
// displayed interview list, unlinking every attendee.
func (m *Manager) DeleteInterview(index int) (Result, error) {
	target, err := m.store.InterviewAt(index)
	if err != nil {
		return Result{}, err
	}
	err = m.store.RunInTransaction(func(tx *store.Tx) error {
		if err := unlinkAll(tx, target); err != nil {
			return err
		}
		return tx.DeleteInterview(target.InterviewID)
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("interview deleted", "interview_id", target.InterviewID, "attendees", len(target.CandidateIDs))
	return Result{Message: fmt.Sprintf("Deleted Interview: %s", target), ID: target.InterviewID}, nil
}

// AssignInterview adds the candidates at the given 1-based indexes of the
// displayed candidate list to the interview at interviewIndex. Every
// candidate must hold the interview's position and not already attend it.
// Candidates still at APPLIED move to SCHEDULED.
func (m *Manager) AssignInterview(interviewIndex int, candidateIndexes []int) (Result, error) {
	target, err := m.store.InterviewAt(interviewIndex)
	if err != nil {
		return Result{}, err
	}
	candidates, err := m.candidatesAt(candidateIndexes)
	if err != nil {
		return Result{}, err
	}

	err = m.store.RunInTransaction(func(tx *store.Tx) error {
		for _, c := range candidates {
			if !c.HasPosition(target.PositionID) {
				return fmt.Errorf("%w: %s", types.ErrNotEligible, c.Name)
			}
			if target.HasCandidate(c.CandidateID) || c.HasInterview(target.InterviewID) {
				return fmt.Errorf("%w: %s", types.ErrAlreadyAssigned, c.Name)
			}
		}
		for _, c := range candidates {
			if err := tx.Link(target.InterviewID, c.CandidateID); err != nil {
				return err
			}
			err := tx.UpdateCandidate(c.CandidateID, func(c *types.Candidate) {
				if c.Status == types.StatusApplied {
					c.Status = types.StatusScheduled
				}
				c.UpdatedAt = tx.Now()
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("interview assigned", "interview_id", target.InterviewID, "candidates", len(candidates))
	return Result{
		Message: fmt.Sprintf("Assigned %s to interview: %s", names(candidates), target),
		ID:      target.InterviewID,
	}, nil
}

// UnassignInterview removes candidates from the interview at interviewIndex.
// With all set, every attendee is removed and candidateIndexes is ignored.
func (m *Manager) UnassignInterview(interviewIndex int, candidateIndexes []int, all bool) (Result, error) {
	target, err := m.store.InterviewAt(interviewIndex)
	if err != nil {
		return Result{}, err
	}

	var candidates []types.Candidate
	if all {
		for _, cid := range target.CandidateIDs {
			if c, ok := m.store.Candidate(cid); ok {
				candidates = append(candidates, c)
			}
		}
	} else {
		candidates, err = m.candidatesAt(candidateIndexes)
		if err != nil {
			return Result{}, err
		}
	}

	err = m.store.RunInTransaction(func(tx *store.Tx) error {
		for _, c := range candidates {
			if !target.HasCandidate(c.CandidateID) {
				return fmt.Errorf("%w: %s", types.ErrNotAssigned, c.Name)
			}
		}
		if all {
			return unlinkAll(tx, target)
		}
		for _, c := range candidates {
			if err := tx.Unlink(target.InterviewID, c.CandidateID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("interview unassigned", "interview_id", target.InterviewID, "candidates", len(candidates))
	return Result{
		Message: fmt.Sprintf("Unassigned %s from interview: %s", names(candidates), target),
		ID:      target.InterviewID,
	}, nil
}

// unlinkAll removes every attendee of i on both sides. Attendees that are no
// longer stored only lose the interview-side entry.
func unlinkAll(tx *store.Tx, i types.Interview) error {
	for _, cid := range i.CandidateIDs {
		if _, ok := tx.Candidate(cid); !ok {
			if err := tx.RemoveCandidateFromInterview(i.InterviewID, cid); err != nil {
				return err
			}
			continue
		}
		if err := tx.Unlink(i.InterviewID, cid); err != nil {
			return err
		}
	}
	return nil
}

// candidatesAt resolves distinct 1-based indexes into the displayed
// candidate list.
func (m *Manager) candidatesAt(indexes []int) ([]types.Candidate, error) {
	if len(indexes) == 0 {
		return nil, fmt.Errorf("%w: no candidate index given", types.ErrInvalidIndex)
	}
	var seen []int
	out := make([]types.Candidate, 0, len(indexes))
	for _, idx := range indexes {
		if slices.Contains(seen, idx) {
			continue
		}
		seen = append(seen, idx)
		c, err := m.store.CandidateAt(idx)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func names(cs []types.Candidate) string {
	ns := make([]string, 0, len(cs))
	for _, c := range cs {
		ns = append(ns, c.Name)
	}
	return strings.Join(ns, ", ")
}
