package manager

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// EditPosition edits the title or the status of the position at the 1-based
// index of the displayed position list. Only one field may change per call.
//
// Candidates holding the position keep it under its new value, unless the
// edit closes it: then they lose the position and leave its interviews.
// Interviews always stay attached to the position, closed or not.
func (m *Manager) EditPosition(index int, patch PositionPatch) (Result, error) {
	if patch.IsBothFieldsEdited() {
		return Result{}, types.ErrMultipleFieldsEdited
	}
	if !patch.IsAnyFieldEdited() {
		return Result{}, types.ErrNoFieldsEdited
	}
	target, err := m.store.PositionAt(index)
	if err != nil {
		return Result{}, err
	}

	closing := patch.IsClosing()
	var edited types.Position
	var holders []types.Candidate
	var interviews []types.Interview
	err = m.store.RunInTransaction(func(tx *store.Tx) error {
		original, ok := tx.Position(target.PositionID)
		if !ok {
			return fmt.Errorf("%w: position %s", types.ErrNotFound, target.PositionID)
		}
		edited = patch.apply(original)
		edited.UpdatedAt = tx.Now()

		if !original.IsSamePosition(&edited) && tx.HasPosition(edited) {
			return fmt.Errorf("%w: %s", types.ErrDuplicatePosition, edited.Title)
		}
		if err := edited.Validate(); err != nil {
			return err
		}

		holders = tx.CandidatesHoldingPosition(original.PositionID)
		interviews = tx.InterviewsForPosition(original.PositionID)

		if err := tx.ReplacePosition(original, edited); err != nil {
			return err
		}

		for _, c := range holders {
			err := tx.UpdateCandidate(c.CandidateID, func(c *types.Candidate) {
				c.DeletePosition(original.PositionID)
				if !closing {
					c.AddPosition(edited.PositionID)
				}
				c.UpdatedAt = tx.Now()
			})
			if err != nil {
				return err
			}
		}

		for _, i := range interviews {
			if closing {
				// Attendees no longer hold the position, so they leave the
				// interview; the interview itself stays.
				for _, cid := range i.CandidateIDs {
					if !containsCandidate(holders, cid) {
						continue
					}
					if err := tx.Unlink(i.InterviewID, cid); err != nil {
						return err
					}
				}
			}
			err := tx.UpdateInterview(i.InterviewID, func(iv *types.Interview) {
				iv.PositionID = edited.PositionID
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

	m.logger.Info("position edited",
		"position_id", edited.PositionID,
		"status", edited.Status,
		"closed", closing,
		"candidates", len(holders),
		"interviews", len(interviews))

	return Result{
		Message: fmt.Sprintf("Edited Position: %s", edited),
		ID:      edited.PositionID,
	}, nil
}

func containsCandidate(cs []types.Candidate, id string) bool {
	return slices.ContainsFunc(cs, func(c types.Candidate) bool { return c.CandidateID == id })
}

// AddPosition stores a new position. An empty status defaults to OPEN.
func (m *Manager) AddPosition(title string, status types.PositionStatus) (Result, error) {
	p := types.Position{Title: title, Status: status}
	if p.Status == "" {
		p.Status = types.PositionOpen
	}

	err := m.store.RunInTransaction(func(tx *store.Tx) error {
		if tx.HasPosition(p) {
			return fmt.Errorf("%w: %s", types.ErrDuplicatePosition, p.Title)
		}
		if err := p.Validate(); err != nil {
			return err
		}
		var err error
		p.PositionID, err = tx.InsertPosition(p)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("position added", "position_id", p.PositionID, "status", p.Status)
	return Result{Message: fmt.Sprintf("New position added: %s", p), ID: p.PositionID}, nil
}

// DeletePosition removes the position at the 1-based index of the displayed
// position list. Candidates lose the position, and the position's interviews
// are deleted after their attendees are unlinked.
func (m *Manager) DeletePosition(index int) (Result, error) {
	target, err := m.store.PositionAt(index)
	if err != nil {
		return Result{}, err
	}

	var removedInterviews int
	err = m.store.RunInTransaction(func(tx *store.Tx) error {
		for _, i := range tx.InterviewsForPosition(target.PositionID) {
			if err := unlinkAll(tx, i); err != nil {
				return err
			}
			if err := tx.DeleteInterview(i.InterviewID); err != nil {
				return err
			}
			removedInterviews++
		}
		for _, c := range tx.CandidatesHoldingPosition(target.PositionID) {
			err := tx.UpdateCandidate(c.CandidateID, func(c *types.Candidate) {
				c.DeletePosition(target.PositionID)
			})
			if err != nil {
				return err
			}
		}
		return tx.DeletePosition(target.PositionID)
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("position deleted", "position_id", target.PositionID, "interviews_deleted", removedInterviews)
	return Result{Message: fmt.Sprintf("Deleted Position: %s", target), ID: target.PositionID}, nil
}
