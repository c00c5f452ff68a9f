package manager

import (
	"fmt"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// CandidateInput describes a new candidate. Positions are titles of stored,
// open positions. An empty Status defaults to APPLIED.
type CandidateInput struct {
	Name      string
	Phone     string
	Email     string
	Address   string
	Remark    string
	Status    types.CandidateStatus
	Tags      []string
	Positions []string
}

// membershipOp is one attendee-side change planned by a cascade.
type membershipOp struct {
	interviewID string
	candidateID string
	add         bool
}

func applyMembership(tx *store.Tx, ops []membershipOp) error {
	for _, op := range ops {
		var err error
		if op.add {
			err = tx.AddCandidateToInterview(op.interviewID, op.candidateID)
		} else {
			err = tx.RemoveCandidateFromInterview(op.interviewID, op.candidateID)
		}
		if err != nil {
			return fmt.Errorf("interview %s: %w", op.interviewID, err)
		}
	}
	return nil
}

// EditCandidate edits the candidate at the 1-based index of the displayed
// candidate list.
//
// When the patch replaces the position set, the candidate stays in only
// those interviews whose position it still holds; the others are dropped on
// both sides. Otherwise every interview keeps the candidate.
func (m *Manager) EditCandidate(index int, patch CandidatePatch) (Result, error) {
	if !patch.IsAnyFieldEdited() {
		return Result{}, types.ErrNoFieldsEdited
	}
	target, err := m.store.CandidateAt(index)
	if err != nil {
		return Result{}, err
	}

	var edited types.Candidate
	var ops []membershipOp
	var dropped int
	err = m.store.RunInTransaction(func(tx *store.Tx) error {
		original, ok := tx.Candidate(target.CandidateID)
		if !ok {
			return fmt.Errorf("%w: candidate %s", types.ErrNotFound, target.CandidateID)
		}
		edited = patch.apply(original)

		if !original.IsSameCandidate(&edited) && tx.HasCandidate(edited) {
			return fmt.Errorf("%w: candidate with email [ %s ] already exists", types.ErrDuplicateCandidate, edited.Email)
		}

		if patch.Status != nil && *patch.Status == types.StatusApplied && len(original.InterviewIDs) > 0 {
			return fmt.Errorf("%w: unable to change status of %s to %s; candidate already has scheduled interview(s)",
				types.ErrIllegalStatusTransition, original.Name, types.StatusApplied)
		}

		supplied, err := positionsFromIDs(tx.View, original.PositionIDs)
		if patch.IsPositionEdited() {
			supplied, err = positionsFromTitles(*patch.Positions), nil
		}
		if err != nil {
			return err
		}
		canonical, err := resolvePositions(tx.View, supplied)
		if err != nil {
			return err
		}
		edited.PositionIDs = canonical
		edited.UpdatedAt = tx.Now()

		if err := edited.Validate(); err != nil {
			return err
		}

		// Plan the cascade from reads only, then apply it.
		for _, iid := range original.InterviewIDs {
			interview, ok := tx.Interview(iid)
			if !ok {
				edited.DeleteInterview(iid)
				dropped++
				continue
			}
			ops = append(ops, membershipOp{interviewID: iid, candidateID: original.CandidateID})
			if patch.IsPositionEdited() && !edited.HasPosition(interview.PositionID) {
				edited.DeleteInterview(iid)
				dropped++
				continue
			}
			ops = append(ops, membershipOp{interviewID: iid, candidateID: edited.CandidateID, add: true})
		}

		if err := applyMembership(tx, ops); err != nil {
			return err
		}
		return tx.ReplaceCandidate(original, edited)
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("candidate edited",
		"candidate_id", edited.CandidateID,
		"positions_edited", patch.IsPositionEdited(),
		"interviews_dropped", dropped)
	m.logger.Debug("candidate cascade applied", "candidate_id", edited.CandidateID, "membership_ops", len(ops))

	return Result{
		Message: fmt.Sprintf("Edited Candidate: %s", edited),
		ID:      edited.CandidateID,
	}, nil
}

// AddCandidate stores a new candidate.
func (m *Manager) AddCandidate(in CandidateInput) (Result, error) {
	c := types.Candidate{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
		Remark:  in.Remark,
		Status:  in.Status,
		Tags:    types.NormalizeTags(in.Tags),
	}
	if c.Status == "" {
		c.Status = types.StatusApplied
	}

	err := m.store.RunInTransaction(func(tx *store.Tx) error {
		if tx.HasCandidate(c) {
			return fmt.Errorf("%w: candidate with email [ %s ] already exists", types.ErrDuplicateCandidate, c.Email)
		}
		ids, err := resolvePositions(tx.View, positionsFromTitles(in.Positions))
		if err != nil {
			return err
		}
		c.PositionIDs = ids
		if err := c.Validate(); err != nil {
			return err
		}
		c.CandidateID, err = tx.InsertCandidate(c)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("candidate added", "candidate_id", c.CandidateID, "positions", len(c.PositionIDs))
	return Result{Message: fmt.Sprintf("New candidate added: %s", c), ID: c.CandidateID}, nil
}

// DeleteCandidate removes the candidate at the 1-based index of the displayed
// candidate list and takes it out of every interview it attends.
func (m *Manager) DeleteCandidate(index int) (Result, error) {
	target, err := m.store.CandidateAt(index)
	if err != nil {
		return Result{}, err
	}

	err = m.store.RunInTransaction(func(tx *store.Tx) error {
		for _, iid := range target.InterviewIDs {
			if _, ok := tx.Interview(iid); !ok {
				continue
			}
			if err := tx.RemoveCandidateFromInterview(iid, target.CandidateID); err != nil {
				return err
			}
		}
		return tx.DeleteCandidate(target.CandidateID)
	})
	if err != nil {
		return Result{}, err
	}

	m.logger.Info("candidate deleted", "candidate_id", target.CandidateID, "interviews", len(target.InterviewIDs))
	return Result{Message: fmt.Sprintf("Deleted Candidate: %s", target), ID: target.CandidateID}, nil
}
