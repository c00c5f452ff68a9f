package manager

import (
	"slices"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// CandidatePatch holds the fields to change on a candidate. A nil field is
// left as it is. Remark is not editable.
type CandidatePatch struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Status  *types.CandidateStatus
	Tags    *[]string
	// Positions are position titles; each must match a stored, open
	// position. A non-nil empty slice clears the candidate's positions.
	Positions *[]string
}

// IsAnyFieldEdited reports whether the patch changes anything.
func (p CandidatePatch) IsAnyFieldEdited() bool {
	return p.Name != nil || p.Phone != nil || p.Email != nil || p.Address != nil ||
		p.Status != nil || p.Tags != nil || p.Positions != nil
}

// IsPositionEdited reports whether the patch replaces the position set.
func (p CandidatePatch) IsPositionEdited() bool {
	return p.Positions != nil
}

// apply builds the full replacement for original. Interview links are
// deep-copied so later cascade changes never touch original.
func (p CandidatePatch) apply(original types.Candidate) types.Candidate {
	edited := original.Clone()
	if p.Name != nil {
		edited.Name = *p.Name
	}
	if p.Phone != nil {
		edited.Phone = *p.Phone
	}
	if p.Email != nil {
		edited.Email = *p.Email
	}
	if p.Address != nil {
		edited.Address = *p.Address
	}
	if p.Status != nil {
		edited.Status = *p.Status
	}
	if p.Tags != nil {
		edited.Tags = types.NormalizeTags(*p.Tags)
	}
	edited.Remark = original.Remark
	edited.InterviewIDs = slices.Clone(original.InterviewIDs)
	return edited
}

// PositionPatch holds the fields to change on a position. Exactly one field
// may be set per edit.
type PositionPatch struct {
	Title  *string
	Status *types.PositionStatus
}

// IsAnyFieldEdited reports whether the patch changes anything.
func (p PositionPatch) IsAnyFieldEdited() bool {
	return p.Title != nil || p.Status != nil
}

// IsBothFieldsEdited reports whether the patch sets title and status.
func (p PositionPatch) IsBothFieldsEdited() bool {
	return p.Title != nil && p.Status != nil
}

// IsClosing reports whether the patch closes the position.
func (p PositionPatch) IsClosing() bool {
	return p.Status != nil && *p.Status == types.PositionClosed
}

func (p PositionPatch) apply(original types.Position) types.Position {
	edited := original
	if p.Title != nil {
		edited.Title = *p.Title
	}
	if p.Status != nil {
		edited.Status = *p.Status
	}
	return edited
}
