package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// InterviewStatus tracks whether an interview has taken place.
type InterviewStatus string

// Interview statuses.
const (
	InterviewPending   InterviewStatus = "PENDING"
	InterviewCompleted InterviewStatus = "COMPLETED"
)

// ParseInterviewStatus converts user input (any case) to an InterviewStatus.
func ParseInterviewStatus(s string) (InterviewStatus, error) {
	switch st := InterviewStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case InterviewPending, InterviewCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q (valid: pending, completed)", ErrInvalidStatus, s)
}

// Interview is a scheduled session for exactly one position. CandidateIDs is
// the attendee set; every attendee is expected to hold PositionID.
type Interview struct {
	InterviewID  string          `json:"interview_id" yaml:"interview_id"`
	PositionID   string          `json:"position_id" yaml:"position_id" validate:"required"`
	CandidateIDs []string        `json:"candidate_ids" yaml:"candidate_ids"`
	StartsAt     time.Time       `json:"starts_at" yaml:"starts_at" validate:"required"`
	Duration     time.Duration   `json:"duration" yaml:"duration" validate:"gt=0"`
	Status       InterviewStatus `json:"status" yaml:"status" validate:"required,oneof=PENDING COMPLETED"`
	CreatedAt    time.Time       `json:"created_at" yaml:"created_at"`
}

// HasCandidate reports whether the candidate attends the interview.
func (i *Interview) HasCandidate(candidateID string) bool {
	return slices.Contains(i.CandidateIDs, candidateID)
}

// AddCandidate adds an attendee. Idempotent.
func (i *Interview) AddCandidate(candidateID string) {
	i.CandidateIDs = addID(i.CandidateIDs, candidateID)
}

// DeleteCandidate removes an attendee. Idempotent.
func (i *Interview) DeleteCandidate(candidateID string) {
	i.CandidateIDs = removeID(i.CandidateIDs, candidateID)
}

// EndsAt returns the scheduled end time.
func (i *Interview) EndsAt() time.Time {
	return i.StartsAt.Add(i.Duration)
}

// IsSameInterview reports whether other is scheduled for the same position
// at the same start time.
func (i *Interview) IsSameInterview(other *Interview) bool {
	if other == nil {
		return false
	}
	return i.PositionID == other.PositionID && i.StartsAt.Equal(other.StartsAt)
}

// Clone returns a deep copy of the interview.
func (i Interview) Clone() Interview {
	i.CandidateIDs = slices.Clone(i.CandidateIDs)
	return i
}

// String renders a summary without resolving the position title.
func (i Interview) String() string {
	return fmt.Sprintf("%s (%s); Candidates: %d; Status: %s",
		i.StartsAt.Format("2006-01-02 15:04"), i.Duration, len(i.CandidateIDs), i.Status)
}
