package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// CandidateStatus is a stage in the hiring pipeline.
type CandidateStatus string

// Candidate statuses. A candidate starts as APPLIED and moves forward as
// interviews are scheduled and held.
const (
	StatusApplied     CandidateStatus = "APPLIED"
	StatusScheduled   CandidateStatus = "SCHEDULED"
	StatusInterviewed CandidateStatus = "INTERVIEWED"
	StatusRejected    CandidateStatus = "REJECTED"
	StatusAccepted    CandidateStatus = "ACCEPTED"
)

// validCandidateStatuses is the set of recognized candidate status values.
var validCandidateStatuses = map[CandidateStatus]bool{
	StatusApplied:     true,
	StatusScheduled:   true,
	StatusInterviewed: true,
	StatusRejected:    true,
	StatusAccepted:    true,
}

// CandidateStatuses lists every status in pipeline order.
var CandidateStatuses = []CandidateStatus{
	StatusApplied,
	StatusScheduled,
	StatusInterviewed,
	StatusRejected,
	StatusAccepted,
}

// ParseCandidateStatus converts user input (any case) to a CandidateStatus.
// Returns ErrInvalidStatus for unknown values.
func ParseCandidateStatus(s string) (CandidateStatus, error) {
	st := CandidateStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !validCandidateStatuses[st] {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Candidate is a person tracked through the hiring pipeline.
// PositionIDs and InterviewIDs are sets of IDs of entities held by the
// store; the store keeps both sides of every interview link in step.
type Candidate struct {
	CandidateID  string          `json:"candidate_id" yaml:"candidate_id"`
	Name         string          `json:"name" yaml:"name" validate:"required,max=100"`
	Phone        string          `json:"phone" yaml:"phone" validate:"required,numeric,min=3,max=20"`
	Email        string          `json:"email" yaml:"email" validate:"required,email"`
	Address      string          `json:"address" yaml:"address" validate:"required"`
	Remark       string          `json:"remark,omitempty" yaml:"remark,omitempty"`
	Status       CandidateStatus `json:"status" yaml:"status" validate:"required,candidate_status"`
	Tags         []string        `json:"tags" yaml:"tags" validate:"dive,required,alphanum"`
	PositionIDs  []string        `json:"position_ids" yaml:"position_ids"`
	InterviewIDs []string        `json:"interview_ids" yaml:"interview_ids"`
	CreatedAt    time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" yaml:"updated_at"`
}

// IdentityKey returns the value used to decide whether two candidates are
// the same person: the email, trimmed and lower-cased.
func (c *Candidate) IdentityKey() string {
	return strings.ToLower(strings.TrimSpace(c.Email))
}

// IsSameCandidate reports whether other has the same identity as c, even if
// other fields differ.
func (c *Candidate) IsSameCandidate(other *Candidate) bool {
	if other == nil {
		return false
	}
	return c.IdentityKey() == other.IdentityKey()
}

// HasPosition reports whether the candidate holds the given position.
func (c *Candidate) HasPosition(positionID string) bool {
	return slices.Contains(c.PositionIDs, positionID)
}

// AddPosition links the position to the candidate. Idempotent.
func (c *Candidate) AddPosition(positionID string) {
	c.PositionIDs = addID(c.PositionIDs, positionID)
}

// DeletePosition unlinks the position. Idempotent.
func (c *Candidate) DeletePosition(positionID string) {
	c.PositionIDs = removeID(c.PositionIDs, positionID)
}

// HasInterview reports whether the candidate is scheduled in the interview.
func (c *Candidate) HasInterview(interviewID string) bool {
	return slices.Contains(c.InterviewIDs, interviewID)
}

// AddInterview records the candidate side of an interview link. Idempotent.
// The attendee side is updated separately by the store.
func (c *Candidate) AddInterview(interviewID string) {
	c.InterviewIDs = addID(c.InterviewIDs, interviewID)
}

// DeleteInterview removes the candidate side of an interview link.
func (c *Candidate) DeleteInterview(interviewID string) {
	c.InterviewIDs = removeID(c.InterviewIDs, interviewID)
}

// Clone returns a deep copy; the link and tag slices are not shared.
func (c Candidate) Clone() Candidate {
	c.Tags = slices.Clone(c.Tags)
	c.PositionIDs = slices.Clone(c.PositionIDs)
	c.InterviewIDs = slices.Clone(c.InterviewIDs)
	return c
}

// String renders the one-line summary used in command results.
func (c Candidate) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s; Phone: %s; Email: %s; Address: %s; Status: %s",
		c.Name, c.Phone, c.Email, c.Address, c.Status)
	if c.Remark != "" {
		fmt.Fprintf(&b, "; Remark: %s", c.Remark)
	}
	if len(c.Tags) > 0 {
		fmt.Fprintf(&b, "; Tags: [%s]", strings.Join(c.Tags, "] ["))
	}
	return b.String()
}

// addID appends id to set if absent.
func addID(set []string, id string) []string {
	if slices.Contains(set, id) {
		return set
	}
	return append(set, id)
}

// removeID returns set without id. The result never aliases set's backing
// array, so callers holding the old slice are unaffected.
func removeID(set []string, id string) []string {
	out := make([]string, 0, len(set))
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// NormalizeTags trims, drops empties and de-duplicates tags, keeping the
// first occurrence order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = addID(out, t)
	}
	return out
}
