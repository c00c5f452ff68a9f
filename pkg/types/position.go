package types

import (
	"fmt"
	"strings"
	"time"
)

// PositionStatus tells whether a position accepts new candidates.
type PositionStatus string

// Position statuses.
const (
	PositionOpen   PositionStatus = "OPEN"
	PositionClosed PositionStatus = "CLOSED"
)

// ParsePositionStatus converts user input (any case) to a PositionStatus.
// Returns ErrInvalidStatus for unknown values.
func ParsePositionStatus(s string) (PositionStatus, error) {
	switch st := PositionStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case PositionOpen, PositionClosed:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q (valid: open, closed)", ErrInvalidStatus, s)
}

// Position is a job opening.
type Position struct {
	PositionID string         `json:"position_id" yaml:"position_id"`
	Title      string         `json:"title" yaml:"title" validate:"required,max=100"`
	Status     PositionStatus `json:"status" yaml:"status" validate:"required,oneof=OPEN CLOSED"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" yaml:"updated_at"`
}

// NormalizeTitle lower-cases a title and collapses runs of whitespace so
// "Software  Engineer" and "software engineer" compare equal.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// IdentityKey returns the normalized title.
func (p *Position) IdentityKey() string {
	return NormalizeTitle(p.Title)
}

// IsSamePosition reports whether other has the same title identity.
func (p *Position) IsSamePosition(other *Position) bool {
	if other == nil {
		return false
	}
	return p.IdentityKey() == other.IdentityKey()
}

// IsOpen reports whether the position accepts candidates.
func (p *Position) IsOpen() bool {
	return p.Status == PositionOpen
}

// String renders the one-line summary used in command results.
func (p Position) String() string {
	return fmt.Sprintf("%s; Status: %s", p.Title, p.Status)
}
