package manager

import (
	"slices"
	"strings"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// CandidateQuery narrows the displayed candidate list. Empty fields match
// everything; all set fields must match.
type CandidateQuery struct {
	// Keywords match whole words of the name, case-insensitively; any one
	// keyword is enough.
	Keywords []string
	Status   types.CandidateStatus
	Tag      string
	// Position is a title; matching is by position identity.
	Position string
}

// PositionQuery narrows the displayed position list.
type PositionQuery struct {
	Keywords []string
	Status   types.PositionStatus
}

// FindCandidates applies q to the displayed candidate list and returns the
// new list. Later index-based commands resolve against it.
func (m *Manager) FindCandidates(q CandidateQuery) []types.Candidate {
	positionID := m.positionFilterID(q.Position)
	m.store.SetCandidateFilter(func(c types.Candidate) bool {
		if len(q.Keywords) > 0 && !matchesKeyword(c.Name, q.Keywords) {
			return false
		}
		if q.Status != "" && c.Status != q.Status {
			return false
		}
		if q.Tag != "" && !slices.ContainsFunc(c.Tags, func(t string) bool { return strings.EqualFold(t, q.Tag) }) {
			return false
		}
		if positionID != "" && !c.HasPosition(positionID) {
			return false
		}
		return true
	})
	return m.store.FilteredCandidates()
}

// FindPositions applies q to the displayed position list.
func (m *Manager) FindPositions(q PositionQuery) []types.Position {
	m.store.SetPositionFilter(func(p types.Position) bool {
		if len(q.Keywords) > 0 && !matchesKeyword(p.Title, q.Keywords) {
			return false
		}
		if q.Status != "" && p.Status != q.Status {
			return false
		}
		return true
	})
	return m.store.FilteredPositions()
}

// InterviewQuery narrows the displayed interview list.
type InterviewQuery struct {
	// Position is a title; matching is by position identity.
	Position string
	Status   types.InterviewStatus
}

// FindInterviews applies q to the displayed interview list.
func (m *Manager) FindInterviews(q InterviewQuery) []types.Interview {
	positionID := m.positionFilterID(q.Position)
	m.store.SetInterviewFilter(func(i types.Interview) bool {
		if positionID != "" && i.PositionID != positionID {
			return false
		}
		if q.Status != "" && i.Status != q.Status {
			return false
		}
		return true
	})
	return m.store.FilteredInterviews()
}

// ClearFilters shows every entity again.
func (m *Manager) ClearFilters() {
	m.store.SetCandidateFilter(nil)
	m.store.SetPositionFilter(nil)
	m.store.SetInterviewFilter(nil)
}

// positionFilterID maps a title to the ID to filter on. An unknown title
// yields an ID that matches nothing; an empty title yields "".
func (m *Manager) positionFilterID(title string) string {
	if title == "" {
		return ""
	}
	ref, err := m.store.PositionReference(types.Position{Title: title})
	if err != nil {
		return "\x00"
	}
	return ref.PositionID
}

func matchesKeyword(text string, keywords []string) bool {
	words := strings.Fields(strings.ToLower(text))
	for _, k := range keywords {
		if slices.Contains(words, strings.ToLower(strings.TrimSpace(k))) {
			return true
		}
	}
	return false
}
