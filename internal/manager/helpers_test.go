package manager

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return New(store.New(), discardLogger())
}

var interviewStart = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

// fixture is a small pipeline:
//
//	positions:  [1] Software Engineer (p1)  [2] Data Analyst (p2)
//	candidates: [1] Alice {p1}              [2] Bob {p1, p2}
//	interviews: [1] x for p1: Alice, Bob    [2] y for p2: Bob
type fixture struct {
	m          *Manager
	p1, p2     string
	alice, bob string
	x, y       string
}

func seed(t *testing.T) fixture {
	t.Helper()
	m := newTestManager(t)
	var f fixture
	f.m = m

	r, err := m.AddPosition("Software Engineer", "")
	require.NoError(t, err)
	f.p1 = r.ID
	r, err = m.AddPosition("Data Analyst", "")
	require.NoError(t, err)
	f.p2 = r.ID

	r, err = m.AddCandidate(CandidateInput{
		Name:      "Alice Pauline",
		Phone:     "94351253",
		Email:     "alice@example.com",
		Address:   "123, Jurong West Ave 6, #08-111",
		Remark:    "strong referral",
		Tags:      []string{"friends"},
		Positions: []string{"Software Engineer"},
	})
	require.NoError(t, err)
	f.alice = r.ID
	r, err = m.AddCandidate(CandidateInput{
		Name:      "Bob Choo",
		Phone:     "98765432",
		Email:     "bob@example.com",
		Address:   "311, Clementi Ave 2, #02-25",
		Positions: []string{"Software Engineer", "Data Analyst"},
	})
	require.NoError(t, err)
	f.bob = r.ID

	r, err = m.AddInterview(InterviewInput{Position: "Software Engineer", StartsAt: interviewStart, Duration: time.Hour})
	require.NoError(t, err)
	f.x = r.ID
	r, err = m.AddInterview(InterviewInput{Position: "Data Analyst", StartsAt: interviewStart.Add(24 * time.Hour), Duration: time.Hour})
	require.NoError(t, err)
	f.y = r.ID

	_, err = m.AssignInterview(1, []int{1, 2})
	require.NoError(t, err)
	_, err = m.AssignInterview(2, []int{2})
	require.NoError(t, err)

	require.Empty(t, m.Store().CheckLinks())
	return f
}

func (f fixture) candidate(t *testing.T, id string) types.Candidate {
	t.Helper()
	c, ok := f.m.Store().Candidate(id)
	require.True(t, ok, "candidate %s not stored", id)
	return c
}

// interview returns a copy of the stored interview.
func (f fixture) interview(t *testing.T, id string) *types.Interview {
	t.Helper()
	i, ok := f.m.Store().Interview(id)
	require.True(t, ok, "interview %s not stored", id)
	return &i
}

func (f fixture) position(t *testing.T, id string) types.Position {
	t.Helper()
	p, ok := f.m.Store().Position(id)
	require.True(t, ok, "position %s not stored", id)
	return p
}
