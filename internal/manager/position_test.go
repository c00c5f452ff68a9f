package manager

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

func TestEditPosition_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		patch   PositionPatch
		wantErr error
	}{
		{
			name:    "both fields",
			index:   1,
			patch:   PositionPatch{Title: ptr("Backend Engineer"), Status: ptr(types.PositionClosed)},
			wantErr: types.ErrMultipleFieldsEdited,
		},
		{
			name:    "no fields",
			index:   1,
			patch:   PositionPatch{},
			wantErr: types.ErrNoFieldsEdited,
		},
		{
			name:    "index past end",
			index:   3,
			patch:   PositionPatch{Title: ptr("Backend Engineer")},
			wantErr: types.ErrInvalidIndex,
		},
		{
			name:    "title of another position",
			index:   1,
			patch:   PositionPatch{Title: ptr("  DATA analyst")},
			wantErr: types.ErrDuplicatePosition,
		},
		{
			name:    "blank title",
			index:   2,
			patch:   PositionPatch{Title: ptr("")},
			wantErr: types.ErrInvalidData,
		},
		{
			name:    "unknown status",
			index:   2,
			patch:   PositionPatch{Status: ptr(types.PositionStatus("PAUSED"))},
			wantErr: types.ErrInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := seed(t)
			before := f.m.Store().ExportState()

			_, err := f.m.EditPosition(tt.index, tt.patch)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, f.m.Store().ExportState(), "store must be unchanged after a failed edit")
		})
	}
}

// Title and status in one edit are rejected before anything
// else is looked at.
func TestEditPosition_TitleAndStatus(t *testing.T) {
	f := seed(t)

	_, err := f.m.EditPosition(99, PositionPatch{Title: ptr("X"), Status: ptr(types.PositionOpen)})

	assert.ErrorIs(t, err, types.ErrMultipleFieldsEdited)
}

func TestEditPosition_RenameKeepsLinks(t *testing.T) {
	f := seed(t)

	res, err := f.m.EditPosition(1, PositionPatch{Title: ptr("Backend Engineer")})
	require.NoError(t, err)
	assert.Equal(t, "Edited Position: Backend Engineer; Status: OPEN", res.Message)
	assert.Equal(t, f.p1, res.ID)

	assert.Equal(t, "Backend Engineer", f.position(t, f.p1).Title)
	assert.Equal(t, []string{f.p1}, f.candidate(t, f.alice).PositionIDs)
	assert.ElementsMatch(t, []string{f.p1, f.p2}, f.candidate(t, f.bob).PositionIDs)
	assert.Equal(t, f.p1, f.interview(t, f.x).PositionID)
	assert.ElementsMatch(t, []string{f.alice, f.bob}, f.interview(t, f.x).CandidateIDs)
	assert.Equal(t, f.p1, f.m.Store().Positions()[0].PositionID, "edited position keeps its slot")

	// The old title no longer resolves.
	_, err = f.m.AddCandidate(CandidateInput{
		Name: "Carl", Phone: "95352563", Email: "carl@example.com", Address: "wall street",
		Positions: []string{"Software Engineer"},
	})
	assert.ErrorIs(t, err, types.ErrPositionNotFound)
	assert.Empty(t, f.m.Store().CheckLinks())
}

func TestEditPosition_RecaseOwnTitle(t *testing.T) {
	f := seed(t)

	_, err := f.m.EditPosition(1, PositionPatch{Title: ptr("software ENGINEER")})
	require.NoError(t, err)

	assert.Equal(t, "software ENGINEER", f.position(t, f.p1).Title)
}

// Closing a position removes it from every candidate, and the
// candidates leave its interviews. The interviews stay on the position.
func TestEditPosition_CloseUnlinksHolders(t *testing.T) {
	f := seed(t)

	res, err := f.m.EditPosition(1, PositionPatch{Status: ptr(types.PositionClosed)})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Message, "Status: CLOSED"))

	p1 := f.position(t, f.p1)
	assert.Equal(t, types.PositionClosed, p1.Status)

	alice := f.candidate(t, f.alice)
	assert.Empty(t, alice.PositionIDs)
	assert.Empty(t, alice.InterviewIDs)

	bob := f.candidate(t, f.bob)
	assert.Equal(t, []string{f.p2}, bob.PositionIDs)
	assert.Equal(t, []string{f.y}, bob.InterviewIDs)

	x := f.interview(t, f.x)
	assert.Equal(t, f.p1, x.PositionID, "interview stays on the closed position")
	assert.Empty(t, x.CandidateIDs)
	assert.Equal(t, []string{f.bob}, f.interview(t, f.y).CandidateIDs)

	assert.Empty(t, f.m.Store().CheckLinks())
	assert.False(t, f.m.Store().IsPositionOpen(types.Position{Title: "software engineer"}))
}

func TestEditPosition_ReopenKeepsHolders(t *testing.T) {
	f := seed(t)

	_, err := f.m.EditPosition(2, PositionPatch{Status: ptr(types.PositionOpen)})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{f.p1, f.p2}, f.candidate(t, f.bob).PositionIDs)
	assert.Equal(t, []string{f.bob}, f.interview(t, f.y).CandidateIDs)
	assert.Empty(t, f.m.Store().CheckLinks())
}

func TestEditPosition_ClosedThenReopened(t *testing.T) {
	f := seed(t)

	_, err := f.m.EditPosition(2, PositionPatch{Status: ptr(types.PositionClosed)})
	require.NoError(t, err)
	_, err = f.m.EditCandidate(2, CandidatePatch{Positions: &[]string{"Data Analyst"}})
	require.ErrorIs(t, err, types.ErrPositionClosed)

	_, err = f.m.EditPosition(2, PositionPatch{Status: ptr(types.PositionOpen)})
	require.NoError(t, err)
	_, err = f.m.EditCandidate(2, CandidatePatch{Positions: &[]string{"Data Analyst"}})
	require.NoError(t, err)

	assert.Equal(t, []string{f.p2}, f.candidate(t, f.bob).PositionIDs)
	assert.Empty(t, f.m.Store().CheckLinks())
}

func TestAddPosition(t *testing.T) {
	m := newTestManager(t)

	r, err := m.AddPosition("Software Engineer", "")
	require.NoError(t, err)
	assert.Equal(t, "New position added: Software Engineer; Status: OPEN", r.Message)

	_, err = m.AddPosition("software   engineer", types.PositionClosed)
	assert.ErrorIs(t, err, types.ErrDuplicatePosition)

	_, err = m.AddPosition(strings.Repeat("x", 101), "")
	assert.ErrorIs(t, err, types.ErrInvalidData)

	assert.Len(t, m.Store().Positions(), 1)
}

func TestDeletePosition_CascadesToInterviews(t *testing.T) {
	f := seed(t)

	_, err := f.m.DeletePosition(1)
	require.NoError(t, err)

	_, ok := f.m.Store().Position(f.p1)
	assert.False(t, ok)
	_, ok = f.m.Store().Interview(f.x)
	assert.False(t, ok, "interviews of a deleted position are deleted")

	assert.Empty(t, f.candidate(t, f.alice).PositionIDs)
	assert.Empty(t, f.candidate(t, f.alice).InterviewIDs)
	assert.Equal(t, []string{f.p2}, f.candidate(t, f.bob).PositionIDs)
	assert.Equal(t, []string{f.y}, f.candidate(t, f.bob).InterviewIDs)
	assert.Empty(t, f.m.Store().CheckLinks())
}
