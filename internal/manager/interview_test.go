package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

func TestAddInterview(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f fixture)
		input   InterviewInput
		wantErr error
	}{
		{
			name:  "new slot",
			input: InterviewInput{Position: "software engineer", StartsAt: interviewStart.Add(time.Hour), Duration: 30 * time.Minute},
		},
		{
			name:    "same position and start",
			input:   InterviewInput{Position: "Software Engineer", StartsAt: interviewStart, Duration: time.Hour},
			wantErr: types.ErrDuplicateInterview,
		},
		{
			name:    "unknown position",
			input:   InterviewInput{Position: "Astronaut", StartsAt: interviewStart, Duration: time.Hour},
			wantErr: types.ErrPositionNotFound,
		},
		{
			name: "closed position",
			setup: func(t *testing.T, f fixture) {
				_, err := f.m.EditPosition(2, PositionPatch{Status: ptr(types.PositionClosed)})
				require.NoError(t, err)
			},
			input:   InterviewInput{Position: "Data Analyst", StartsAt: interviewStart.Add(72 * time.Hour), Duration: time.Hour},
			wantErr: types.ErrPositionClosed,
		},
		{
			name:    "zero duration",
			input:   InterviewInput{Position: "Data Analyst", StartsAt: interviewStart.Add(72 * time.Hour)},
			wantErr: types.ErrInvalidData,
		},
		{
			name:    "no start time",
			input:   InterviewInput{Position: "Data Analyst", Duration: time.Hour},
			wantErr: types.ErrInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := seed(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			before := f.m.Store().ExportState()

			res, err := f.m.AddInterview(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, f.m.Store().ExportState())
				return
			}
			require.NoError(t, err)
			i := f.interview(t, res.ID)
			assert.Equal(t, f.p1, i.PositionID)
			assert.Empty(t, i.CandidateIDs)
			assert.Equal(t, types.InterviewPending, i.Status)
			assert.Contains(t, res.Message, "Software Engineer")
		})
	}
}

func TestAssignInterview(t *testing.T) {
	f := seed(t)
	r, err := f.m.AddCandidate(CandidateInput{
		Name: "Carl Kurz", Phone: "95352563", Email: "carl@example.com", Address: "wall street",
		Positions: []string{"Data Analyst"},
	})
	require.NoError(t, err)
	carl := r.ID

	t.Run("candidate without the position", func(t *testing.T) {
		before := f.m.Store().ExportState()
		_, err := f.m.AssignInterview(1, []int{3})
		assert.ErrorIs(t, err, types.ErrNotEligible)
		assert.Equal(t, before, f.m.Store().ExportState())
	})

	t.Run("one candidate already attends", func(t *testing.T) {
		before := f.m.Store().ExportState()
		_, err := f.m.AssignInterview(2, []int{3, 2})
		assert.ErrorIs(t, err, types.ErrAlreadyAssigned)
		assert.Equal(t, before, f.m.Store().ExportState(), "no candidate is assigned when one fails")
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := f.m.AssignInterview(3, []int{1})
		assert.ErrorIs(t, err, types.ErrInvalidIndex)
		_, err = f.m.AssignInterview(1, nil)
		assert.ErrorIs(t, err, types.ErrInvalidIndex)
	})

	t.Run("applied becomes scheduled", func(t *testing.T) {
		require.Equal(t, types.StatusApplied, f.candidate(t, carl).Status)

		res, err := f.m.AssignInterview(2, []int{3, 3})
		require.NoError(t, err)
		assert.Contains(t, res.Message, "Carl Kurz")

		c := f.candidate(t, carl)
		assert.Equal(t, types.StatusScheduled, c.Status)
		assert.Equal(t, []string{f.y}, c.InterviewIDs)
		assert.Equal(t, []string{f.bob, carl}, f.interview(t, f.y).CandidateIDs)
		assert.Empty(t, f.m.Store().CheckLinks())
	})
}

func TestAssignInterview_KeepsLaterStatus(t *testing.T) {
	f := seed(t)
	_, err := f.m.UnassignInterview(1, []int{1}, false)
	require.NoError(t, err)
	_, err = f.m.EditCandidate(1, CandidatePatch{Status: ptr(types.StatusInterviewed)})
	require.NoError(t, err)

	_, err = f.m.AssignInterview(1, []int{1})
	require.NoError(t, err)

	assert.Equal(t, types.StatusInterviewed, f.candidate(t, f.alice).Status)
}

func TestUnassignInterview(t *testing.T) {
	t.Run("not an attendee", func(t *testing.T) {
		f := seed(t)
		before := f.m.Store().ExportState()

		_, err := f.m.UnassignInterview(2, []int{1}, false)

		assert.ErrorIs(t, err, types.ErrNotAssigned)
		assert.Equal(t, before, f.m.Store().ExportState())
	})

	t.Run("selected attendees", func(t *testing.T) {
		f := seed(t)

		_, err := f.m.UnassignInterview(1, []int{2}, false)
		require.NoError(t, err)

		assert.Equal(t, []string{f.alice}, f.interview(t, f.x).CandidateIDs)
		assert.Equal(t, []string{f.y}, f.candidate(t, f.bob).InterviewIDs)
		assert.Equal(t, []string{f.p1, f.p2}, f.candidate(t, f.bob).PositionIDs, "positions are untouched")
		assert.Empty(t, f.m.Store().CheckLinks())
	})

	t.Run("all attendees", func(t *testing.T) {
		f := seed(t)

		_, err := f.m.UnassignInterview(1, nil, true)
		require.NoError(t, err)

		assert.Empty(t, f.interview(t, f.x).CandidateIDs)
		assert.Empty(t, f.candidate(t, f.alice).InterviewIDs)
		assert.Equal(t, []string{f.y}, f.candidate(t, f.bob).InterviewIDs)
		assert.Empty(t, f.m.Store().CheckLinks())
	})
}

func TestDeleteInterview(t *testing.T) {
	f := seed(t)

	res, err := f.m.DeleteInterview(1)
	require.NoError(t, err)
	assert.Equal(t, f.x, res.ID)

	_, ok := f.m.Store().Interview(f.x)
	assert.False(t, ok)
	assert.Empty(t, f.candidate(t, f.alice).InterviewIDs)
	assert.Equal(t, []string{f.y}, f.candidate(t, f.bob).InterviewIDs)
	assert.Equal(t, []string{f.p1}, f.candidate(t, f.alice).PositionIDs)
	assert.Empty(t, f.m.Store().CheckLinks())

	_, err = f.m.DeleteInterview(2)
	assert.ErrorIs(t, err, types.ErrInvalidIndex)
}
