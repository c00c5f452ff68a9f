package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidateStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    CandidateStatus
		wantErr bool
	}{
		{"applied", StatusApplied, false},
		{" Scheduled ", StatusScheduled, false},
		{"INTERVIEWED", StatusInterviewed, false},
		{"rejected", StatusRejected, false},
		{"accepted", StatusAccepted, false},
		{"hired", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCandidateStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidateIdentity(t *testing.T) {
	a := &Candidate{Name: "Alice", Email: "Alice@Example.com "}
	b := &Candidate{Name: "Someone Else", Email: "alice@example.com"}
	c := &Candidate{Name: "Alice", Email: "alice@example.org"}

	assert.Equal(t, "alice@example.com", a.IdentityKey())
	assert.True(t, a.IsSameCandidate(b), "identity is the email only")
	assert.False(t, a.IsSameCandidate(c))
	assert.False(t, a.IsSameCandidate(nil))
}

func TestCandidateLinkSets(t *testing.T) {
	c := &Candidate{}

	c.AddPosition("p1")
	c.AddPosition("p1")
	c.AddPosition("p2")
	assert.Equal(t, []string{"p1", "p2"}, c.PositionIDs)
	assert.True(t, c.HasPosition("p2"))

	c.DeletePosition("p1")
	c.DeletePosition("missing")
	assert.Equal(t, []string{"p2"}, c.PositionIDs)

	c.AddInterview("i1")
	held := c.InterviewIDs
	c.DeleteInterview("i1")
	assert.False(t, c.HasInterview("i1"))
	assert.Equal(t, []string{"i1"}, held, "delete must not alias the previous slice")
}

func TestCandidateClone(t *testing.T) {
	orig := Candidate{
		Name:         "Alice",
		Tags:         []string{"friends"},
		PositionIDs:  []string{"p1"},
		InterviewIDs: []string{"i1"},
	}

	cp := orig.Clone()
	cp.Tags[0] = "x"
	cp.PositionIDs[0] = "x"
	cp.InterviewIDs[0] = "x"

	assert.Equal(t, []string{"friends"}, orig.Tags)
	assert.Equal(t, []string{"p1"}, orig.PositionIDs)
	assert.Equal(t, []string{"i1"}, orig.InterviewIDs)
}

func TestCandidateString(t *testing.T) {
	c := Candidate{
		Name: "Alice Pauline", Phone: "94351253", Email: "alice@example.com",
		Address: "123, Jurong West Ave 6", Status: StatusApplied,
	}
	assert.Equal(t, "Alice Pauline; Phone: 94351253; Email: alice@example.com; Address: 123, Jurong West Ave 6; Status: APPLIED", c.String())

	c.Remark = "referral"
	c.Tags = []string{"friends", "owesMoney"}
	assert.Equal(t, "Alice Pauline; Phone: 94351253; Email: alice@example.com; Address: 123, Jurong West Ave 6; Status: APPLIED; Remark: referral; Tags: [friends] [owesMoney]", c.String())
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeTags([]string{" a", "b", "a", "", "  "}))
	assert.Empty(t, NormalizeTags(nil))
}
