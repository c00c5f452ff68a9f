package manager

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// TestRandomEdits_KeepLinksConsistent drives a seeded random mix of commands
// and checks after every step that the store stays consistent, and that a
// failed command changed nothing.
func TestRandomEdits_KeepLinksConsistent(t *testing.T) {
	titles := []string{"Software Engineer", "Data Analyst", "Designer", "Recruiter"}

	for seed := uint64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, seed*31))
			m := newTestManager(t)
			for _, title := range titles {
				_, err := m.AddPosition(title, "")
				require.NoError(t, err)
			}
			for i := range 6 {
				_, err := m.AddCandidate(CandidateInput{
					Name:      fmt.Sprintf("Candidate %d", i),
					Phone:     fmt.Sprintf("9000%04d", i),
					Email:     fmt.Sprintf("c%d@example.com", i),
					Address:   "somewhere",
					Positions: pick(rng, titles),
				})
				require.NoError(t, err)
			}
			for i, title := range titles {
				_, err := m.AddInterview(InterviewInput{
					Position: title,
					StartsAt: interviewStart.Add(time.Duration(i) * time.Hour),
					Duration: time.Hour,
				})
				require.NoError(t, err)
			}

			for step := range 200 {
				before := m.Store().ExportState()
				var err error
				switch rng.IntN(5) {
				case 0:
					_, err = m.EditCandidate(1+rng.IntN(6), CandidatePatch{Positions: ptr(pick(rng, titles))})
				case 1:
					_, err = m.EditCandidate(1+rng.IntN(6), CandidatePatch{Status: ptr(types.CandidateStatuses[rng.IntN(len(types.CandidateStatuses))])})
				case 2:
					status := types.PositionOpen
					if rng.IntN(3) == 0 {
						status = types.PositionClosed
					}
					_, err = m.EditPosition(1+rng.IntN(len(titles)), PositionPatch{Status: &status})
				case 3:
					_, err = m.AssignInterview(1+rng.IntN(len(titles)), []int{1 + rng.IntN(6), 1 + rng.IntN(6)})
				case 4:
					_, err = m.UnassignInterview(1+rng.IntN(len(titles)), []int{1 + rng.IntN(6)}, rng.IntN(4) == 0)
				}

				if err != nil {
					require.True(t, types.IsUserError(err), "step %d: unexpected error %v", step, err)
					require.Equal(t, before, m.Store().ExportState(), "step %d: failed command changed the store", step)
				}
				require.Empty(t, m.Store().CheckLinks(), "step %d", step)
				assertCanonicalPositions(t, m)
			}
		})
	}
}

// assertCanonicalPositions checks that every position a candidate holds is
// the one stored position with that identity, held at most once.
func assertCanonicalPositions(t *testing.T, m *Manager) {
	t.Helper()
	for _, c := range m.Store().Candidates() {
		seen := make(map[string]bool)
		for _, pid := range c.PositionIDs {
			assert.False(t, seen[pid], "candidate %s holds %s twice", c.Name, pid)
			seen[pid] = true
			p, ok := m.Store().Position(pid)
			if !assert.True(t, ok) {
				continue
			}
			ref, err := m.Store().PositionReference(p)
			assert.NoError(t, err)
			assert.Equal(t, pid, ref.PositionID)
		}
	}
}

// pick returns a random subset of titles in random case.
func pick(rng *rand.Rand, titles []string) []string {
	var out []string
	for _, t := range titles {
		if rng.IntN(2) == 0 {
			continue
		}
		if rng.IntN(2) == 0 {
			t = strings.ToUpper(t)
		}
		out = append(out, t)
	}
	return slices.Clip(out)
}
