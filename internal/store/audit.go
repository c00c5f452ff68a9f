package store

import (
	"fmt"
)

// LinkIssue describes one broken or one-sided link found by CheckLinks.
type LinkIssue struct {
	EntityID string `json:"entity_id"`
	Problem  string `json:"problem"`
}

func (li LinkIssue) String() string {
	return li.EntityID + ": " + li.Problem
}

// CheckLinks audits referential integrity: every referenced ID exists, every
// candidate/interview link is recorded on both sides, and every attendee
// holds the interview's position. An empty result means the store is
// consistent.
func (s *Store) CheckLinks() []LinkIssue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := &s.state

	var issues []LinkIssue
	report := func(id, format string, args ...any) {
		issues = append(issues, LinkIssue{EntityID: id, Problem: fmt.Sprintf(format, args...)})
	}

	for _, cid := range st.candidateOrder {
		c := st.candidates[cid]
		for _, pid := range c.PositionIDs {
			if _, ok := st.positions[pid]; !ok {
				report(cid, "references missing position %s", pid)
			}
		}
		for _, iid := range c.InterviewIDs {
			i, ok := st.interviews[iid]
			if !ok {
				report(cid, "references missing interview %s", iid)
				continue
			}
			if !i.HasCandidate(cid) {
				report(cid, "interview %s does not list the candidate", iid)
			}
		}
	}

	for _, iid := range st.interviewOrder {
		i := st.interviews[iid]
		if _, ok := st.positions[i.PositionID]; !ok {
			report(iid, "references missing position %s", i.PositionID)
		}
		for _, cid := range i.CandidateIDs {
			c, ok := st.candidates[cid]
			if !ok {
				report(iid, "lists missing candidate %s", cid)
				continue
			}
			if !c.HasInterview(iid) {
				report(iid, "candidate %s does not list the interview", cid)
			}
			if !c.HasPosition(i.PositionID) {
				report(iid, "candidate %s does not hold position %s", cid, i.PositionID)
			}
		}
	}
	return issues
}
