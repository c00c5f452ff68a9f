package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hrmanager/internal/manager"
	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// candidateView is a displayed candidate with its links resolved to titles.
type candidateView struct {
	Index           int `json:"index" yaml:"index"`
	types.Candidate `yaml:",inline"`
	Positions       []string `json:"positions" yaml:"positions"`
	Interviews      []string `json:"interviews" yaml:"interviews"`
}

type positionView struct {
	Index          int `json:"index" yaml:"index"`
	types.Position `yaml:",inline"`
	Holders        int `json:"holders" yaml:"holders"`
}

type interviewView struct {
	Index           int `json:"index" yaml:"index"`
	types.Interview `yaml:",inline"`
	Position        string   `json:"position" yaml:"position"`
	Attendees       []string `json:"attendees" yaml:"attendees"`
}

func newCandidateView(s *store.Store, index int, c types.Candidate) candidateView {
	v := candidateView{Index: index, Candidate: c, Positions: []string{}, Interviews: []string{}}
	for _, pid := range c.PositionIDs {
		v.Positions = append(v.Positions, positionTitle(s, pid))
	}
	for _, iid := range c.InterviewIDs {
		if i, ok := s.Interview(iid); ok {
			v.Interviews = append(v.Interviews, positionTitle(s, i.PositionID)+" "+i.StartsAt.Format("2006-01-02 15:04"))
		}
	}
	return v
}

func newPositionView(s *store.Store, index int, p types.Position) positionView {
	var holders int
	_ = s.Read(func(v store.View) error {
		holders = len(v.CandidatesHoldingPosition(p.PositionID))
		return nil
	})
	return positionView{Index: index, Position: p, Holders: holders}
}

func newInterviewView(s *store.Store, index int, i types.Interview) interviewView {
	v := interviewView{Index: index, Interview: i, Position: positionTitle(s, i.PositionID), Attendees: []string{}}
	for _, cid := range i.CandidateIDs {
		if c, ok := s.Candidate(cid); ok {
			v.Attendees = append(v.Attendees, c.Name)
		}
	}
	return v
}

// positionTitle returns the stored title, or the ID for a dangling link.
func positionTitle(s *store.Store, id string) string {
	if p, ok := s.Position(id); ok {
		return p.Title
	}
	return id
}

func (v candidateView) String() string {
	return fmt.Sprintf("%d. %s; Positions: [%s]; Interviews: %d",
		v.Index, v.Candidate, strings.Join(v.Positions, ", "), len(v.Interviews))
}

func (v positionView) String() string {
	return fmt.Sprintf("%d. %s; Candidates: %d", v.Index, v.Position, v.Holders)
}

func (v interviewView) String() string {
	s := fmt.Sprintf("%d. %s %s", v.Index, v.Position, v.Interview)
	if len(v.Attendees) > 0 {
		s += "; Attendees: " + strings.Join(v.Attendees, ", ")
	}
	return s
}

// printResult writes a command result as its message or as JSON.
func (a *app) printResult(cmd *cobra.Command, res manager.Result) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

// printList writes one line per view, a placeholder when views is empty,
// or the views as a JSON array.
func printList[T fmt.Stringer](a *app, cmd *cobra.Command, kind string, views []T) error {
	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		if views == nil {
			views = []T{}
		}
		return writeJSON(out, views)
	}
	if len(views) == 0 {
		fmt.Fprintf(out, "No %s to display\n", kind)
		return nil
	}
	for _, v := range views {
		fmt.Fprintln(out, v)
	}
	fmt.Fprintf(out, "%d %s listed\n", len(views), kind)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysErrorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return sysErrorf("marshal YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// writeCandidateDetails renders the human-readable candidate card.
func writeCandidateDetails(w io.Writer, v candidateView) {
	c := v.Candidate
	fmt.Fprintf(w, "Name:       %s\n", c.Name)
	fmt.Fprintf(w, "Phone:      %s\n", c.Phone)
	fmt.Fprintf(w, "Email:      %s\n", c.Email)
	fmt.Fprintf(w, "Address:    %s\n", c.Address)
	if c.Remark != "" {
		fmt.Fprintf(w, "Remark:     %s\n", c.Remark)
	}
	fmt.Fprintf(w, "Status:     %s\n", c.Status)
	fmt.Fprintf(w, "Tags:       %s\n", strings.Join(c.Tags, ", "))
	fmt.Fprintf(w, "Positions:  %s\n", strings.Join(v.Positions, ", "))
	fmt.Fprintf(w, "Created:    %s\n", c.CreatedAt.Format(timeLayout))
	fmt.Fprintf(w, "Updated:    %s\n", c.UpdatedAt.Format(timeLayout))
	if len(v.Interviews) > 0 {
		fmt.Fprintln(w, "\nInterviews:")
		for _, i := range v.Interviews {
			fmt.Fprintf(w, "  %s\n", i)
		}
	}
}
