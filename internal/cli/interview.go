package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hrmanager/internal/manager"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// Accepted --at layouts, tried in order. Layouts without a zone are read in
// local time.
var startLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

func parseStart(s string) (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: start time %q (use YYYY-MM-DD HH:MM)", types.ErrInvalidData, s)
}

type interviewFind struct {
	position string
	status   string
}

func (f *interviewFind) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.position, "find-position", "", "show only interviews for this position")
	pf.StringVar(&f.status, "find-status", "", "show only interviews with this status (pending, completed)")
}

func (f *interviewFind) apply(m *manager.Manager) error {
	if f.position == "" && f.status == "" {
		return nil
	}
	q := manager.InterviewQuery{Position: f.position}
	if f.status != "" {
		st, err := types.ParseInterviewStatus(f.status)
		if err != nil {
			return err
		}
		q.Status = st
	}
	m.FindInterviews(q)
	return nil
}

func newInterviewCmd(a *app) *cobra.Command {
	find := &interviewFind{}
	cmd := &cobra.Command{
		Use:     "interview",
		Aliases: []string{"interviews", "i"},
		Short:   "Schedule interviews and assign candidates",
	}
	find.register(cmd)

	cmd.AddCommand(newInterviewAddCmd(a))
	cmd.AddCommand(newInterviewAssignCmd(a, find))
	cmd.AddCommand(newInterviewUnassignCmd(a, find))
	cmd.AddCommand(newInterviewDeleteCmd(a, find))
	cmd.AddCommand(newInterviewListCmd(a, find))
	return cmd
}

func newInterviewAddCmd(a *app) *cobra.Command {
	var (
		position string
		at       string
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule an interview for an open position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseStart(at)
			if err != nil {
				return err
			}
			in := manager.InterviewInput{Position: position, StartsAt: start, Duration: duration}
			return a.mutate(cmd, func(s *session) (manager.Result, error) {
				return s.manager.AddInterview(in)
			})
		},
	}
	cmd.Flags().StringVar(&position, "position", "", "position title")
	cmd.Flags().StringVar(&at, "at", "", "start time, YYYY-MM-DD HH:MM")
	cmd.Flags().DurationVar(&duration, "duration", time.Hour, "interview length")
	_ = cmd.MarkFlagRequired("position")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newInterviewAssignCmd(a *app, find *interviewFind) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <interview-index> <candidate-index>...",
		Short: "Add candidates to an interview",
		Long: "Assign adds the candidates at the given indexes of the candidate list\n" +
			"to the interview. Each must apply for the interview's position.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			indexes, err := parseIndexes(args)
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session) (manager.Result, error) {
				if err := find.apply(s.manager); err != nil {
					return manager.Result{}, err
				}
				return s.manager.AssignInterview(indexes[0], indexes[1:])
			})
		},
	}
}

func newInterviewUnassignCmd(a *app, find *interviewFind) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "unassign <interview-index> [candidate-index...]",
		Short: "Remove candidates from an interview",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indexes, err := parseIndexes(args)
			if err != nil {
				return err
			}
			if all && len(indexes) > 1 {
				return fmt.Errorf("%w: --all takes no candidate indexes", types.ErrInvalidIndex)
			}
			return a.mutate(cmd, func(s *session) (manager.Result, error) {
				if err := find.apply(s.manager); err != nil {
					return manager.Result{}, err
				}
				return s.manager.UnassignInterview(indexes[0], indexes[1:], all)
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "remove every attendee")
	return cmd
}

func newInterviewDeleteCmd(a *app, find *interviewFind) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the interview at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session) (manager.Result, error) {
				if err := find.apply(s.manager); err != nil {
					return manager.Result{}, err
				}
				return s.manager.DeleteInterview(index)
			})
		},
	}
}

func newInterviewListCmd(a *app, find *interviewFind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List interviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(false, func(s *session) error {
				if err := find.apply(s.manager); err != nil {
					return err
				}
				var views []interviewView
				for i, iv := range s.store.FilteredInterviews() {
					views = append(views, newInterviewView(s.store, i+1, iv))
				}
				return printList(a, cmd, "interviews", views)
			})
		},
	}
}
