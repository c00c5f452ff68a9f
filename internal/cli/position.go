package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hrmanager/internal/manager"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

type positionFind struct {
	keywords []string
	status   string
}

func (f *positionFind) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringSliceVar(&f.keywords, "find-title", nil, "show only positions whose title contains one of these words")
	pf.StringVar(&f.status, "find-status", "", "show only positions with this status")
}

func (f *positionFind) apply(m *manager.Manager) error {
	if len(f.keywords) == 0 && f.status == "" {
		return nil
	}
	q := manager.PositionQuery{Keywords: f.keywords}
	if f.status != "" {
		st, err := types.ParsePositionStatus(f.status)
		if err != nil {
			return err
		}
		q.Status = st
	}
	m.FindPositions(q)
	return nil
}

func newPositionCmd(a *app) *cobra.Command {
	find := &positionFind{}
	cmd := &cobra.Command{
		Use:     "position",
		Aliases: []string{"positions", "p"},
		Short:   "Manage positions",
	}
	find.register(cmd)

	cmd.AddCommand(newPositionAddCmd(a))
	cmd.AddCommand(newPositionEditCmd(a, find))
	cmd.AddCommand(newPositionDeleteCmd(a, find))
	cmd.AddCommand(newPositionListCmd(a, find))
	return cmd
}

func newPositionAddCmd(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := types.ParsePositionStatus(status)
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session) (manager.Result, error) {
				return s.manager.AddPosition(args[0], st)
			})
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", string(types.PositionOpen), "status (open, closed)")
	return cmd
}

func newPositionEditCmd(a *app, find *positionFind) *cobra.Command {
	var title, status string
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Rename, close or reopen the position at index",
		Long: "Edit changes exactly one of --title or --status. Closing a position\n" +
			"removes it from every candidate and drops those candidates from its\n" +
			"interviews.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			var patch manager.PositionPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("status") {
				st, err := types.ParsePositionStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			return a.mutate(cmd, func(s *session) (manager.Result, error) {
				if err := find.apply(s.manager); err != nil {
					return manager.Result{}, err
				}
				return s.manager.EditPosition(index, patch)
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&status, "status", "s", "", "new status (open, closed)")
	return cmd
}

func newPositionDeleteCmd(a *app, find *positionFind) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the position at index together with its interviews",
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
				return s.manager.DeletePosition(index)
			})
		},
	}
}

func newPositionListCmd(a *app, find *positionFind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(false, func(s *session) error {
				if err := find.apply(s.manager); err != nil {
					return err
				}
				var views []positionView
				for i, p := range s.store.FilteredPositions() {
					views = append(views, newPositionView(s.store, i+1, p))
				}
				return printList(a, cmd, "positions", views)
			})
		},
	}
}
