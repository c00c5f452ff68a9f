package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hrmanager/internal/manager"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

// candidateFind holds the --find-* flags that narrow the displayed candidate
// list before an index is resolved.
type candidateFind struct {
	keywords []string
	status   string
	tag      string
	position string
}

func (f *candidateFind) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringSliceVar(&f.keywords, "find-name", nil, "show only candidates whose name contains one of these words")
	pf.StringVar(&f.status, "find-status", "", "show only candidates with this status")
	pf.StringVar(&f.tag, "find-tag", "", "show only candidates with this tag")
	pf.StringVar(&f.position, "find-position", "", "show only candidates applying for this position")
}

// apply narrows the displayed list when any --find-* flag is set.
func (f *candidateFind) apply(m *manager.Manager) error {
	if len(f.keywords) == 0 && f.status == "" && f.tag == "" && f.position == "" {
		return nil
	}
	q := manager.CandidateQuery{Keywords: f.keywords, Tag: f.tag, Position: f.position}
	if f.status != "" {
		st, err := types.ParseCandidateStatus(f.status)
		if err != nil {
			return err
		}
		q.Status = st
	}
	m.FindCandidates(q)
	return nil
}

// candidateFields holds the field flags shared by add and edit.
type candidateFields struct {
	name      string
	phone     string
	email     string
	address   string
	remark    string
	status    string
	tags      []string
	positions []string
}

func (f *candidateFields) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.name, "name", "n", "", "candidate name")
	fs.StringVarP(&f.phone, "phone", "p", "", "phone number (digits only)")
	fs.StringVarP(&f.email, "email", "e", "", "email address")
	fs.StringVarP(&f.address, "address", "a", "", "postal address")
	fs.StringVarP(&f.status, "status", "s", "", "status (applied, scheduled, interviewed, rejected, accepted)")
	fs.StringSliceVarP(&f.tags, "tag", "t", nil, "tag; repeat or comma-separate, empty value clears")
	fs.StringSliceVar(&f.positions, "position", nil, "position title; repeat for several, empty value clears")
}

func newCandidateCmd(a *app) *cobra.Command {
	find := &candidateFind{}
	cmd := &cobra.Command{
		Use:     "candidate",
		Aliases: []string{"candidates", "c"},
		Short:   "Manage candidates",
	}
	find.register(cmd)

	cmd.AddCommand(newCandidateAddCmd(a))
	cmd.AddCommand(newCandidateEditCmd(a, find))
	cmd.AddCommand(newCandidateDeleteCmd(a, find))
	cmd.AddCommand(newCandidateListCmd(a, find))
	cmd.AddCommand(newCandidateShowCmd(a, find))
	return cmd
}

func newCandidateAddCmd(a *app) *cobra.Command {
	fields := &candidateFields{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a candidate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := manager.CandidateInput{
				Name:      fields.name,
				Phone:     fields.phone,
				Email:     fields.email,
				Address:   fields.address,
				Remark:    fields.remark,
				Tags:      fields.tags,
				Positions: fields.positions,
			}
			if fields.status != "" {
				st, err := types.ParseCandidateStatus(fields.status)
				if err != nil {
					return err
				}
				in.Status = st
			}
			return a.mutate(cmd, func(s *session) (manager.Result, error) {
				return s.manager.AddCandidate(in)
			})
		},
	}
	fields.register(cmd)
	cmd.Flags().StringVarP(&fields.remark, "remark", "r", "", "free-text remark")
	return cmd
}

func newCandidateEditCmd(a *app, find *candidateFind) *cobra.Command {
	fields := &candidateFields{}
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit the candidate at index in the displayed list",
		Long: "Edit replaces only the fields given. Changing --position drops the\n" +
			"candidate from interviews for positions it no longer applies for.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			patch, err := fields.patch(cmd)
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session) (manager.Result, error) {
				if err := find.apply(s.manager); err != nil {
					return manager.Result{}, err
				}
				return s.manager.EditCandidate(index, patch)
			})
		},
	}
	fields.register(cmd)
	return cmd
}

// patch builds a CandidatePatch from the flags the user actually set.
func (f *candidateFields) patch(cmd *cobra.Command) (manager.CandidatePatch, error) {
	var p manager.CandidatePatch
	fs := cmd.Flags()
	if fs.Changed("name") {
		p.Name = &f.name
	}
	if fs.Changed("phone") {
		p.Phone = &f.phone
	}
	if fs.Changed("email") {
		p.Email = &f.email
	}
	if fs.Changed("address") {
		p.Address = &f.address
	}
	if fs.Changed("status") {
		st, err := types.ParseCandidateStatus(f.status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	if fs.Changed("tag") {
		p.Tags = &f.tags
	}
	if fs.Changed("position") {
		positions := f.positions
		if positions == nil {
			positions = []string{}
		}
		p.Positions = &positions
	}
	return p, nil
}

func newCandidateDeleteCmd(a *app, find *candidateFind) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the candidate at index and remove it from its interviews",
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
				return s.manager.DeleteCandidate(index)
			})
		},
	}
}

func newCandidateListCmd(a *app, find *candidateFind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List candidates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(false, func(s *session) error {
				if err := find.apply(s.manager); err != nil {
					return err
				}
				var views []candidateView
				for i, c := range s.store.FilteredCandidates() {
					views = append(views, newCandidateView(s.store, i+1, c))
				}
				return printList(a, cmd, "candidates", views)
			})
		},
	}
}

func newCandidateShowCmd(a *app, find *candidateFind) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Display the candidate at index with full details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.withSession(false, func(s *session) error {
				if err := find.apply(s.manager); err != nil {
					return err
				}
				c, err := s.store.CandidateAt(index)
				if err != nil {
					return err
				}
				v := newCandidateView(s.store, index, c)
				out := cmd.OutOrStdout()
				switch {
				case a.flags.jsonMode:
					return writeJSON(out, v)
				case asYAML:
					return writeYAML(out, v)
				}
				writeCandidateDetails(out, v)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "output in YAML format")
	return cmd
}
