package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hrmanager/internal/store"
	"github.com/mesh-intelligence/hrmanager/pkg/types"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check stored links for consistency",
		Long: "Doctor reports references to missing entities, interview links\n" +
			"recorded on one side only, and attendees who do not hold the\n" +
			"interview's position.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(false, func(s *session) error {
				issues := s.store.CheckLinks()
				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					if issues == nil {
						issues = []store.LinkIssue{}
					}
					if err := writeJSON(out, issues); err != nil {
						return err
					}
				} else {
					for _, issue := range issues {
						fmt.Fprintln(out, issue)
					}
				}
				if len(issues) > 0 {
					return fmt.Errorf("%w: %d link issues found", types.ErrInvalidData, len(issues))
				}
				if !a.flags.jsonMode {
					fmt.Fprintln(out, "No link issues found")
				}
				return nil
			})
		},
	}
}
