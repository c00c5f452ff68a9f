package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize hrm storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The config directory and config.yaml already exist; setup creates them.
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			dataDir := backend.DataDir()
			if err := backend.Detach(); err != nil {
				return sysErrorf("finalize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(out, map[string]string{"config_dir": a.configDir, "data_dir": dataDir})
			}
			fmt.Fprintln(out, "HR Manager initialized successfully")
			fmt.Fprintln(out, "  config:", a.configDir)
			fmt.Fprintln(out, "  data:  ", dataDir)
			return nil
		},
	}
}
