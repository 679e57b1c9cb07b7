package commands

import (
	"github.com/spf13/cobra"

	"github.com/Gerhatlevi/project-factory/cmd/project-factory/handlers"
)

// Validate returns the command that checks a configuration file against
// the save rules.
//
// Flags:
//
//	--config, -c: Path to the configuration file (default "project.yaml")
func Validate() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration against the save rules",
		Long: `Check a configuration file against the save rules.

The file is loaded through the same validation as interactive editing,
then every save rule is evaluated. All failures are listed, not just
the first, so the full worklist is visible at once. The command exits
non-zero when the configuration is not save-eligible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Validate(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "project.yaml", "Configuration file path")

	return cmd
}
