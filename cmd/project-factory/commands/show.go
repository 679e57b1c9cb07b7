package commands

import (
	"github.com/spf13/cobra"

	"github.com/Gerhatlevi/project-factory/cmd/project-factory/handlers"
)

// Show returns the command that prints a configuration summary.
//
// Flags:
//
//	--config, -c: Path to the configuration file (default "project.yaml")
//	--yaml: Print the canonical YAML instead of the summary
func Show() *cobra.Command {
	var (
		configPath string
		asYAML     bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a summary of a configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Show(cmd.Context(), configPath, asYAML)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "project.yaml", "Configuration file path")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print canonical YAML instead of the summary")

	return cmd
}
