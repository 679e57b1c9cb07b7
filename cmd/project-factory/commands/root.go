// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/Gerhatlevi/project-factory/internal/logging"
)

// Root returns the root command for the project-factory CLI.
func Root() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "project-factory",
		Short: "Build and maintain project factory configurations",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Setup(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(Init())
	cmd.AddCommand(Edit())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Show())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
