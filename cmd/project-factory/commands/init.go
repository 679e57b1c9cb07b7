package commands

import (
	"github.com/spf13/cobra"

	"github.com/Gerhatlevi/project-factory/cmd/project-factory/handlers"
)

// Init returns the command for interactively creating a project
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "project.yaml")
//	--force, -f: Overwrite an existing file without asking
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a project configuration",
		Long: `Interactively create a project configuration file.

This command guides you through configuring a project step by step.
It will ask about:

  - Project identity (name, parent, prefix, billing account)
  - Service APIs and labels
  - IAM grants, bindings and principal-first grants
  - Storage buckets with their own labels and IAM
  - Service accounts
  - Organization policies and their rules
  - Automation resources (project, state bucket, service accounts)
  - Shared VPC host and service configuration
  - VPC Service Controls

The result is checked against the save rules before it is written;
a configuration that fails them is reported and not saved.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "project.yaml", "Output file path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file without asking")

	return cmd
}
