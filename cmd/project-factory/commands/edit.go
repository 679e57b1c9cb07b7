package commands

import (
	"github.com/spf13/cobra"

	"github.com/Gerhatlevi/project-factory/cmd/project-factory/handlers"
)

// Edit returns the command that applies scripted edits to an existing
// configuration file.
//
// Flags:
//
//	--config, -c: Path to the configuration file (default "project.yaml")
//	--script, -s: Path to the YAML edit script (required)
//	--dry-run: Apply and validate but do not write the file
func Edit() *cobra.Command {
	var (
		configPath string
		scriptPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply scripted edits to a configuration",
		Long: `Apply scripted edits to an existing configuration file.

The script is a YAML list of edit commands, each naming an entity, an
operation and its arguments:

  - entity: iam
    op: add
    id: roles/viewer
  - entity: iam
    op: set-members
    id: roles/viewer
    value: "group:devops@example.com, user:ops@example.com"
  - entity: bucket
    op: set
    id: data
    payload:
      storage_class: NEARLINE
  - entity: bucket-binding
    op: set-condition
    id: data
    field: readers
    payload:
      expression: "true"
      title: always

Nested scopes (bucket-iam, bucket-binding, bucket-additive-binding and
the service-account and automation equivalents) put the owner in id and
the element in field.

Commands run in order and stop at the first failure; the file on disk
is only rewritten when every command succeeded and the result passes
the save rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Edit(cmd.Context(), configPath, scriptPath, dryRun)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "project.yaml", "Configuration file path")
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "YAML edit script path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply and validate but do not write")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}
