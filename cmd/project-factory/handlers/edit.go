package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Gerhatlevi/project-factory/internal/encode"
)

// Function variable for edit - can be replaced in tests.
var loadScript = encode.LoadScript

// Edit applies a scripted list of edit commands to a configuration
// file. Commands run in order and stop at the first failure; the file
// is rewritten only when everything succeeded and the result passes the
// save rules. With dryRun the file is left untouched.
func Edit(_ context.Context, configPath, scriptPath string, dryRun bool) error {
	doc, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	cmds, err := loadScript(scriptPath)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		return fmt.Errorf("script %s contains no commands", scriptPath)
	}

	for i, cmd := range cmds {
		if err := doc.Apply(cmd); err != nil {
			return fmt.Errorf("command %d (%s/%s): %w", i+1, cmd.Entity, cmd.Op, err)
		}
		slog.Debug("applied edit", "index", i+1, "entity", cmd.Entity, "op", cmd.Op, "id", cmd.ID)
	}

	if err := reportVerdict(doc.CheckSave()); err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Dry run: %d command(s) applied cleanly, %s not modified.\n", len(cmds), configPath)
		return nil
	}

	if err := writeConfig(doc.Snapshot(), configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Applied %d command(s) to %s.\n", len(cmds), configPath)
	return nil
}
