package handlers

import (
	"context"
	"fmt"

	"github.com/Gerhatlevi/project-factory/internal/encode"
)

// Show prints a styled summary of a configuration file, or the
// canonical YAML with --yaml.
func Show(_ context.Context, configPath string, asYAML bool) error {
	doc, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if asYAML {
		out, err := encode.Marshal(doc.Snapshot())
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	fmt.Println(renderSummary(configPath, doc))
	return nil
}
