// Package encode serializes documents to YAML files and loads them
// back. Serialization is deterministic: the same snapshot always
// renders to the same YAML bytes, so files diff cleanly under version
// control. Loading replays the file through the document mutators, so
// hand-edited files are re-validated on the way in.
package encode

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/Gerhatlevi/project-factory/internal/document"
)

// Function variable for dependency injection in tests.
var now = time.Now

// Marshal renders the snapshot as YAML. Map keys are emitted sorted, so
// equal snapshots produce equal bytes.
func Marshal(snap *document.Snapshot) ([]byte, error) {
	out, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return out, nil
}

// WriteFile writes the snapshot to path with a descriptive header,
// readable only by the owner. The header carries the generation
// timestamp and is the only non-deterministic part of the file.
func WriteFile(snap *document.Snapshot, path string) error {
	yamlBytes, err := Marshal(snap)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(snap.Name, path))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// LoadFile reads a project configuration from a YAML file and rebuilds
// the document through the regular mutators. Files that violate the
// edit-time contracts (bad principals, duplicate ids, bindings against
// undefined roles) are rejected with the offending value named.
func LoadFile(path string) (*document.Document, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var snap document.Snapshot
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &snap,
		TagName: "yaml",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	doc, err := document.FromSnapshot(&snap)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return doc, nil
}

// LoadScript reads an ordered list of edit commands from a YAML file.
func LoadScript(path string) ([]document.EditCommand, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	var cmds []document.EditCommand
	if err := yaml.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal script: %w", err)
	}
	return cmds, nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(project, outputPath string) string {
	if project == "" {
		project = "(unnamed)"
	}
	return fmt.Sprintf(`# Project factory configuration for %s
# Generated by: project-factory
# Generated at: %s
#
# Edit interactively:
#   project-factory edit -c %s
# Check save eligibility:
#   project-factory validate -c %s
`, project, now().Format(time.RFC3339), outputPath, outputPath)
}
