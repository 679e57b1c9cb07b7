package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Gerhatlevi/project-factory/internal/encode"
)

// Function variable for validate - can be replaced in tests.
var loadConfig = encode.LoadFile

// Validate loads a configuration file and checks it against the save
// rules. Every failure is reported; the error is non-nil when the file
// is not save-eligible.
func Validate(_ context.Context, configPath string) error {
	doc, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	slog.Debug("configuration loaded", "path", configPath)

	if err := reportVerdict(doc.CheckSave()); err != nil {
		return err
	}

	fmt.Printf("%s passes all save rules.\n", configPath)
	return nil
}
