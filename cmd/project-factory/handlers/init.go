// Package handlers implements the CLI command logic. Commands bind
// flags and delegate here; everything that talks to the terminal or the
// filesystem sits behind function variables so tests can replace it.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/Gerhatlevi/project-factory/internal/document"
	"github.com/Gerhatlevi/project-factory/internal/encode"
	"github.com/Gerhatlevi/project-factory/internal/wizard"
)

// Function variables for init - can be replaced in tests.
var (
	fileExists = encode.FileExists

	runWizard = wizard.Run

	writeConfig = encode.WriteFile

	stdinIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	confirmOverwrite = defaultConfirmOverwrite
)

var errNotSavable = errors.New("configuration does not pass the save rules")

// Init runs the interactive wizard and writes the result to a file.
// The document is only written when it passes the save rules.
func Init(ctx context.Context, outputPath string, force bool) error {
	if !stdinIsTerminal() {
		return errors.New("init needs an interactive terminal; use edit --script for automation")
	}

	if !force && fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	doc := document.New()
	if err := runWizard(ctx, doc); err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := reportVerdict(doc.CheckSave()); err != nil {
		return err
	}

	if err := writeConfig(doc.Snapshot(), outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, doc)
	return nil
}

// reportVerdict prints every blocking reason and returns an error when
// the document is not save-eligible.
func reportVerdict(v document.Verdict) error {
	if v.Savable() {
		return nil
	}
	fmt.Println()
	fmt.Println("The configuration cannot be saved yet:")
	for _, reason := range v.Reasons {
		fmt.Printf("  - %s\n", reason)
	}
	return fmt.Errorf("%w: %d problem(s)", errNotSavable, len(v.Reasons))
}

func printInitSuccess(outputPath string, doc *document.Document) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()
	fmt.Println("Project Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:             %s\n", doc.Name())
	if doc.Parent() != "" {
		fmt.Printf("  Parent:           %s\n", doc.Parent())
	}
	fmt.Printf("  Services:         %d\n", doc.Services().Len())
	fmt.Printf("  Buckets:          %d\n", doc.Buckets().Len())
	fmt.Printf("  Service Accounts: %d\n", doc.ServiceAccounts().Len())
	fmt.Printf("  Org Policies:     %d\n", doc.OrgPolicies().Len())
	if doc.Automation().Enabled() {
		fmt.Printf("  Automation:       %s\n", doc.Automation().Project())
	}
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s\n", outputPath)
	fmt.Printf("  2. Validate after manual edits: project-factory validate -c %s\n", outputPath)
	fmt.Println("  3. Hand the file to your project factory pipeline")
	fmt.Println()
}

// defaultConfirmOverwrite prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
