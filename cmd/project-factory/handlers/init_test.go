package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerhatlevi/project-factory/internal/document"
)

// saveAndRestoreInitFactories saves and restores init factory functions.
func saveAndRestoreInitFactories(t *testing.T) {
	origFileExists := fileExists
	origRunWizard := runWizard
	origWriteConfig := writeConfig
	origStdinIsTerminal := stdinIsTerminal
	origConfirmOverwrite := confirmOverwrite

	t.Cleanup(func() {
		fileExists = origFileExists
		runWizard = origRunWizard
		writeConfig = origWriteConfig
		stdinIsTerminal = origStdinIsTerminal
		confirmOverwrite = origConfirmOverwrite
	})
}

func TestInit_RequiresTerminal(t *testing.T) {
	saveAndRestoreInitFactories(t)
	stdinIsTerminal = func() bool { return false }

	err := Init(context.Background(), "out.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestInit_WritesWizardResult(t *testing.T) {
	saveAndRestoreInitFactories(t)
	stdinIsTerminal = func() bool { return true }
	fileExists = func(string) bool { return false }
	runWizard = func(_ context.Context, doc *document.Document) error {
		doc.SetName("wizard-prj")
		return nil
	}

	var written *document.Snapshot
	var writtenPath string
	writeConfig = func(snap *document.Snapshot, path string) error {
		written = snap
		writtenPath = path
		return nil
	}

	require.NoError(t, Init(context.Background(), "out.yaml", false))
	require.NotNil(t, written)
	assert.Equal(t, "wizard-prj", written.Name)
	assert.Equal(t, "out.yaml", writtenPath)
}

func TestInit_WizardErrorPropagates(t *testing.T) {
	saveAndRestoreInitFactories(t)
	stdinIsTerminal = func() bool { return true }
	fileExists = func(string) bool { return false }
	runWizard = func(_ context.Context, _ *document.Document) error {
		return errors.New("boom")
	}
	writeConfig = func(*document.Snapshot, string) error {
		t.Fatal("writeConfig should not be called")
		return nil
	}

	err := Init(context.Background(), "out.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_BlocksUnsavableDocument(t *testing.T) {
	saveAndRestoreInitFactories(t)
	stdinIsTerminal = func() bool { return true }
	fileExists = func(string) bool { return false }
	runWizard = func(_ context.Context, doc *document.Document) error {
		doc.Automation().SetEnabled(true) // no project name
		return nil
	}
	writeConfig = func(*document.Snapshot, string) error {
		t.Fatal("writeConfig should not be called")
		return nil
	}

	err := Init(context.Background(), "out.yaml", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNotSavable))
}

func TestInit_OverwriteDeclined(t *testing.T) {
	saveAndRestoreInitFactories(t)
	stdinIsTerminal = func() bool { return true }
	fileExists = func(string) bool { return true }
	confirmOverwrite = func(string) (bool, error) { return false, nil }
	runWizard = func(_ context.Context, _ *document.Document) error {
		t.Fatal("wizard should not run")
		return nil
	}

	require.NoError(t, Init(context.Background(), "out.yaml", false))
}

func TestInit_ForceSkipsConfirmation(t *testing.T) {
	saveAndRestoreInitFactories(t)
	stdinIsTerminal = func() bool { return true }
	fileExists = func(string) bool { return true }
	confirmOverwrite = func(string) (bool, error) {
		t.Fatal("confirmation should be skipped with --force")
		return false, nil
	}
	runWizard = func(_ context.Context, _ *document.Document) error { return nil }
	writeConfig = func(*document.Snapshot, string) error { return nil }

	require.NoError(t, Init(context.Background(), "out.yaml", true))
}
