package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerhatlevi/project-factory/internal/document"
)

func saveAndRestoreValidateFactories(t *testing.T) {
	origLoadConfig := loadConfig
	t.Cleanup(func() { loadConfig = origLoadConfig })
}

func TestValidate_SavableConfig(t *testing.T) {
	saveAndRestoreValidateFactories(t)
	loadConfig = func(string) (*document.Document, error) {
		d := document.New()
		d.SetName("ok-prj")
		return d, nil
	}

	assert.NoError(t, Validate(context.Background(), "project.yaml"))
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	saveAndRestoreValidateFactories(t)
	loadConfig = func(string) (*document.Document, error) {
		d := document.New()
		d.Automation().SetEnabled(true)
		d.VPCSC().SetEnabled(true)
		return d, nil
	}

	err := Validate(context.Background(), "project.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNotSavable))
	assert.Contains(t, err.Error(), "2 problem(s)")
}

func TestValidate_LoadErrorPropagates(t *testing.T) {
	saveAndRestoreValidateFactories(t)
	loadConfig = func(string) (*document.Document, error) {
		return nil, errors.New("corrupt file")
	}

	err := Validate(context.Background(), "project.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt file")
}
