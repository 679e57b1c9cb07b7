package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerhatlevi/project-factory/internal/document"
)

func TestRenderSummary_Identity(t *testing.T) {
	d := document.New()
	d.SetName("demo-prj")
	d.SetParent("folders/42")
	require.NoError(t, d.Services().Add("compute.googleapis.com"))

	out := renderSummary("project.yaml", d)

	assert.Contains(t, out, "demo-prj")
	assert.Contains(t, out, "folders/42")
	assert.Contains(t, out, "project.yaml")
	assert.Contains(t, out, "Passes all save rules")
}

func TestRenderSummary_UnnamedAndProblems(t *testing.T) {
	d := document.New()
	d.VPCSC().SetEnabled(true)

	out := renderSummary("project.yaml", d)

	assert.Contains(t, out, "(unnamed)")
	assert.Contains(t, out, "1 save problem(s)")
	assert.Contains(t, out, "perimeter name is required")
}

func TestRenderSummary_FeatureStates(t *testing.T) {
	d := document.New()
	d.Automation().SetEnabled(true)
	d.Automation().SetProject("auto-prj")

	out := renderSummary("project.yaml", d)
	assert.Contains(t, out, "auto-prj")
}
