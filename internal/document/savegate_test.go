package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSave_EmptyDocumentIsSavable(t *testing.T) {
	d := New()
	v := d.CheckSave()
	assert.True(t, v.Savable())
	assert.Empty(t, v.Reasons)
}

func TestCheckSave_AutomationProjectRequired(t *testing.T) {
	d := New()
	d.Automation().SetEnabled(true)

	v := d.CheckSave()
	require.False(t, v.Savable())
	assert.Contains(t, v.Reasons[0], "automation")
	assert.Contains(t, v.Reasons[0], "project name is required")

	// Fixing the project clears the verdict.
	d.Automation().SetProject("automation-prj")
	assert.True(t, d.CheckSave().Savable())
}

func TestCheckSave_IncompleteConditionBlocks(t *testing.T) {
	d := New()
	require.NoError(t, d.IAM().AddRole("roles/viewer"))
	_, err := d.Bindings().Add("b1")
	require.NoError(t, err)
	require.NoError(t, d.Bindings().SetCondition("b1", Condition{Expression: "request.time < x"}))

	v := d.CheckSave()
	require.False(t, v.Savable())
	assert.Contains(t, v.Reasons[0], `binding "b1"`)
	assert.Contains(t, v.Reasons[0], "incomplete condition")

	// Completing the condition clears it.
	require.NoError(t, d.Bindings().SetCondition("b1", Condition{Expression: "request.time < x", Title: "time box"}))
	assert.True(t, d.CheckSave().Savable())
}

func TestCheckSave_MissingConditionBlocks(t *testing.T) {
	d := New()
	require.NoError(t, d.IAM().AddRole("roles/viewer"))
	_, err := d.Bindings().Add("b1")
	require.NoError(t, err)

	// A binding starts with an empty condition and must not be savable
	// until one is attached.
	v := d.CheckSave()
	require.False(t, v.Savable())
	assert.Contains(t, v.Reasons[0], `binding "b1"`)
	assert.Contains(t, v.Reasons[0], "incomplete condition")

	require.NoError(t, d.Bindings().SetCondition("b1", Condition{Expression: "true", Title: "always"}))
	assert.True(t, d.CheckSave().Savable())
}

func TestCheckSave_AutomationBucketConditionRequired(t *testing.T) {
	d := New()
	d.Automation().SetEnabled(true)
	d.Automation().SetProject("automation-prj")
	b := d.Automation().Bucket()
	require.NoError(t, b.IAM().AddRole("roles/storage.admin"))
	_, err := b.Bindings().Add("state_writers")
	require.NoError(t, err)

	v := d.CheckSave()
	require.False(t, v.Savable())
	assert.Contains(t, v.Reasons[0], "automation bucket")
	assert.Contains(t, v.Reasons[0], `binding "state_writers"`)

	require.NoError(t, b.Bindings().SetCondition("state_writers", Condition{
		Expression: `resource.name.startsWith("projects/_/buckets/state")`,
		Title:      "state only",
	}))
	assert.True(t, d.CheckSave().Savable())
}

func TestCheckSave_UnknownRoleAfterRemoval(t *testing.T) {
	d := New()
	require.NoError(t, d.IAM().AddRole("roles/viewer"))
	_, err := d.Bindings().Add("b1")
	require.NoError(t, err)
	require.NoError(t, d.Bindings().SetCondition("b1", Condition{Expression: "true", Title: "always"}))

	// Pulling the role out from under the binding is legal at edit time
	// but blocks the save.
	require.NoError(t, d.IAM().RemoveRole("roles/viewer"))

	v := d.CheckSave()
	require.False(t, v.Savable())
	assert.Contains(t, v.Reasons[0], `unknown role "roles/viewer"`)
}

func TestCheckSave_PerimeterNameRequired(t *testing.T) {
	d := New()
	d.VPCSC().SetEnabled(true)

	v := d.CheckSave()
	require.False(t, v.Savable())
	assert.Contains(t, v.Reasons[0], "perimeter name is required")

	d.VPCSC().SetName("main-perimeter")
	assert.True(t, d.CheckSave().Savable())
}

func TestCheckSave_CollectsAllReasonsInOrder(t *testing.T) {
	d := New()

	// Automation on without a project.
	d.Automation().SetEnabled(true)

	// Project binding with an incomplete condition.
	require.NoError(t, d.IAM().AddRole("roles/viewer"))
	_, err := d.Bindings().Add("proj_b")
	require.NoError(t, err)
	require.NoError(t, d.Bindings().SetCondition("proj_b", Condition{Title: "only a title"}))

	// Bucket binding against a removed role.
	b, err := d.Buckets().Add("data")
	require.NoError(t, err)
	require.NoError(t, b.IAM().AddRole("roles/storage.admin"))
	_, err = b.Bindings().Add("bucket_b")
	require.NoError(t, err)
	require.NoError(t, b.Bindings().SetCondition("bucket_b", Condition{Expression: "true", Title: "always"}))
	require.NoError(t, b.IAM().RemoveRole("roles/storage.admin"))

	// Perimeter on without a name.
	d.VPCSC().SetEnabled(true)

	v := d.CheckSave()
	require.Len(t, v.Reasons, 4)
	assert.Contains(t, v.Reasons[0], "automation")
	assert.Contains(t, v.Reasons[1], `binding "proj_b"`)
	assert.Contains(t, v.Reasons[2], `bucket "data"`)
	assert.Contains(t, v.Reasons[3], "perimeter name")
}

func TestCheckSave_ServiceAccountScopes(t *testing.T) {
	d := New()
	a, err := d.ServiceAccounts().Add("app")
	require.NoError(t, err)
	require.NoError(t, a.IAM().AddRole("roles/viewer"))
	_, err = a.AdditiveBindings().Add("extra")
	require.NoError(t, err)
	require.NoError(t, a.AdditiveBindings().SetCondition("extra", Condition{Expression: "x"}))

	v := d.CheckSave()
	require.False(t, v.Savable())
	assert.Contains(t, v.Reasons[0], `service account "app"`)
	assert.Contains(t, v.Reasons[0], "additive binding")
}

func TestCheckSave_DisabledAutomationScopesIgnored(t *testing.T) {
	d := New()
	d.Automation().SetEnabled(true)
	d.Automation().SetProject("prj")
	a, err := d.Automation().ServiceAccounts().Add("deployer")
	require.NoError(t, err)
	require.NoError(t, a.IAM().AddRole("roles/viewer"))
	_, err = a.Bindings().Add("b")
	require.NoError(t, err)
	require.NoError(t, a.Bindings().SetCondition("b", Condition{Expression: "x"}))

	require.False(t, d.CheckSave().Savable())

	// Disabling automation discards its scopes, so the verdict clears.
	d.Automation().SetEnabled(false)
	assert.True(t, d.CheckSave().Savable())
}
