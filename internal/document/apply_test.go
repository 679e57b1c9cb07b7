package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_ProjectScalars(t *testing.T) {
	d := New()

	require.NoError(t, d.Apply(EditCommand{Entity: "project", Op: "set", Field: "name", Value: "prj"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "project", Op: "set", Field: "parent", Value: "folders/1"}))
	assert.Equal(t, "prj", d.Name())
	assert.Equal(t, "folders/1", d.Parent())

	err := d.Apply(EditCommand{Entity: "project", Op: "set", Field: "bogus", Value: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestApply_UnknownEntityAndOp(t *testing.T) {
	d := New()

	err := d.Apply(EditCommand{Entity: "widget", Op: "add"})
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	err = d.Apply(EditCommand{Entity: "iam", Op: "frobnicate"})
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestApply_IAMAndBindings(t *testing.T) {
	d := New()

	require.NoError(t, d.Apply(EditCommand{Entity: "iam", Op: "add", ID: "roles/viewer"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "iam", Op: "set-members", ID: "roles/viewer", Value: "group:devops@example.com"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "binding", Op: "add", ID: "b1"}))
	require.NoError(t, d.Apply(EditCommand{
		Entity: "binding", Op: "set-condition", ID: "b1",
		Payload: map[string]any{"expression": "request.time < x", "title": "time box"},
	}))

	b, ok := d.Bindings().Get("b1")
	require.True(t, ok)
	assert.True(t, b.Condition().Complete())
}

func TestApply_ConditionPayloadPatchesExisting(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "iam", Op: "add", ID: "roles/viewer"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "binding", Op: "add", ID: "b1"}))
	require.NoError(t, d.Apply(EditCommand{
		Entity: "binding", Op: "set-condition", ID: "b1",
		Payload: map[string]any{"expression": "expr", "title": "t"},
	}))

	// A later patch with only one key keeps the other fields.
	require.NoError(t, d.Apply(EditCommand{
		Entity: "binding", Op: "set-condition", ID: "b1",
		Payload: map[string]any{"title": "renamed"},
	}))

	b, _ := d.Bindings().Get("b1")
	assert.Equal(t, "expr", b.Condition().Expression)
	assert.Equal(t, "renamed", b.Condition().Title)
}

func TestApply_UnknownPayloadKeyRejected(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "iam", Op: "add", ID: "roles/viewer"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "binding", Op: "add", ID: "b1"}))

	err := d.Apply(EditCommand{
		Entity: "binding", Op: "set-condition", ID: "b1",
		Payload: map[string]any{"expresion": "typo"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestApply_BucketPayload(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "bucket", Op: "add", ID: "data"}))
	require.NoError(t, d.Apply(EditCommand{
		Entity: "bucket", Op: "set", ID: "data",
		Payload: map[string]any{
			"storage_class": "COLDLINE",
			"versioning":    true,
			"location":      "EU",
		},
	}))

	b, _ := d.Buckets().Get("data")
	assert.Equal(t, StorageColdline, b.StorageClass())
	assert.True(t, b.Versioning())
	assert.Equal(t, "EU", b.Location())
}

func TestApply_BucketPayloadBadStorageClassLeavesBucketUntouched(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "bucket", Op: "add", ID: "data"}))

	err := d.Apply(EditCommand{
		Entity: "bucket", Op: "set", ID: "data",
		Payload: map[string]any{
			"storage_class": "GLACIER",
			"versioning":    true,
		},
	})
	require.Error(t, err)

	b, _ := d.Buckets().Get("data")
	assert.Equal(t, StorageStandard, b.StorageClass())
	assert.False(t, b.Versioning())
}

func TestApply_OrgPolicyRules(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "org-policy", Op: "add", ID: "compute.vmExternalIpAccess"}))
	require.NoError(t, d.Apply(EditCommand{
		Entity: "org-policy", Op: "add-rule", ID: "compute.vmExternalIpAccess",
		Payload: map[string]any{"deny_all": true, "enforce": false},
	}))

	p, _ := d.OrgPolicies().Get("compute.vmExternalIpAccess")
	require.Len(t, p.Rules(), 1)
	assert.True(t, p.Rules()[0].Deny.All)
	assert.False(t, p.Rules()[0].Enforce)
}

func TestApply_AddRuleBadPayloadAddsNothing(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "org-policy", Op: "add", ID: "compute.vmExternalIpAccess"}))

	err := d.Apply(EditCommand{
		Entity: "org-policy", Op: "add-rule", ID: "compute.vmExternalIpAccess",
		Payload: map[string]any{"nope": true},
	})
	require.Error(t, err)

	p, _ := d.OrgPolicies().Get("compute.vmExternalIpAccess")
	assert.Empty(t, p.Rules())
}

func TestApply_FeatureToggles(t *testing.T) {
	d := New()

	require.NoError(t, d.Apply(EditCommand{Entity: "automation", Op: "enable"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "automation", Op: "set", Field: "project", Value: "auto-prj"}))
	assert.True(t, d.Automation().Enabled())
	assert.Equal(t, "auto-prj", d.Automation().Project())

	require.NoError(t, d.Apply(EditCommand{Entity: "shared-vpc-host", Op: "enable"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "shared-vpc-host", Op: "add-service-project", Value: "svc-a"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "shared-vpc-host", Op: "disable"}))
	assert.Empty(t, d.SharedVPCHost().ServiceProjects())

	require.NoError(t, d.Apply(EditCommand{Entity: "vpc-sc", Op: "enable"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "vpc-sc", Op: "set", Field: "perimeter_name", Value: "p"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "vpc-sc", Op: "add-bridge", Value: "other"}))
	assert.Equal(t, []string{"other"}, d.VPCSC().Bridges())
}

func TestApply_SchemaMapEntities(t *testing.T) {
	d := New()

	require.NoError(t, d.Apply(EditCommand{Entity: "contact", Op: "add", ID: "legal", Value: "legal@example.com"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "contact", Op: "append", ID: "legal", Value: "counsel@example.com"}))
	assert.Equal(t, []string{"legal@example.com", "counsel@example.com"}, d.Contacts().Values("legal"))

	err := d.Apply(EditCommand{Entity: "encryption-key", Op: "add", ID: "not-a-service", Value: "key"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestApply_SharedVPCServiceGrantMaps(t *testing.T) {
	d := New()

	require.NoError(t, d.Apply(EditCommand{Entity: "shared-vpc-agent-iam", Op: "add", ID: "cloudservices", Value: "roles/compute.networkUser"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "shared-vpc-agent-subnet-iam", Op: "add", ID: "subnet-a", Value: "cloudservices"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "shared-vpc-subnet-users", Op: "add", ID: "subnet-a", Value: "group:devs@example.com"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "shared-vpc-subnet-users", Op: "append", ID: "subnet-a", Value: "group:ops@example.com"}))

	svc := d.SharedVPCService()
	assert.Equal(t, []string{"roles/compute.networkUser"}, svc.ServiceAgentIAM().Values("cloudservices"))
	assert.Equal(t, []string{"cloudservices"}, svc.ServiceAgentSubnetIAM().Values("subnet-a"))
	assert.Equal(t, []string{"group:devs@example.com", "group:ops@example.com"}, svc.NetworkSubnetUsers().Values("subnet-a"))
}

func TestApply_BucketScopedBindings(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "bucket", Op: "add", ID: "data"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "bucket-iam", Op: "add", ID: "data", Field: "roles/storage.objectViewer"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "bucket-binding", Op: "add", ID: "data", Field: "readers"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "bucket-binding", Op: "set-members", ID: "data", Field: "readers", Value: "group:devs@example.com"}))

	// A bucket binding blocking the save can be repaired by script.
	require.False(t, d.CheckSave().Savable())
	require.NoError(t, d.Apply(EditCommand{
		Entity: "bucket-binding", Op: "set-condition", ID: "data", Field: "readers",
		Payload: map[string]any{"expression": "true", "title": "always"},
	}))
	assert.True(t, d.CheckSave().Savable())

	err := d.Apply(EditCommand{Entity: "bucket-iam", Op: "add", ID: "missing", Field: "roles/viewer"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestApply_ServiceAccountScopedBindings(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "service-account", Op: "add", ID: "app"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "service-account-iam", Op: "add", ID: "app", Field: "roles/iam.serviceAccountUser"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "service-account-additive-binding", Op: "add", ID: "app", Field: "extra"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "service-account-additive-binding", Op: "set-member", ID: "app", Field: "extra", Value: "user:a@example.com"}))

	a, ok := d.ServiceAccounts().Get("app")
	require.True(t, ok)
	b, ok := a.AdditiveBindings().Get("extra")
	require.True(t, ok)
	assert.Equal(t, "user:a@example.com", b.Member())
	assert.Equal(t, "roles/iam.serviceAccountUser", b.Role())
}

func TestApply_AutomationScopesRequireEnabled(t *testing.T) {
	d := New()

	err := d.Apply(EditCommand{Entity: "automation-bucket-iam", Op: "add", Field: "roles/storage.admin"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDisabled))

	require.NoError(t, d.Apply(EditCommand{Entity: "automation", Op: "enable"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "automation-bucket-iam", Op: "add", Field: "roles/storage.admin"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "automation-bucket-binding", Op: "add", Field: "state_writers"}))
	assert.True(t, errors.Is(d.Apply(EditCommand{Entity: "automation-service-account-iam", Op: "add", ID: "deployer", Field: "roles/viewer"}), ErrNotFound))

	_, ok := d.Automation().Bucket().Bindings().Get("state_writers")
	assert.True(t, ok)
}

func TestApply_BooleanValues(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(EditCommand{Entity: "org-policy", Op: "add", ID: "compute.vmExternalIpAccess"}))

	// strconv spellings are accepted.
	require.NoError(t, d.Apply(EditCommand{Entity: "org-policy", Op: "set", ID: "compute.vmExternalIpAccess", Field: "inherit_from_parent", Value: "True"}))
	p, _ := d.OrgPolicies().Get("compute.vmExternalIpAccess")
	assert.True(t, p.InheritFromParent())

	err := d.Apply(EditCommand{Entity: "org-policy", Op: "set", ID: "compute.vmExternalIpAccess", Field: "reset", Value: "yes"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.False(t, p.Reset())

	require.NoError(t, d.Apply(EditCommand{Entity: "vpc-sc", Op: "set", Field: "is_dry_run", Value: "1"}))
	assert.True(t, d.VPCSC().DryRun())
}

func TestApply_ByPrincipal(t *testing.T) {
	d := New()

	require.NoError(t, d.Apply(EditCommand{Entity: "by-principal", Op: "add", ID: "group:devops@example.com", Value: "roles/viewer"}))
	require.NoError(t, d.Apply(EditCommand{Entity: "by-principal", Op: "remove-role", ID: "group:devops@example.com", Value: "roles/viewer"}))
	assert.Zero(t, d.ByPrincipals().Len())
}
