package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleMap_AddRole(t *testing.T) {
	m := NewRoleMap()

	require.NoError(t, m.AddRole("roles/viewer"))

	err := m.AddRole("viewer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	err = m.AddRole("roles/viewer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	assert.Equal(t, []string{"roles/viewer"}, m.Roles())
}

func TestRoleMap_SetMembersBatch(t *testing.T) {
	m := NewRoleMap()
	require.NoError(t, m.AddRole("roles/editor"))

	require.NoError(t, m.SetMembers("roles/editor", "user:a@example.com, group:b@example.com\nserviceAccount:c@p.iam.gserviceaccount.com"))
	assert.Equal(t, []string{
		"user:a@example.com",
		"group:b@example.com",
		"serviceAccount:c@p.iam.gserviceaccount.com",
	}, m.Members("roles/editor"))
}

func TestRoleMap_SetMembersAllOrNothing(t *testing.T) {
	m := NewRoleMap()
	require.NoError(t, m.AddRole("roles/editor"))
	require.NoError(t, m.SetMembers("roles/editor", "user:a@example.com"))

	// One bad token rejects the whole batch and keeps the prior list.
	err := m.SetMembers("roles/editor", "user:b@example.com, @bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Equal(t, []string{"user:a@example.com"}, m.Members("roles/editor"))
}

func TestRoleMap_SetMembersUnknownRole(t *testing.T) {
	m := NewRoleMap()
	err := m.SetMembers("roles/ghost", "user:a@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRoleMap_RemoveRole(t *testing.T) {
	m := NewRoleMap()
	require.NoError(t, m.AddRole("roles/viewer"))
	require.NoError(t, m.AddRole("roles/editor"))

	require.NoError(t, m.RemoveRole("roles/viewer"))
	assert.Equal(t, []string{"roles/editor"}, m.Roles())

	err := m.RemoveRole("roles/viewer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPrincipalGrants_Add(t *testing.T) {
	g := NewPrincipalGrants()

	require.NoError(t, g.Add("group:devops@example.com", "roles/viewer"))
	require.NoError(t, g.Add("group:devops@example.com", "roles/editor"))

	// Same role twice for one principal is a duplicate.
	err := g.Add("group:devops@example.com", "roles/viewer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	// Bad shapes are rejected.
	err = g.Add("Nobody", "roles/viewer")
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	err = g.Add("user:a@example.com", "viewer")
	assert.True(t, errors.Is(err, ErrInvalidFormat))

	assert.Equal(t, []string{"roles/viewer", "roles/editor"}, g.Roles("group:devops@example.com"))
}

func TestPrincipalGrants_RemoveLastRoleRemovesPrincipal(t *testing.T) {
	g := NewPrincipalGrants()
	require.NoError(t, g.Add("user:a@example.com", "roles/viewer"))

	require.NoError(t, g.RemoveRole("user:a@example.com", "roles/viewer"))
	assert.Empty(t, g.Principals())

	err := g.RemoveRole("user:a@example.com", "roles/viewer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPrincipalGrants_RemovePrincipal(t *testing.T) {
	g := NewPrincipalGrants()
	require.NoError(t, g.Add("user:a@example.com", "roles/viewer"))
	require.NoError(t, g.Add("user:a@example.com", "roles/editor"))

	require.NoError(t, g.RemovePrincipal("user:a@example.com"))
	assert.Zero(t, g.Len())
}
