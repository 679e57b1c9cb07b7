package document

import (
	"fmt"
	"slices"

	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// RoleMap maps roles/-prefixed role names to ordered principal lists.
// It is the authoritative role catalog that the binding sets reference.
type RoleMap struct {
	inner *collection[[]string]
}

// NewRoleMap returns an empty role map.
func NewRoleMap() *RoleMap {
	return &RoleMap{inner: newCollection[[]string]()}
}

// AddRole defines a role with an empty member list. The name must start
// with "roles/" and be unique in the map.
func (m *RoleMap) AddRole(role string) error {
	if !validate.IsRole(role) {
		return fmt.Errorf("%w: role %q must start with %q", ErrInvalidFormat, role, validate.RolePrefix)
	}
	return m.inner.insert(role, nil)
}

// SetMembers replaces the member list for role from a comma/newline
// delimited batch. Every token must match the principal shape; one bad
// token rejects the whole edit and the prior list is retained.
func (m *RoleMap) SetMembers(role, raw string) error {
	if !m.inner.has(role) {
		return fmt.Errorf("%w: role %q", ErrNotFound, role)
	}
	members, err := parsePrincipals(raw)
	if err != nil {
		return err
	}
	return m.inner.replace(role, members)
}

// RemoveRole deletes the role and its member list.
func (m *RoleMap) RemoveRole(role string) error {
	if err := m.inner.remove(role); err != nil {
		return fmt.Errorf("role %w", err)
	}
	return nil
}

// Has reports whether role is defined.
func (m *RoleMap) Has(role string) bool { return m.inner.has(role) }

// Roles returns the role names in insertion order.
func (m *RoleMap) Roles() []string { return m.inner.ids() }

// Members returns the principal list for role. The slice is a copy.
func (m *RoleMap) Members(role string) []string {
	v, _ := m.inner.at(role)
	return slices.Clone(v)
}

// Len returns the number of roles.
func (m *RoleMap) Len() int { return m.inner.size() }

func (m *RoleMap) snapshot() map[string][]string {
	out := make(map[string][]string, m.inner.size())
	for _, role := range m.inner.ids() {
		v, _ := m.inner.at(role)
		out[role] = slices.Clone(v)
	}
	return out
}

// PrincipalGrants maps a principal to the ordered list of roles granted
// to it (the iam_by_principals view: principal first, roles second).
type PrincipalGrants struct {
	inner *collection[[]string]
}

// NewPrincipalGrants returns an empty grant map.
func NewPrincipalGrants() *PrincipalGrants {
	return &PrincipalGrants{inner: newCollection[[]string]()}
}

// Add grants role to principal, creating the principal entry when
// absent. The principal must match the principal shape, the role must
// be roles/-prefixed, and a role already granted to the principal is a
// duplicate.
func (g *PrincipalGrants) Add(principal, role string) error {
	if !validate.IsPrincipal(principal) {
		return fmt.Errorf("%w: principal %q", ErrInvalidFormat, principal)
	}
	if !validate.IsRole(role) {
		return fmt.Errorf("%w: role %q must start with %q", ErrInvalidFormat, role, validate.RolePrefix)
	}
	roles, ok := g.inner.at(principal)
	if ok && slices.Contains(roles, role) {
		return fmt.Errorf("%w: %q already granted to %q", ErrDuplicateKey, role, principal)
	}
	if !ok {
		return g.inner.insert(principal, []string{role})
	}
	return g.inner.replace(principal, append(roles, role))
}

// RemoveRole revokes role from principal. Removing the last role also
// removes the principal entry.
func (g *PrincipalGrants) RemoveRole(principal, role string) error {
	roles, ok := g.inner.at(principal)
	if !ok {
		return fmt.Errorf("%w: principal %q", ErrNotFound, principal)
	}
	i := slices.Index(roles, role)
	if i < 0 {
		return fmt.Errorf("%w: role %q for principal %q", ErrNotFound, role, principal)
	}
	roles = slices.Delete(slices.Clone(roles), i, i+1)
	if len(roles) == 0 {
		return g.inner.remove(principal)
	}
	return g.inner.replace(principal, roles)
}

// RemovePrincipal removes the principal and all its grants.
func (g *PrincipalGrants) RemovePrincipal(principal string) error {
	if err := g.inner.remove(principal); err != nil {
		return fmt.Errorf("principal %w", err)
	}
	return nil
}

// Principals returns the principals in insertion order.
func (g *PrincipalGrants) Principals() []string { return g.inner.ids() }

// Roles returns the roles granted to principal. The slice is a copy.
func (g *PrincipalGrants) Roles(principal string) []string {
	v, _ := g.inner.at(principal)
	return slices.Clone(v)
}

// Len returns the number of principals with grants.
func (g *PrincipalGrants) Len() int { return g.inner.size() }

func (g *PrincipalGrants) snapshot() map[string][]string {
	out := make(map[string][]string, g.inner.size())
	for _, p := range g.inner.ids() {
		v, _ := g.inner.at(p)
		out[p] = slices.Clone(v)
	}
	return out
}
