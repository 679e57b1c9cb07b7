package document

import (
	"fmt"
	"slices"

	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// Condition is a conditional-access expression attached to a binding or
// an organization policy rule.
type Condition struct {
	Expression  string `yaml:"expression"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// Location is only meaningful on organization policy rules.
	Location string `yaml:"location,omitempty"`
}

// Complete reports whether the condition is save-eligible: both
// expression and title set. Description and location are always
// optional.
func (c Condition) Complete() bool {
	return c.Expression != "" && c.Title != ""
}

// Binding associates an ordered set of principals with a role, gated by
// an optional condition. Mutation goes through the owning BindingSet so
// the id, role and member contracts hold.
type Binding struct {
	role      string
	members   []string
	condition Condition
}

// Role returns the bound role.
func (b *Binding) Role() string { return b.role }

// Members returns the bound principals in order. The slice is a copy.
func (b *Binding) Members() []string { return slices.Clone(b.members) }

// Condition returns the attached condition.
func (b *Binding) Condition() Condition { return b.condition }

// BindingSet is a keyed set of standard bindings. The role of every
// binding is a foreign key into the owning role map; insertion seeds it
// with the first known role and reassignment must target an existing
// role.
type BindingSet struct {
	roles *RoleMap
	inner *collection[*Binding]
}

// NewBindingSet returns an empty set owned by roles.
func NewBindingSet(roles *RoleMap) *BindingSet {
	return &BindingSet{roles: roles, inner: newCollection[*Binding]()}
}

// Add creates a binding under id, seeded with the first role of the
// owning role map and an empty condition. The id must be a slug
// (underscores allowed) and unique within the set; at least one role
// must already be defined.
func (s *BindingSet) Add(id string) (*Binding, error) {
	if !validate.IsSlugExt(id) {
		return nil, fmt.Errorf("%w: binding id %q (use lowercase letters, numbers, underscores and hyphens)", ErrInvalidFormat, id)
	}
	roles := s.roles.Roles()
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: no roles defined to bind", ErrUnknownRole)
	}
	b := &Binding{role: roles[0]}
	if err := s.inner.insert(id, b); err != nil {
		return nil, err
	}
	return b, nil
}

// SetRole reassigns the binding's role. The target must already be
// present in the owning role map.
func (s *BindingSet) SetRole(id, role string) error {
	b, ok := s.inner.at(id)
	if !ok {
		return fmt.Errorf("%w: binding %q", ErrNotFound, id)
	}
	if !s.roles.Has(role) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	b.role = role
	return nil
}

// SetMembers replaces the member list from a comma/newline-delimited
// batch. If any token fails the principal shape the whole edit is
// rejected and the prior list retained.
func (s *BindingSet) SetMembers(id, raw string) error {
	b, ok := s.inner.at(id)
	if !ok {
		return fmt.Errorf("%w: binding %q", ErrNotFound, id)
	}
	members, err := parsePrincipals(raw)
	if err != nil {
		return err
	}
	b.members = members
	return nil
}

// SetCondition replaces the binding's condition. Incomplete conditions
// are accepted here; the save gate is where completeness is enforced.
func (s *BindingSet) SetCondition(id string, cond Condition) error {
	b, ok := s.inner.at(id)
	if !ok {
		return fmt.Errorf("%w: binding %q", ErrNotFound, id)
	}
	b.condition = cond
	return nil
}

// Remove deletes the binding unconditionally.
func (s *BindingSet) Remove(id string) error {
	if err := s.inner.remove(id); err != nil {
		return fmt.Errorf("binding %w", err)
	}
	return nil
}

// Get returns the binding under id.
func (s *BindingSet) Get(id string) (*Binding, bool) { return s.inner.at(id) }

// IDs returns the binding ids in insertion order.
func (s *BindingSet) IDs() []string { return s.inner.ids() }

// Len returns the number of bindings.
func (s *BindingSet) Len() int { return s.inner.size() }

// AdditiveBinding is a single-member binding.
type AdditiveBinding struct {
	role      string
	member    string
	condition Condition
}

// Role returns the bound role.
func (b *AdditiveBinding) Role() string { return b.role }

// Member returns the bound principal.
func (b *AdditiveBinding) Member() string { return b.member }

// Condition returns the attached condition.
func (b *AdditiveBinding) Condition() Condition { return b.condition }

// AdditiveBindingSet is a keyed set of additive bindings with the same
// id, role and condition contracts as BindingSet but exactly one member
// per binding.
type AdditiveBindingSet struct {
	roles *RoleMap
	inner *collection[*AdditiveBinding]
}

// NewAdditiveBindingSet returns an empty set owned by roles.
func NewAdditiveBindingSet(roles *RoleMap) *AdditiveBindingSet {
	return &AdditiveBindingSet{roles: roles, inner: newCollection[*AdditiveBinding]()}
}

// Add creates an additive binding under id with the first known role,
// no member and an empty condition.
func (s *AdditiveBindingSet) Add(id string) (*AdditiveBinding, error) {
	if !validate.IsSlugExt(id) {
		return nil, fmt.Errorf("%w: binding id %q (use lowercase letters, numbers, underscores and hyphens)", ErrInvalidFormat, id)
	}
	roles := s.roles.Roles()
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: no roles defined to bind", ErrUnknownRole)
	}
	b := &AdditiveBinding{role: roles[0]}
	if err := s.inner.insert(id, b); err != nil {
		return nil, err
	}
	return b, nil
}

// SetRole reassigns the binding's role, which must exist in the owning
// role map.
func (s *AdditiveBindingSet) SetRole(id, role string) error {
	b, ok := s.inner.at(id)
	if !ok {
		return fmt.Errorf("%w: binding %q", ErrNotFound, id)
	}
	if !s.roles.Has(role) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	b.role = role
	return nil
}

// SetMember replaces the single member. The member must match the
// principal shape.
func (s *AdditiveBindingSet) SetMember(id, member string) error {
	b, ok := s.inner.at(id)
	if !ok {
		return fmt.Errorf("%w: binding %q", ErrNotFound, id)
	}
	if !validate.IsPrincipal(member) {
		return fmt.Errorf("%w: member %q", ErrInvalidFormat, member)
	}
	b.member = member
	return nil
}

// SetCondition replaces the binding's condition.
func (s *AdditiveBindingSet) SetCondition(id string, cond Condition) error {
	b, ok := s.inner.at(id)
	if !ok {
		return fmt.Errorf("%w: binding %q", ErrNotFound, id)
	}
	b.condition = cond
	return nil
}

// Remove deletes the binding unconditionally.
func (s *AdditiveBindingSet) Remove(id string) error {
	if err := s.inner.remove(id); err != nil {
		return fmt.Errorf("binding %w", err)
	}
	return nil
}

// Get returns the binding under id.
func (s *AdditiveBindingSet) Get(id string) (*AdditiveBinding, bool) { return s.inner.at(id) }

// IDs returns the binding ids in insertion order.
func (s *AdditiveBindingSet) IDs() []string { return s.inner.ids() }

// Len returns the number of bindings.
func (s *AdditiveBindingSet) Len() int { return s.inner.size() }

// parsePrincipals splits a batch edit and validates every token as a
// principal. All-or-nothing: one bad token rejects the whole batch.
func parsePrincipals(raw string) ([]string, error) {
	tokens := validate.SplitBatch(raw)
	for _, t := range tokens {
		if !validate.IsPrincipal(t) {
			return nil, fmt.Errorf("%w: member %q (must be domain:, group:, serviceAccount:, user:, principal:, principalSet: or start with a lowercase letter)", ErrInvalidFormat, t)
		}
	}
	return tokens, nil
}
