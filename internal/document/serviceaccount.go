package document

import (
	"fmt"

	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// ServiceAccount describes one service account: a description or
// display name, an IAM role map with binding sets, an ordered list of
// self roles and six scope-keyed dynamic role maps. The same entity
// serves both top-level and automation-owned accounts; the owner is the
// set it lives in.
type ServiceAccount struct {
	description     string
	displayName     string
	automationOwned bool

	iam      *RoleMap
	bindings *BindingSet
	additive *AdditiveBindingSet

	selfRoles *StringList

	billingRoles      *SchemaMap
	folderRoles       *SchemaMap
	organizationRoles *SchemaMap
	projectRoles      *SchemaMap
	saRoles           *SchemaMap
	storageRoles      *SchemaMap
}

func newServiceAccount(automationOwned bool) *ServiceAccount {
	iam := NewRoleMap()
	return &ServiceAccount{
		automationOwned:   automationOwned,
		iam:               iam,
		bindings:          NewBindingSet(iam),
		additive:          NewAdditiveBindingSet(iam),
		selfRoles:         NewStringList(nil),
		billingRoles:      NewSchemaMap(),
		folderRoles:       NewSchemaMap(),
		organizationRoles: NewSchemaMap(),
		projectRoles:      NewSchemaMap(),
		saRoles:           NewSchemaMap(),
		storageRoles:      NewSchemaMap(),
	}
}

// SetDescription sets the free-form description.
func (a *ServiceAccount) SetDescription(v string) { a.description = v }

// SetDisplayName sets the display name.
func (a *ServiceAccount) SetDisplayName(v string) { a.displayName = v }

// Description returns the description.
func (a *ServiceAccount) Description() string { return a.description }

// DisplayName returns the display name.
func (a *ServiceAccount) DisplayName() string { return a.displayName }

// AutomationOwned reports whether the account lives under automation.
func (a *ServiceAccount) AutomationOwned() bool { return a.automationOwned }

// IAM returns the account's role map.
func (a *ServiceAccount) IAM() *RoleMap { return a.iam }

// Bindings returns the standard binding set.
func (a *ServiceAccount) Bindings() *BindingSet { return a.bindings }

// AdditiveBindings returns the additive binding set.
func (a *ServiceAccount) AdditiveBindings() *AdditiveBindingSet { return a.additive }

// SelfRoles returns the ordered self-role list.
func (a *ServiceAccount) SelfRoles() *StringList { return a.selfRoles }

// BillingRoles returns the billing-account-scoped role grants.
func (a *ServiceAccount) BillingRoles() *SchemaMap { return a.billingRoles }

// FolderRoles returns the folder-scoped role grants.
func (a *ServiceAccount) FolderRoles() *SchemaMap { return a.folderRoles }

// OrganizationRoles returns the organization-scoped role grants.
func (a *ServiceAccount) OrganizationRoles() *SchemaMap { return a.organizationRoles }

// ProjectRoles returns the project-scoped role grants.
func (a *ServiceAccount) ProjectRoles() *SchemaMap { return a.projectRoles }

// SARoles returns the service-account-scoped role grants.
func (a *ServiceAccount) SARoles() *SchemaMap { return a.saRoles }

// StorageRoles returns the storage-scoped role grants.
func (a *ServiceAccount) StorageRoles() *SchemaMap { return a.storageRoles }

// AccountSet is a keyed collection of service accounts. Ids are slugs,
// unique within the set.
type AccountSet struct {
	inner           *collection[*ServiceAccount]
	automationOwned bool
}

// NewAccountSet returns an empty set. automationOwned marks every
// account created in it as automation-owned.
func NewAccountSet(automationOwned bool) *AccountSet {
	return &AccountSet{inner: newCollection[*ServiceAccount](), automationOwned: automationOwned}
}

// Add creates a service account under id and returns it for in-place
// editing.
func (s *AccountSet) Add(id string) (*ServiceAccount, error) {
	if !validate.IsSlug(id) {
		return nil, fmt.Errorf("%w: service account id %q (lowercase letters, numbers and hyphens only)", ErrInvalidFormat, id)
	}
	a := newServiceAccount(s.automationOwned)
	if err := s.inner.insert(id, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Remove deletes the account and cascades over all of its nested state.
func (s *AccountSet) Remove(id string) error {
	if err := s.inner.remove(id); err != nil {
		return fmt.Errorf("service account %w", err)
	}
	return nil
}

// Get returns the account under id.
func (s *AccountSet) Get(id string) (*ServiceAccount, bool) { return s.inner.at(id) }

// IDs returns the account ids in insertion order.
func (s *AccountSet) IDs() []string { return s.inner.ids() }

// Len returns the number of accounts.
func (s *AccountSet) Len() int { return s.inner.size() }
