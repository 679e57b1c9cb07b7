package document

import (
	"fmt"

	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// Document is the root aggregate: one canonical, nested configuration
// for a single cloud organizational unit. It owns every composite
// entity directly; there is no shared side-table state.
type Document struct {
	billingAccount string
	name           string
	parent         string
	prefix         string

	automation       *Automation
	billingBudgets   *StringList
	buckets          *BucketSet
	contacts         *SchemaMap
	iam              *RoleMap
	bindings         *BindingSet
	additiveBindings *AdditiveBindingSet
	byPrincipals     *PrincipalGrants
	labels           *LabelMap
	metricScopes     *StringList
	orgPolicies      *PolicySet
	serviceAccounts  *AccountSet
	encryptionKeyIDs *SchemaMap
	services         *StringList
	sharedVPCHost    *SharedVPCHost
	sharedVPCService *SharedVPCService
	tagBindings      *SchemaMap
	vpcSC            *Perimeter
}

// New returns an empty document with the documented defaults: all
// scalars blank, all collections empty, automation and VPC-SC disabled.
func New() *Document {
	d := &Document{}
	d.Reset()
	return d
}

// Reset discards all in-memory state back to the defaults of New.
func (d *Document) Reset() {
	iam := NewRoleMap()

	d.billingAccount = ""
	d.name = ""
	d.parent = ""
	d.prefix = ""
	d.automation = NewAutomation()
	d.billingBudgets = NewStringList(nil)
	d.buckets = NewBucketSet()
	d.contacts = NewSchemaMap(WithKeyCheck(validate.IsSlugExt, "lowercase letters, numbers, underscores and hyphens only"))
	d.iam = iam
	d.bindings = NewBindingSet(iam)
	d.additiveBindings = NewAdditiveBindingSet(iam)
	d.byPrincipals = NewPrincipalGrants()
	d.labels = NewLabelMap()
	d.metricScopes = NewStringList(nil)
	d.orgPolicies = NewPolicySet()
	d.serviceAccounts = NewAccountSet(false)
	d.encryptionKeyIDs = NewSchemaMap(
		WithKeyCheck(validate.IsServiceName, "must be of the form name.googleapis.com"),
		WithUniqueValues(),
	)
	d.services = NewStringList(checkServiceName)
	d.sharedVPCHost = NewSharedVPCHost()
	d.sharedVPCService = NewSharedVPCService()
	d.tagBindings = NewSchemaMap()
	d.vpcSC = NewPerimeter()
}

func checkServiceName(s string) error {
	if !validate.IsServiceName(s) {
		return fmt.Errorf("%w: service %q (must be of the form name.googleapis.com)", ErrInvalidFormat, s)
	}
	return nil
}

// SetBillingAccount sets the billing account reference.
func (d *Document) SetBillingAccount(v string) { d.billingAccount = v }

// SetName sets the project name.
func (d *Document) SetName(v string) { d.name = v }

// SetParent sets the parent resource reference.
func (d *Document) SetParent(v string) { d.parent = v }

// SetPrefix sets the resource name prefix.
func (d *Document) SetPrefix(v string) { d.prefix = v }

// BillingAccount returns the billing account reference.
func (d *Document) BillingAccount() string { return d.billingAccount }

// Name returns the project name.
func (d *Document) Name() string { return d.name }

// Parent returns the parent resource reference.
func (d *Document) Parent() string { return d.parent }

// Prefix returns the resource name prefix.
func (d *Document) Prefix() string { return d.prefix }

// Automation returns the automation block.
func (d *Document) Automation() *Automation { return d.automation }

// BillingBudgets returns the billing budget list.
func (d *Document) BillingBudgets() *StringList { return d.billingBudgets }

// Buckets returns the user bucket set.
func (d *Document) Buckets() *BucketSet { return d.buckets }

// Contacts returns the contact group map.
func (d *Document) Contacts() *SchemaMap { return d.contacts }

// IAM returns the project-level role map.
func (d *Document) IAM() *RoleMap { return d.iam }

// Bindings returns the project-level standard binding set.
func (d *Document) Bindings() *BindingSet { return d.bindings }

// AdditiveBindings returns the project-level additive binding set.
func (d *Document) AdditiveBindings() *AdditiveBindingSet { return d.additiveBindings }

// ByPrincipals returns the principal-first grant map.
func (d *Document) ByPrincipals() *PrincipalGrants { return d.byPrincipals }

// Labels returns the project label map.
func (d *Document) Labels() *LabelMap { return d.labels }

// MetricScopes returns the metric scope list.
func (d *Document) MetricScopes() *StringList { return d.metricScopes }

// OrgPolicies returns the organization policy set.
func (d *Document) OrgPolicies() *PolicySet { return d.orgPolicies }

// ServiceAccounts returns the top-level service account set.
func (d *Document) ServiceAccounts() *AccountSet { return d.serviceAccounts }

// EncryptionKeyIDs returns the per-service encryption key id map.
func (d *Document) EncryptionKeyIDs() *SchemaMap { return d.encryptionKeyIDs }

// Services returns the enabled service list.
func (d *Document) Services() *StringList { return d.services }

// SharedVPCHost returns the shared-VPC host config.
func (d *Document) SharedVPCHost() *SharedVPCHost { return d.sharedVPCHost }

// SharedVPCService returns the shared-VPC service config.
func (d *Document) SharedVPCService() *SharedVPCService { return d.sharedVPCService }

// TagBindings returns the tag binding map.
func (d *Document) TagBindings() *SchemaMap { return d.tagBindings }

// VPCSC returns the service perimeter config.
func (d *Document) VPCSC() *Perimeter { return d.vpcSC }
