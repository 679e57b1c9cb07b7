package document

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Snapshot is an immutable, serialization-ready copy of a Document.
// Field names follow the persisted configuration schema; maps marshal
// with sorted keys so the same snapshot always serializes to the same
// bytes. Mutating the document after taking a snapshot does not affect
// the snapshot.
type Snapshot struct {
	Automation       AutomationSnapshot                 `yaml:"automation"`
	BillingAccount   string                             `yaml:"billing_account"`
	Name             string                             `yaml:"name"`
	Parent           string                             `yaml:"parent"`
	Prefix           string                             `yaml:"prefix"`
	BillingBudgets   []string                           `yaml:"billing_budgets"`
	Buckets          map[string]BucketSnapshot          `yaml:"buckets"`
	Contacts         map[string][]string                `yaml:"contacts"`
	IAM              map[string][]string                `yaml:"iam"`
	Bindings         map[string]BindingSnapshot         `yaml:"iam_bindings"`
	AdditiveBindings map[string]AdditiveBindingSnapshot `yaml:"iam_bindings_additive"`
	ByPrincipals     map[string][]string                `yaml:"iam_by_principals"`
	Labels           map[string]string                  `yaml:"labels"`
	MetricScopes     []string                           `yaml:"metric_scopes"`
	OrgPolicies      map[string]OrgPolicySnapshot       `yaml:"org_policies"`
	ServiceAccounts  map[string]ServiceAccountSnapshot  `yaml:"service_accounts"`
	EncryptionKeyIDs map[string][]string                `yaml:"service_encryption_key_ids"`
	Services         []string                           `yaml:"services"`
	SharedVPCHost    SharedVPCHostSnapshot              `yaml:"shared_vpc_host_config"`
	SharedVPCService SharedVPCServiceSnapshot           `yaml:"shared_vpc_service_project_config"`
	TagBindings      map[string][]string                `yaml:"tag_bindings"`
	VPCSC            *PerimeterSnapshot                 `yaml:"vpc_sc,omitempty"`
}

// AutomationSnapshot is the automation block. A non-empty project means
// automation generation was enabled.
type AutomationSnapshot struct {
	Project         string                            `yaml:"project"`
	Bucket          BucketSnapshot                    `yaml:"bucket"`
	ServiceAccounts map[string]ServiceAccountSnapshot `yaml:"service_accounts"`
}

// BindingSnapshot is one standard binding.
type BindingSnapshot struct {
	Members   []string  `yaml:"members"`
	Role      string    `yaml:"role"`
	Condition Condition `yaml:"condition"`
}

// AdditiveBindingSnapshot is one additive binding.
type AdditiveBindingSnapshot struct {
	Member    string    `yaml:"member"`
	Role      string    `yaml:"role"`
	Condition Condition `yaml:"condition"`
}

// BucketSnapshot is one bucket.
type BucketSnapshot struct {
	Description              string                             `yaml:"description"`
	Location                 string                             `yaml:"location"`
	Prefix                   string                             `yaml:"prefix"`
	StorageClass             string                             `yaml:"storage_class"`
	UniformBucketLevelAccess bool                               `yaml:"uniform_bucket_level_access"`
	Versioning               bool                               `yaml:"versioning"`
	Labels                   map[string]string                  `yaml:"labels"`
	IAM                      map[string][]string                `yaml:"iam"`
	Bindings                 map[string]BindingSnapshot         `yaml:"iam_bindings"`
	AdditiveBindings         map[string]AdditiveBindingSnapshot `yaml:"iam_bindings_additive"`
}

// ServiceAccountSnapshot is one service account.
type ServiceAccountSnapshot struct {
	Description       string                             `yaml:"description,omitempty"`
	DisplayName       string                             `yaml:"display_name,omitempty"`
	IAM               map[string][]string                `yaml:"iam"`
	Bindings          map[string]BindingSnapshot         `yaml:"iam_bindings"`
	AdditiveBindings  map[string]AdditiveBindingSnapshot `yaml:"iam_bindings_additive"`
	SelfRoles         []string                           `yaml:"iam_self_roles,omitempty"`
	BillingRoles      map[string][]string                `yaml:"iam_billing_roles"`
	FolderRoles       map[string][]string                `yaml:"iam_folder_roles"`
	OrganizationRoles map[string][]string                `yaml:"iam_organization_roles"`
	ProjectRoles      map[string][]string                `yaml:"iam_project_roles"`
	SARoles           map[string][]string                `yaml:"iam_sa_roles"`
	StorageRoles      map[string][]string                `yaml:"iam_storage_roles"`
}

// RuleActionSnapshot is the allow or deny half of a rule.
type RuleActionSnapshot struct {
	All    bool     `yaml:"all"`
	Values []string `yaml:"values"`
}

// RuleSnapshot is one ordered policy rule.
type RuleSnapshot struct {
	Allow     RuleActionSnapshot `yaml:"allow"`
	Deny      RuleActionSnapshot `yaml:"deny"`
	Enforce   bool               `yaml:"enforce"`
	Condition Condition          `yaml:"condition"`
}

// OrgPolicySnapshot is one organization policy with its ordered rules.
type OrgPolicySnapshot struct {
	InheritFromParent bool           `yaml:"inherit_from_parent"`
	Reset             bool           `yaml:"reset"`
	Rules             []RuleSnapshot `yaml:"rules"`
}

// SharedVPCHostSnapshot is the shared-VPC host block.
type SharedVPCHostSnapshot struct {
	Enabled         bool     `yaml:"enabled"`
	ServiceProjects []string `yaml:"service_projects"`
}

// SharedVPCServiceSnapshot is the shared-VPC service block.
type SharedVPCServiceSnapshot struct {
	HostProject           string              `yaml:"host_project"`
	NetworkUsers          []string            `yaml:"network_users"`
	ServiceAgentIAM       map[string][]string `yaml:"service_agent_iam"`
	ServiceAgentSubnetIAM map[string][]string `yaml:"service_agent_subnet_iam"`
	NetworkSubnetUsers    map[string][]string `yaml:"network_subnet_users"`
	ServiceIAMGrants      []string            `yaml:"service_iam_grants"`
}

// PerimeterSnapshot is the VPC-SC block, present only when generation
// is enabled.
type PerimeterSnapshot struct {
	PerimeterName    string   `yaml:"perimeter_name"`
	PerimeterBridges []string `yaml:"perimeter_bridges"`
	IsDryRun         bool     `yaml:"is_dry_run"`
}

// Snapshot produces a deep copy of the document suitable for handoff to
// the serialization adapter.
func (d *Document) Snapshot() *Snapshot {
	snap := &Snapshot{
		Automation: AutomationSnapshot{
			Project:         d.automation.project,
			Bucket:          snapshotBucket(d.automation.bucket),
			ServiceAccounts: snapshotAccounts(d.automation.serviceAccounts),
		},
		BillingAccount:   d.billingAccount,
		Name:             d.name,
		Parent:           d.parent,
		Prefix:           d.prefix,
		BillingBudgets:   d.billingBudgets.Values(),
		Buckets:          make(map[string]BucketSnapshot, d.buckets.Len()),
		Contacts:         d.contacts.snapshot(),
		IAM:              d.iam.snapshot(),
		Bindings:         snapshotBindings(d.bindings),
		AdditiveBindings: snapshotAdditiveBindings(d.additiveBindings),
		ByPrincipals:     d.byPrincipals.snapshot(),
		Labels:           d.labels.snapshot(),
		MetricScopes:     d.metricScopes.Values(),
		OrgPolicies:      make(map[string]OrgPolicySnapshot, d.orgPolicies.Len()),
		ServiceAccounts:  snapshotAccounts(d.serviceAccounts),
		EncryptionKeyIDs: d.encryptionKeyIDs.snapshot(),
		Services:         d.services.Values(),
		SharedVPCHost: SharedVPCHostSnapshot{
			Enabled:         d.sharedVPCHost.enabled,
			ServiceProjects: d.sharedVPCHost.serviceProjects.Values(),
		},
		SharedVPCService: SharedVPCServiceSnapshot{
			HostProject:           d.sharedVPCService.hostProject,
			NetworkUsers:          d.sharedVPCService.networkUsers.Values(),
			ServiceAgentIAM:       d.sharedVPCService.serviceAgentIAM.snapshot(),
			ServiceAgentSubnetIAM: d.sharedVPCService.serviceAgentSubnetIAM.snapshot(),
			NetworkSubnetUsers:    d.sharedVPCService.networkSubnetUsers.snapshot(),
			ServiceIAMGrants:      d.sharedVPCService.serviceIAMGrants.Values(),
		},
		TagBindings: d.tagBindings.snapshot(),
	}

	for _, name := range d.buckets.Names() {
		b, _ := d.buckets.Get(name)
		snap.Buckets[name] = snapshotBucket(b)
	}
	for _, id := range d.orgPolicies.IDs() {
		p, _ := d.orgPolicies.Get(id)
		snap.OrgPolicies[id] = snapshotPolicy(p)
	}
	if d.vpcSC.enabled {
		snap.VPCSC = &PerimeterSnapshot{
			PerimeterName:    d.vpcSC.name,
			PerimeterBridges: d.vpcSC.bridges.Values(),
			IsDryRun:         d.vpcSC.dryRun,
		}
	}
	return snap
}

func snapshotBucket(b *Bucket) BucketSnapshot {
	return BucketSnapshot{
		Description:              b.description,
		Location:                 b.location,
		Prefix:                   b.prefix,
		StorageClass:             string(b.storageClass),
		UniformBucketLevelAccess: b.uniformAccess,
		Versioning:               b.versioning,
		Labels:                   b.labels.snapshot(),
		IAM:                      b.iam.snapshot(),
		Bindings:                 snapshotBindings(b.bindings),
		AdditiveBindings:         snapshotAdditiveBindings(b.additive),
	}
}

func snapshotAccounts(s *AccountSet) map[string]ServiceAccountSnapshot {
	out := make(map[string]ServiceAccountSnapshot, s.Len())
	for _, id := range s.IDs() {
		a, _ := s.Get(id)
		out[id] = ServiceAccountSnapshot{
			Description:       a.description,
			DisplayName:       a.displayName,
			IAM:               a.iam.snapshot(),
			Bindings:          snapshotBindings(a.bindings),
			AdditiveBindings:  snapshotAdditiveBindings(a.additive),
			SelfRoles:         a.selfRoles.Values(),
			BillingRoles:      a.billingRoles.snapshot(),
			FolderRoles:       a.folderRoles.snapshot(),
			OrganizationRoles: a.organizationRoles.snapshot(),
			ProjectRoles:      a.projectRoles.snapshot(),
			SARoles:           a.saRoles.snapshot(),
			StorageRoles:      a.storageRoles.snapshot(),
		}
	}
	return out
}

func snapshotBindings(s *BindingSet) map[string]BindingSnapshot {
	out := make(map[string]BindingSnapshot, s.Len())
	for _, id := range s.IDs() {
		b, _ := s.Get(id)
		out[id] = BindingSnapshot{
			Members:   b.Members(),
			Role:      b.role,
			Condition: b.condition,
		}
	}
	return out
}

func snapshotAdditiveBindings(s *AdditiveBindingSet) map[string]AdditiveBindingSnapshot {
	out := make(map[string]AdditiveBindingSnapshot, s.Len())
	for _, id := range s.IDs() {
		b, _ := s.Get(id)
		out[id] = AdditiveBindingSnapshot{
			Member:    b.member,
			Role:      b.role,
			Condition: b.condition,
		}
	}
	return out
}

func snapshotPolicy(p *OrgPolicy) OrgPolicySnapshot {
	out := OrgPolicySnapshot{
		InheritFromParent: p.inheritFromParent,
		Reset:             p.reset,
		Rules:             make([]RuleSnapshot, 0, len(p.ruleIDs)),
	}
	for _, r := range p.Rules() {
		out.Rules = append(out.Rules, RuleSnapshot{
			Allow:     RuleActionSnapshot{All: r.Allow.All, Values: slices.Clone(r.Allow.Values)},
			Deny:      RuleActionSnapshot{All: r.Deny.All, Values: slices.Clone(r.Deny.Values)},
			Enforce:   r.Enforce,
			Condition: r.Condition,
		})
	}
	return out
}

// FromSnapshot rebuilds a document by replaying the snapshot through
// the regular mutators, so a hand-edited file is re-validated against
// the same edit-time contracts.
func FromSnapshot(snap *Snapshot) (*Document, error) {
	d := New()

	d.SetBillingAccount(snap.BillingAccount)
	d.SetName(snap.Name)
	d.SetParent(snap.Parent)
	d.SetPrefix(snap.Prefix)

	if snap.Automation.Project != "" || len(snap.Automation.ServiceAccounts) > 0 {
		d.automation.SetEnabled(true)
		d.automation.SetProject(snap.Automation.Project)
		if err := restoreBucket(d.automation.bucket, snap.Automation.Bucket); err != nil {
			return nil, fmt.Errorf("automation bucket: %w", err)
		}
		if err := restoreAccounts(d.automation.serviceAccounts, snap.Automation.ServiceAccounts); err != nil {
			return nil, fmt.Errorf("automation: %w", err)
		}
	}

	for _, v := range snap.BillingBudgets {
		if err := d.billingBudgets.Add(v); err != nil {
			return nil, fmt.Errorf("billing budgets: %w", err)
		}
	}
	for _, name := range sortedKeys(snap.Buckets) {
		b, err := d.buckets.Add(name)
		if err != nil {
			return nil, err
		}
		if err := restoreBucket(b, snap.Buckets[name]); err != nil {
			return nil, fmt.Errorf("bucket %q: %w", name, err)
		}
	}
	if err := restoreSchemaMap(d.contacts, snap.Contacts); err != nil {
		return nil, fmt.Errorf("contacts: %w", err)
	}
	if err := restoreRoleMap(d.iam, snap.IAM); err != nil {
		return nil, fmt.Errorf("iam: %w", err)
	}
	if err := restoreBindings(d.bindings, snap.Bindings); err != nil {
		return nil, fmt.Errorf("iam bindings: %w", err)
	}
	if err := restoreAdditiveBindings(d.additiveBindings, snap.AdditiveBindings); err != nil {
		return nil, fmt.Errorf("additive iam bindings: %w", err)
	}
	for _, principal := range sortedKeys(snap.ByPrincipals) {
		for _, role := range snap.ByPrincipals[principal] {
			if err := d.byPrincipals.Add(principal, role); err != nil {
				return nil, fmt.Errorf("iam by principals: %w", err)
			}
		}
	}
	for _, k := range sortedKeys(snap.Labels) {
		if err := d.labels.Set(k, snap.Labels[k]); err != nil {
			return nil, fmt.Errorf("labels: %w", err)
		}
	}
	for _, v := range snap.MetricScopes {
		if err := d.metricScopes.Add(v); err != nil {
			return nil, fmt.Errorf("metric scopes: %w", err)
		}
	}
	for _, id := range sortedKeys(snap.OrgPolicies) {
		p, err := d.orgPolicies.Add(id)
		if err != nil {
			return nil, err
		}
		ps := snap.OrgPolicies[id]
		p.SetInheritFromParent(ps.InheritFromParent)
		p.SetReset(ps.Reset)
		for _, rs := range ps.Rules {
			_, r := p.AddRule()
			r.Allow = RuleAction{All: rs.Allow.All, Values: slices.Clone(rs.Allow.Values)}
			r.Deny = RuleAction{All: rs.Deny.All, Values: slices.Clone(rs.Deny.Values)}
			r.Enforce = rs.Enforce
			r.Condition = rs.Condition
		}
	}
	if err := restoreAccounts(d.serviceAccounts, snap.ServiceAccounts); err != nil {
		return nil, err
	}
	if err := restoreSchemaMap(d.encryptionKeyIDs, snap.EncryptionKeyIDs); err != nil {
		return nil, fmt.Errorf("service encryption key ids: %w", err)
	}
	for _, v := range snap.Services {
		if err := d.services.Add(v); err != nil {
			return nil, fmt.Errorf("services: %w", err)
		}
	}
	d.sharedVPCHost.SetEnabled(snap.SharedVPCHost.Enabled)
	for _, v := range snap.SharedVPCHost.ServiceProjects {
		if err := d.sharedVPCHost.AddServiceProject(v); err != nil {
			return nil, fmt.Errorf("shared VPC host: %w", err)
		}
	}
	svc := snap.SharedVPCService
	d.sharedVPCService.SetHostProject(svc.HostProject)
	for _, v := range svc.NetworkUsers {
		if err := d.sharedVPCService.networkUsers.Add(v); err != nil {
			return nil, fmt.Errorf("network users: %w", err)
		}
	}
	if err := restoreSchemaMap(d.sharedVPCService.serviceAgentIAM, svc.ServiceAgentIAM); err != nil {
		return nil, fmt.Errorf("service agent iam: %w", err)
	}
	if err := restoreSchemaMap(d.sharedVPCService.serviceAgentSubnetIAM, svc.ServiceAgentSubnetIAM); err != nil {
		return nil, fmt.Errorf("service agent subnet iam: %w", err)
	}
	if err := restoreSchemaMap(d.sharedVPCService.networkSubnetUsers, svc.NetworkSubnetUsers); err != nil {
		return nil, fmt.Errorf("network subnet users: %w", err)
	}
	for _, v := range svc.ServiceIAMGrants {
		if err := d.sharedVPCService.serviceIAMGrants.Add(v); err != nil {
			return nil, fmt.Errorf("service iam grants: %w", err)
		}
	}
	if err := restoreSchemaMap(d.tagBindings, snap.TagBindings); err != nil {
		return nil, fmt.Errorf("tag bindings: %w", err)
	}
	if snap.VPCSC != nil {
		d.vpcSC.SetEnabled(true)
		d.vpcSC.SetName(snap.VPCSC.PerimeterName)
		d.vpcSC.SetDryRun(snap.VPCSC.IsDryRun)
		for _, v := range snap.VPCSC.PerimeterBridges {
			if err := d.vpcSC.AddBridge(v); err != nil {
				return nil, fmt.Errorf("perimeter bridges: %w", err)
			}
		}
	}

	return d, nil
}

func restoreBucket(b *Bucket, snap BucketSnapshot) error {
	b.SetDescription(snap.Description)
	b.SetLocation(snap.Location)
	b.SetPrefix(snap.Prefix)
	if snap.StorageClass != "" {
		if err := b.SetStorageClass(StorageClass(snap.StorageClass)); err != nil {
			return err
		}
	}
	b.SetUniformAccess(snap.UniformBucketLevelAccess)
	b.SetVersioning(snap.Versioning)
	for _, k := range sortedKeys(snap.Labels) {
		if err := b.labels.Set(k, snap.Labels[k]); err != nil {
			return err
		}
	}
	if err := restoreRoleMap(b.iam, snap.IAM); err != nil {
		return err
	}
	if err := restoreBindings(b.bindings, snap.Bindings); err != nil {
		return err
	}
	return restoreAdditiveBindings(b.additive, snap.AdditiveBindings)
}

func restoreAccounts(s *AccountSet, snaps map[string]ServiceAccountSnapshot) error {
	for _, id := range sortedKeys(snaps) {
		a, err := s.Add(id)
		if err != nil {
			return err
		}
		snap := snaps[id]
		a.SetDescription(snap.Description)
		a.SetDisplayName(snap.DisplayName)
		if err := restoreRoleMap(a.iam, snap.IAM); err != nil {
			return fmt.Errorf("service account %q: %w", id, err)
		}
		if err := restoreBindings(a.bindings, snap.Bindings); err != nil {
			return fmt.Errorf("service account %q: %w", id, err)
		}
		if err := restoreAdditiveBindings(a.additive, snap.AdditiveBindings); err != nil {
			return fmt.Errorf("service account %q: %w", id, err)
		}
		for _, v := range snap.SelfRoles {
			if err := a.selfRoles.Add(v); err != nil {
				return fmt.Errorf("service account %q: %w", id, err)
			}
		}
		scopes := []struct {
			dst *SchemaMap
			src map[string][]string
		}{
			{a.billingRoles, snap.BillingRoles},
			{a.folderRoles, snap.FolderRoles},
			{a.organizationRoles, snap.OrganizationRoles},
			{a.projectRoles, snap.ProjectRoles},
			{a.saRoles, snap.SARoles},
			{a.storageRoles, snap.StorageRoles},
		}
		for _, sc := range scopes {
			if err := restoreSchemaMap(sc.dst, sc.src); err != nil {
				return fmt.Errorf("service account %q: %w", id, err)
			}
		}
	}
	return nil
}

func restoreRoleMap(m *RoleMap, snap map[string][]string) error {
	for _, role := range sortedKeys(snap) {
		if err := m.AddRole(role); err != nil {
			return err
		}
		if len(snap[role]) > 0 {
			if err := m.SetMembers(role, strings.Join(snap[role], ", ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func restoreBindings(s *BindingSet, snaps map[string]BindingSnapshot) error {
	for _, id := range sortedKeys(snaps) {
		snap := snaps[id]
		if _, err := s.Add(id); err != nil {
			return err
		}
		if snap.Role != "" {
			if err := s.SetRole(id, snap.Role); err != nil {
				return err
			}
		}
		if len(snap.Members) > 0 {
			if err := s.SetMembers(id, strings.Join(snap.Members, ", ")); err != nil {
				return err
			}
		}
		if err := s.SetCondition(id, snap.Condition); err != nil {
			return err
		}
	}
	return nil
}

func restoreAdditiveBindings(s *AdditiveBindingSet, snaps map[string]AdditiveBindingSnapshot) error {
	for _, id := range sortedKeys(snaps) {
		snap := snaps[id]
		if _, err := s.Add(id); err != nil {
			return err
		}
		if snap.Role != "" {
			if err := s.SetRole(id, snap.Role); err != nil {
				return err
			}
		}
		if snap.Member != "" {
			if err := s.SetMember(id, snap.Member); err != nil {
				return err
			}
		}
		if err := s.SetCondition(id, snap.Condition); err != nil {
			return err
		}
	}
	return nil
}

func restoreSchemaMap(m *SchemaMap, snap map[string][]string) error {
	for _, id := range sortedKeys(snap) {
		if err := m.Add(id, ""); err != nil {
			return err
		}
		for _, v := range snap[id] {
			if err := m.Append(id, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
