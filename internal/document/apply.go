package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// EditCommand is one scripted mutation against a document. Entity picks
// the collection, Op the operation, ID the element and Field/Value the
// scalar being edited. Nested scopes (a bucket's bindings, a service
// account's role map, org policy rules) put the owner in ID and the
// element in Field. Structured edits (conditions, bucket attributes,
// policy rules) ride in Payload and are decoded into typed patches.
type EditCommand struct {
	Entity  string         `yaml:"entity"`
	Op      string         `yaml:"op"`
	ID      string         `yaml:"id"`
	Field   string         `yaml:"field"`
	Value   string         `yaml:"value"`
	Payload map[string]any `yaml:"payload,omitempty"`
}

type conditionPatch struct {
	Expression  *string `mapstructure:"expression"`
	Title       *string `mapstructure:"title"`
	Description *string `mapstructure:"description"`
	Location    *string `mapstructure:"location"`
}

type bucketPatch struct {
	Description              *string `mapstructure:"description"`
	Location                 *string `mapstructure:"location"`
	Prefix                   *string `mapstructure:"prefix"`
	StorageClass             *string `mapstructure:"storage_class"`
	UniformBucketLevelAccess *bool   `mapstructure:"uniform_bucket_level_access"`
	Versioning               *bool   `mapstructure:"versioning"`
}

type rulePatch struct {
	AllowAll    *bool    `mapstructure:"allow_all"`
	AllowValues []string `mapstructure:"allow_values"`
	DenyAll     *bool    `mapstructure:"deny_all"`
	DenyValues  []string `mapstructure:"deny_values"`
	Enforce     *bool    `mapstructure:"enforce"`
	Expression  *string  `mapstructure:"condition_expression"`
	Title       *string  `mapstructure:"condition_title"`
	Description *string  `mapstructure:"condition_description"`
	Location    *string  `mapstructure:"condition_location"`
}

func decodePayload(payload map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(payload); err != nil {
		return fmt.Errorf("%w: payload: %v", ErrInvalidFormat, err)
	}
	return nil
}

// Apply executes one edit command against the document. A failed
// command leaves the document exactly as it was.
func (d *Document) Apply(cmd EditCommand) error {
	switch cmd.Entity {
	case "project":
		return d.applyProject(cmd)
	case "label":
		return applyLabels(d.labels, cmd)
	case "service":
		return applyList(d.services, cmd)
	case "billing-budget":
		return applyList(d.billingBudgets, cmd)
	case "metric-scope":
		return applyList(d.metricScopes, cmd)
	case "iam":
		return applyRoleMap(d.iam, cmd)
	case "binding":
		return applyBindings(d.bindings, cmd)
	case "additive-binding":
		return applyAdditiveBindings(d.additiveBindings, cmd)
	case "by-principal":
		return d.applyByPrincipal(cmd)
	case "contact":
		return applySchemaMap(d.contacts, cmd)
	case "tag-binding":
		return applySchemaMap(d.tagBindings, cmd)
	case "encryption-key":
		return applySchemaMap(d.encryptionKeyIDs, cmd)
	case "bucket":
		return d.applyBucket(cmd)
	case "bucket-iam", "bucket-binding", "bucket-additive-binding":
		b, ok := d.buckets.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: bucket %q", ErrNotFound, cmd.ID)
		}
		return applyScoped(cmd, strings.TrimPrefix(cmd.Entity, "bucket-"), b.iam, b.bindings, b.additive)
	case "service-account":
		return applyAccount(d.serviceAccounts, cmd)
	case "service-account-iam", "service-account-binding", "service-account-additive-binding":
		a, ok := d.serviceAccounts.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: service account %q", ErrNotFound, cmd.ID)
		}
		return applyScoped(cmd, strings.TrimPrefix(cmd.Entity, "service-account-"), a.iam, a.bindings, a.additive)
	case "automation-bucket-iam", "automation-bucket-binding", "automation-bucket-additive-binding":
		if !d.automation.enabled {
			return fmt.Errorf("%w: automation", ErrDisabled)
		}
		b := d.automation.bucket
		return applyScoped(cmd, strings.TrimPrefix(cmd.Entity, "automation-bucket-"), b.iam, b.bindings, b.additive)
	case "automation-service-account-iam", "automation-service-account-binding", "automation-service-account-additive-binding":
		if !d.automation.enabled {
			return fmt.Errorf("%w: automation", ErrDisabled)
		}
		a, ok := d.automation.serviceAccounts.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: service account %q", ErrNotFound, cmd.ID)
		}
		return applyScoped(cmd, strings.TrimPrefix(cmd.Entity, "automation-service-account-"), a.iam, a.bindings, a.additive)
	case "org-policy":
		return d.applyOrgPolicy(cmd)
	case "automation":
		return d.applyAutomation(cmd)
	case "shared-vpc-host":
		return d.applySharedVPCHost(cmd)
	case "shared-vpc-service":
		return d.applySharedVPCService(cmd)
	case "shared-vpc-agent-iam":
		return applySchemaMap(d.sharedVPCService.serviceAgentIAM, cmd)
	case "shared-vpc-agent-subnet-iam":
		return applySchemaMap(d.sharedVPCService.serviceAgentSubnetIAM, cmd)
	case "shared-vpc-subnet-users":
		return applySchemaMap(d.sharedVPCService.networkSubnetUsers, cmd)
	case "vpc-sc":
		return d.applyVPCSC(cmd)
	default:
		return fmt.Errorf("%w: unknown entity %q", ErrInvalidFormat, cmd.Entity)
	}
}

func (d *Document) applyProject(cmd EditCommand) error {
	if cmd.Op != "set" {
		return opError(cmd)
	}
	switch cmd.Field {
	case "billing_account":
		d.SetBillingAccount(cmd.Value)
	case "name":
		d.SetName(cmd.Value)
	case "parent":
		d.SetParent(cmd.Value)
	case "prefix":
		d.SetPrefix(cmd.Value)
	default:
		return fieldError(cmd)
	}
	return nil
}

func applyLabels(m *LabelMap, cmd EditCommand) error {
	switch cmd.Op {
	case "set":
		return m.Set(cmd.ID, cmd.Value)
	case "remove":
		return m.Remove(cmd.ID)
	default:
		return opError(cmd)
	}
}

func applyList(l *StringList, cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		return l.Add(cmd.Value)
	case "remove":
		return l.Remove(cmd.Value)
	default:
		return opError(cmd)
	}
}

func applyRoleMap(m *RoleMap, cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		return m.AddRole(cmd.ID)
	case "set-members":
		return m.SetMembers(cmd.ID, cmd.Value)
	case "remove":
		return m.RemoveRole(cmd.ID)
	default:
		return opError(cmd)
	}
}

func applyBindings(s *BindingSet, cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		_, err := s.Add(cmd.ID)
		return err
	case "set-role":
		return s.SetRole(cmd.ID, cmd.Value)
	case "set-members":
		return s.SetMembers(cmd.ID, cmd.Value)
	case "set-condition":
		b, ok := s.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: binding %q", ErrNotFound, cmd.ID)
		}
		cond, err := patchCondition(b.Condition(), cmd.Payload)
		if err != nil {
			return err
		}
		return s.SetCondition(cmd.ID, cond)
	case "remove":
		return s.Remove(cmd.ID)
	default:
		return opError(cmd)
	}
}

func applyAdditiveBindings(s *AdditiveBindingSet, cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		_, err := s.Add(cmd.ID)
		return err
	case "set-role":
		return s.SetRole(cmd.ID, cmd.Value)
	case "set-member":
		return s.SetMember(cmd.ID, cmd.Value)
	case "set-condition":
		b, ok := s.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: binding %q", ErrNotFound, cmd.ID)
		}
		cond, err := patchCondition(b.Condition(), cmd.Payload)
		if err != nil {
			return err
		}
		return s.SetCondition(cmd.ID, cond)
	case "remove":
		return s.Remove(cmd.ID)
	default:
		return opError(cmd)
	}
}

func (d *Document) applyByPrincipal(cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		return d.byPrincipals.Add(cmd.ID, cmd.Value)
	case "remove-role":
		return d.byPrincipals.RemoveRole(cmd.ID, cmd.Value)
	case "remove":
		return d.byPrincipals.RemovePrincipal(cmd.ID)
	default:
		return opError(cmd)
	}
}

func applySchemaMap(m *SchemaMap, cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		return m.Add(cmd.ID, cmd.Value)
	case "set-values":
		return m.SetValues(cmd.ID, cmd.Value)
	case "append":
		return m.Append(cmd.ID, cmd.Value)
	case "remove-value":
		return m.RemoveValue(cmd.ID, cmd.Value)
	case "remove":
		return m.Remove(cmd.ID)
	default:
		return opError(cmd)
	}
}

func (d *Document) applyBucket(cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		_, err := d.buckets.Add(cmd.ID)
		return err
	case "remove":
		return d.buckets.Remove(cmd.ID)
	case "set":
		b, ok := d.buckets.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: bucket %q", ErrNotFound, cmd.ID)
		}
		return patchBucket(b, cmd.Payload)
	case "set-label":
		b, ok := d.buckets.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: bucket %q", ErrNotFound, cmd.ID)
		}
		return b.Labels().Set(cmd.Field, cmd.Value)
	case "remove-label":
		b, ok := d.buckets.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: bucket %q", ErrNotFound, cmd.ID)
		}
		return b.Labels().Remove(cmd.Field)
	default:
		return opError(cmd)
	}
}

func applyAccount(s *AccountSet, cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		_, err := s.Add(cmd.ID)
		return err
	case "remove":
		return s.Remove(cmd.ID)
	case "set":
		a, ok := s.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: service account %q", ErrNotFound, cmd.ID)
		}
		switch cmd.Field {
		case "description":
			a.SetDescription(cmd.Value)
		case "display_name":
			a.SetDisplayName(cmd.Value)
		default:
			return fieldError(cmd)
		}
		return nil
	default:
		return opError(cmd)
	}
}

func (d *Document) applyOrgPolicy(cmd EditCommand) error {
	switch cmd.Op {
	case "add":
		_, err := d.orgPolicies.Add(cmd.ID)
		return err
	case "remove":
		return d.orgPolicies.Remove(cmd.ID)
	case "set":
		p, ok := d.orgPolicies.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: policy %q", ErrNotFound, cmd.ID)
		}
		switch cmd.Field {
		case "inherit_from_parent":
			v, err := parseBoolValue(cmd)
			if err != nil {
				return err
			}
			p.SetInheritFromParent(v)
		case "reset":
			v, err := parseBoolValue(cmd)
			if err != nil {
				return err
			}
			p.SetReset(v)
		default:
			return fieldError(cmd)
		}
		return nil
	case "add-rule":
		p, ok := d.orgPolicies.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: policy %q", ErrNotFound, cmd.ID)
		}
		// Validate the payload before the rule exists so a bad edit
		// does not leave a half-built rule behind.
		if err := patchRule(&Rule{}, cmd.Payload); err != nil {
			return err
		}
		_, r := p.AddRule()
		return patchRule(r, cmd.Payload)
	case "set-rule":
		p, ok := d.orgPolicies.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: policy %q", ErrNotFound, cmd.ID)
		}
		r, ok := p.Rule(cmd.Field)
		if !ok {
			return fmt.Errorf("rule %w: %q", ErrNotFound, cmd.Field)
		}
		return patchRule(r, cmd.Payload)
	case "remove-rule":
		p, ok := d.orgPolicies.Get(cmd.ID)
		if !ok {
			return fmt.Errorf("%w: policy %q", ErrNotFound, cmd.ID)
		}
		return p.RemoveRule(cmd.Field)
	default:
		return opError(cmd)
	}
}

func (d *Document) applyAutomation(cmd EditCommand) error {
	switch cmd.Op {
	case "enable":
		d.automation.SetEnabled(true)
		return nil
	case "disable":
		d.automation.SetEnabled(false)
		return nil
	case "set":
		if cmd.Field != "project" {
			return fieldError(cmd)
		}
		d.automation.SetProject(cmd.Value)
		return nil
	case "set-bucket":
		return patchBucket(d.automation.bucket, cmd.Payload)
	default:
		return opError(cmd)
	}
}

func (d *Document) applySharedVPCHost(cmd EditCommand) error {
	switch cmd.Op {
	case "enable":
		d.sharedVPCHost.SetEnabled(true)
		return nil
	case "disable":
		d.sharedVPCHost.SetEnabled(false)
		return nil
	case "add-service-project":
		return d.sharedVPCHost.AddServiceProject(cmd.Value)
	case "remove-service-project":
		return d.sharedVPCHost.RemoveServiceProject(cmd.Value)
	default:
		return opError(cmd)
	}
}

func (d *Document) applySharedVPCService(cmd EditCommand) error {
	switch cmd.Op {
	case "set":
		if cmd.Field != "host_project" {
			return fieldError(cmd)
		}
		d.sharedVPCService.SetHostProject(cmd.Value)
		return nil
	case "add-network-user":
		return d.sharedVPCService.networkUsers.Add(cmd.Value)
	case "remove-network-user":
		return d.sharedVPCService.networkUsers.Remove(cmd.Value)
	case "add-service-grant":
		return d.sharedVPCService.serviceIAMGrants.Add(cmd.Value)
	case "remove-service-grant":
		return d.sharedVPCService.serviceIAMGrants.Remove(cmd.Value)
	default:
		return opError(cmd)
	}
}

// applyScoped runs a role-map, binding or additive-binding edit against
// a nested IAM scope (a bucket or a service account). ID addresses the
// owning entity, so the element id rides in Field and is shifted into
// ID before the flat handlers see the command.
func applyScoped(cmd EditCommand, kind string, roles *RoleMap, std *BindingSet, add *AdditiveBindingSet) error {
	inner := cmd
	inner.ID = cmd.Field
	switch kind {
	case "iam":
		return applyRoleMap(roles, inner)
	case "binding":
		return applyBindings(std, inner)
	case "additive-binding":
		return applyAdditiveBindings(add, inner)
	default:
		return fmt.Errorf("%w: unknown entity %q", ErrInvalidFormat, cmd.Entity)
	}
}

func (d *Document) applyVPCSC(cmd EditCommand) error {
	switch cmd.Op {
	case "enable":
		d.vpcSC.SetEnabled(true)
		return nil
	case "disable":
		d.vpcSC.SetEnabled(false)
		return nil
	case "set":
		switch cmd.Field {
		case "perimeter_name":
			d.vpcSC.SetName(cmd.Value)
		case "is_dry_run":
			v, err := parseBoolValue(cmd)
			if err != nil {
				return err
			}
			d.vpcSC.SetDryRun(v)
		default:
			return fieldError(cmd)
		}
		return nil
	case "add-bridge":
		return d.vpcSC.AddBridge(cmd.Value)
	case "remove-bridge":
		return d.vpcSC.RemoveBridge(cmd.Value)
	default:
		return opError(cmd)
	}
}

func patchCondition(base Condition, payload map[string]any) (Condition, error) {
	var p conditionPatch
	if err := decodePayload(payload, &p); err != nil {
		return Condition{}, err
	}
	if p.Expression != nil {
		base.Expression = *p.Expression
	}
	if p.Title != nil {
		base.Title = *p.Title
	}
	if p.Description != nil {
		base.Description = *p.Description
	}
	if p.Location != nil {
		base.Location = *p.Location
	}
	return base, nil
}

func patchBucket(b *Bucket, payload map[string]any) error {
	var p bucketPatch
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	if p.StorageClass != nil {
		if err := b.SetStorageClass(StorageClass(*p.StorageClass)); err != nil {
			return err
		}
	}
	if p.Description != nil {
		b.SetDescription(*p.Description)
	}
	if p.Location != nil {
		b.SetLocation(*p.Location)
	}
	if p.Prefix != nil {
		b.SetPrefix(*p.Prefix)
	}
	if p.UniformBucketLevelAccess != nil {
		b.SetUniformAccess(*p.UniformBucketLevelAccess)
	}
	if p.Versioning != nil {
		b.SetVersioning(*p.Versioning)
	}
	return nil
}

func patchRule(r *Rule, payload map[string]any) error {
	var p rulePatch
	if err := decodePayload(payload, &p); err != nil {
		return err
	}
	if p.AllowAll != nil {
		r.Allow.All = *p.AllowAll
	}
	if p.AllowValues != nil {
		r.Allow.Values = p.AllowValues
	}
	if p.DenyAll != nil {
		r.Deny.All = *p.DenyAll
	}
	if p.DenyValues != nil {
		r.Deny.Values = p.DenyValues
	}
	if p.Enforce != nil {
		r.Enforce = *p.Enforce
	}
	if p.Expression != nil {
		r.Condition.Expression = *p.Expression
	}
	if p.Title != nil {
		r.Condition.Title = *p.Title
	}
	if p.Description != nil {
		r.Condition.Description = *p.Description
	}
	if p.Location != nil {
		r.Condition.Location = *p.Location
	}
	return nil
}

func parseBoolValue(cmd EditCommand) (bool, error) {
	v, err := strconv.ParseBool(cmd.Value)
	if err != nil {
		return false, fmt.Errorf("%w: field %q wants a boolean, got %q", ErrInvalidFormat, cmd.Field, cmd.Value)
	}
	return v, nil
}

func opError(cmd EditCommand) error {
	return fmt.Errorf("%w: unknown op %q for entity %q", ErrInvalidFormat, cmd.Op, cmd.Entity)
}

func fieldError(cmd EditCommand) error {
	return fmt.Errorf("%w: unknown field %q for entity %q", ErrInvalidFormat, cmd.Field, cmd.Entity)
}
