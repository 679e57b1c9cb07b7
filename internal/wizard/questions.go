package wizard

import (
	"context"

	"github.com/charmbracelet/huh"

	"github.com/Gerhatlevi/project-factory/internal/document"
	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// runIdentityGroup prompts for the four project scalars.
func runIdentityGroup(ctx context.Context, doc *document.Document) error {
	var name, parent, prefix, billing string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Description("Lowercase letters, numbers and hyphens").
				Placeholder("my-project").
				Value(&name).
				Validate(validateSlug),
			huh.NewInput().
				Title("Parent").
				Description("Folder or organization the project lives under").
				Placeholder("folders/1234567890").
				Value(&parent),
			huh.NewInput().
				Title("Prefix").
				Description("Resource name prefix (optional)").
				Value(&prefix),
			huh.NewInput().
				Title("Billing Account").
				Placeholder("012345-ABCDEF-678901").
				Value(&billing),
		).Title("Project Identity"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	doc.SetName(name)
	doc.SetParent(parent)
	doc.SetPrefix(prefix)
	doc.SetBillingAccount(billing)
	return nil
}

// runServicesGroup prompts for the enabled service APIs as one batch.
func runServicesGroup(ctx context.Context, doc *document.Document) error {
	var raw string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Services").
				Description("APIs to enable, comma or newline separated. Leave empty to skip.").
				Placeholder("compute.googleapis.com, storage.googleapis.com").
				Value(&raw).
				Validate(validateOptional(validateServiceBatch)),
		).Title("Service APIs"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	for _, svc := range validate.SplitBatch(raw) {
		if err := doc.Services().Add(svc); err != nil {
			return err
		}
	}
	return nil
}

// runLabelsGroup collects labels one pair at a time.
func runLabelsGroup(ctx context.Context, labels *document.LabelMap, title string) error {
	for {
		var add bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add a label?").
					Value(&add),
			).Title(title),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var key, value string
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Key").
					Value(&key).
					Validate(validateRequired),
				huh.NewInput().
					Title("Value").
					Value(&value).
					Validate(validateRequired),
			).Title(title),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if err := labels.Set(key, value); err != nil {
			return err
		}
	}
}

// runIAMGroup collects authoritative role grants and both binding kinds
// for one scope (the project, a bucket or a service account).
func runIAMGroup(ctx context.Context, scope string, iam *document.RoleMap, std *document.BindingSet, add *document.AdditiveBindingSet) error {
	for {
		var more bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Grant a role?").
					Value(&more),
			).Title(scope+": IAM"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !more {
			break
		}

		var role, members string
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Role").
					Placeholder("roles/viewer").
					Value(&role).
					Validate(validateRole),
				huh.NewText().
					Title("Members").
					Description("Comma or newline separated. Leave empty to fill in later.").
					Value(&members).
					Validate(validateOptional(validatePrincipalBatch)),
			).Title(scope+": IAM"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if err := iam.AddRole(role); err != nil {
			return err
		}
		if members != "" {
			if err := iam.SetMembers(role, members); err != nil {
				return err
			}
		}
	}

	// Bindings need at least one role to reference.
	if iam.Len() == 0 {
		return nil
	}
	if err := runBindingLoop(ctx, scope, iam, std); err != nil {
		return err
	}
	return runAdditiveBindingLoop(ctx, scope, iam, add)
}

func runBindingLoop(ctx context.Context, scope string, iam *document.RoleMap, std *document.BindingSet) error {
	for {
		var more bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add a conditional binding?").
					Value(&more),
			).Title(scope+": Bindings"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !more {
			return nil
		}

		var id, role, members string
		role = iam.Roles()[0]
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Binding ID").
					Value(&id).
					Validate(validateSlugExt),
				huh.NewSelect[string]().
					Title("Role").
					Options(huh.NewOptions(iam.Roles()...)...).
					Value(&role),
				huh.NewText().
					Title("Members").
					Value(&members).
					Validate(validateOptional(validatePrincipalBatch)),
			).Title(scope+": Bindings"),
		).RunWithContext(ctx); err != nil {
			return err
		}

		if _, err := std.Add(id); err != nil {
			return err
		}
		if err := std.SetRole(id, role); err != nil {
			return err
		}
		if members != "" {
			if err := std.SetMembers(id, members); err != nil {
				return err
			}
		}

		cond, err := promptCondition(ctx, scope, true)
		if err != nil {
			return err
		}
		if err := std.SetCondition(id, cond); err != nil {
			return err
		}
	}
}

func runAdditiveBindingLoop(ctx context.Context, scope string, iam *document.RoleMap, add *document.AdditiveBindingSet) error {
	for {
		var more bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add an additive binding?").
					Value(&more),
			).Title(scope+": Additive Bindings"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !more {
			return nil
		}

		var id, role, member string
		role = iam.Roles()[0]
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Binding ID").
					Value(&id).
					Validate(validateSlugExt),
				huh.NewSelect[string]().
					Title("Role").
					Options(huh.NewOptions(iam.Roles()...)...).
					Value(&role),
				huh.NewInput().
					Title("Member").
					Value(&member).
					Validate(validateOptional(validatePrincipal)),
			).Title(scope+": Additive Bindings"),
		).RunWithContext(ctx); err != nil {
			return err
		}

		if _, err := add.Add(id); err != nil {
			return err
		}
		if err := add.SetRole(id, role); err != nil {
			return err
		}
		if member != "" {
			if err := add.SetMember(id, member); err != nil {
				return err
			}
		}

		cond, err := promptCondition(ctx, scope, true)
		if err != nil {
			return err
		}
		if err := add.SetCondition(id, cond); err != nil {
			return err
		}
	}
}

// promptCondition collects a conditional-access expression. Bindings
// always get one because a binding without a complete condition cannot
// be saved; policy rules may skip it through the leading confirm.
func promptCondition(ctx context.Context, scope string, required bool) (document.Condition, error) {
	if !required {
		var want bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Attach a condition?").
					Value(&want),
			).Title(scope),
		).RunWithContext(ctx); err != nil {
			return document.Condition{}, err
		}
		if !want {
			return document.Condition{}, nil
		}
	}

	var cond document.Condition
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Expression").
				Placeholder(`resource.name.startsWith("projects/")`).
				Value(&cond.Expression).
				Validate(validateRequired),
			huh.NewInput().
				Title("Title").
				Value(&cond.Title).
				Validate(validateRequired),
			huh.NewInput().
				Title("Description (optional)").
				Value(&cond.Description),
		).Title(scope + ": Condition"),
	).RunWithContext(ctx)
	return cond, err
}

// runBucketAttributes prompts for one bucket's scalar attributes and
// labels, then its IAM scope.
func runBucketAttributes(ctx context.Context, name string, b *document.Bucket) error {
	var (
		description, location, prefix string

		storageClass = document.StorageStandard
		uniform      bool
		versioning   bool
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&description),
			huh.NewInput().
				Title("Location").
				Placeholder("EU").
				Value(&location),
			huh.NewInput().
				Title("Prefix").
				Value(&prefix),
			huh.NewSelect[document.StorageClass]().
				Title("Storage Class").
				Options(huh.NewOptions(document.ValidStorageClasses()...)...).
				Value(&storageClass),
			huh.NewConfirm().
				Title("Uniform bucket-level access?").
				Value(&uniform),
			huh.NewConfirm().
				Title("Object versioning?").
				Value(&versioning),
		).Title("Bucket "+name),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	b.SetDescription(description)
	b.SetLocation(location)
	b.SetPrefix(prefix)
	if err := b.SetStorageClass(storageClass); err != nil {
		return err
	}
	b.SetUniformAccess(uniform)
	b.SetVersioning(versioning)

	if err := runLabelsGroup(ctx, b.Labels(), "Bucket "+name+": Labels"); err != nil {
		return err
	}
	return runIAMGroup(ctx, "Bucket "+name, b.IAM(), b.Bindings(), b.AdditiveBindings())
}

// runBucketsGroup collects user buckets.
func runBucketsGroup(ctx context.Context, doc *document.Document) error {
	for {
		var add bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add a storage bucket?").
					Value(&add),
			).Title("Buckets"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var name string
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Bucket Name").
					Value(&name).
					Validate(validateSlug),
			).Title("Buckets"),
		).RunWithContext(ctx); err != nil {
			return err
		}

		b, err := doc.Buckets().Add(name)
		if err != nil {
			return err
		}
		if err := runBucketAttributes(ctx, name, b); err != nil {
			return err
		}
	}
}

// runServiceAccountsGroup collects service accounts for one set. The
// top-level set takes a display name and self roles; automation-owned
// accounts take a description instead.
func runServiceAccountsGroup(ctx context.Context, set *document.AccountSet, title string, topLevel bool) error {
	for {
		var add bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add a service account?").
					Value(&add),
			).Title(title),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var id, text, selfRoles string
		fields := []huh.Field{
			huh.NewInput().
				Title("Account ID").
				Value(&id).
				Validate(validateSlug),
		}
		if topLevel {
			fields = append(fields,
				huh.NewInput().
					Title("Display Name").
					Value(&text),
				huh.NewText().
					Title("Self Roles").
					Description("Roles the account holds on itself. Leave empty to skip.").
					Value(&selfRoles).
					Validate(validateOptional(validateRoleBatch)),
			)
		} else {
			fields = append(fields,
				huh.NewInput().
					Title("Description").
					Value(&text),
			)
		}
		if err := huh.NewForm(
			huh.NewGroup(fields...).Title(title),
		).RunWithContext(ctx); err != nil {
			return err
		}

		a, err := set.Add(id)
		if err != nil {
			return err
		}
		if topLevel {
			a.SetDisplayName(text)
			for _, role := range validate.SplitBatch(selfRoles) {
				if err := a.SelfRoles().Add(role); err != nil {
					return err
				}
			}
		} else {
			a.SetDescription(text)
		}
		if err := runIAMGroup(ctx, "Account "+id, a.IAM(), a.Bindings(), a.AdditiveBindings()); err != nil {
			return err
		}
	}
}

// runOrgPoliciesGroup collects organization policies and their rules.
func runOrgPoliciesGroup(ctx context.Context, doc *document.Document) error {
	for {
		var add bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add an organization policy?").
					Value(&add),
			).Title("Organization Policies"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var (
			id      string
			inherit bool
			reset   bool
		)
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Constraint").
					Placeholder("iam.allowedPolicyMemberDomains").
					Value(&id).
					Validate(validatePolicyID),
				huh.NewConfirm().
					Title("Inherit from parent?").
					Value(&inherit),
				huh.NewConfirm().
					Title("Reset to default?").
					Value(&reset),
			).Title("Organization Policies"),
		).RunWithContext(ctx); err != nil {
			return err
		}

		p, err := doc.OrgPolicies().Add(id)
		if err != nil {
			return err
		}
		p.SetInheritFromParent(inherit)
		p.SetReset(reset)

		if err := runRuleLoop(ctx, id, p); err != nil {
			return err
		}
	}
}

func runRuleLoop(ctx context.Context, constraint string, p *document.OrgPolicy) error {
	for {
		var add bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add a rule?").
					Value(&add),
			).Title("Policy "+constraint),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var (
			enforce               = true
			allowAll, denyAll     bool
			allowValues, denyVals string
		)
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Enforce?").
					Value(&enforce),
				huh.NewConfirm().
					Title("Allow all?").
					Value(&allowAll),
				huh.NewText().
					Title("Allowed Values").
					Description("Ignored when allowing all. Leave empty to skip.").
					Value(&allowValues),
				huh.NewConfirm().
					Title("Deny all?").
					Value(&denyAll),
				huh.NewText().
					Title("Denied Values").
					Description("Ignored when denying all. Leave empty to skip.").
					Value(&denyVals),
			).Title("Policy "+constraint),
		).RunWithContext(ctx); err != nil {
			return err
		}

		_, r := p.AddRule()
		r.Enforce = enforce
		r.Allow = document.RuleAction{All: allowAll, Values: validate.SplitBatch(allowValues)}
		r.Deny = document.RuleAction{All: denyAll, Values: validate.SplitBatch(denyVals)}

		cond, err := promptCondition(ctx, "Policy "+constraint, false)
		if err != nil {
			return err
		}
		r.Condition = cond
	}
}

// runAutomationGroup optionally enables automation generation and
// configures its project, bucket and owned accounts.
func runAutomationGroup(ctx context.Context, doc *document.Document) error {
	var enable bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate automation resources?").
				Description("An automation project with a state bucket and dedicated service accounts").
				Value(&enable),
		).Title("Automation"),
	).RunWithContext(ctx); err != nil {
		return err
	}
	doc.Automation().SetEnabled(enable)
	if !enable {
		return nil
	}

	var project string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Automation Project").
				Value(&project).
				Validate(validateRequired),
		).Title("Automation"),
	).RunWithContext(ctx); err != nil {
		return err
	}
	doc.Automation().SetProject(project)

	if err := runBucketAttributes(ctx, "automation", doc.Automation().Bucket()); err != nil {
		return err
	}
	return runServiceAccountsGroup(ctx, doc.Automation().ServiceAccounts(), "Automation Service Accounts", false)
}

// runNetworkingGroup configures shared VPC host and service sides.
func runNetworkingGroup(ctx context.Context, doc *document.Document) error {
	var host bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Act as shared VPC host?").
				Value(&host),
		).Title("Shared VPC"),
	).RunWithContext(ctx); err != nil {
		return err
	}
	doc.SharedVPCHost().SetEnabled(host)

	if host {
		var raw string
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewText().
					Title("Service Projects").
					Description("Projects attached to this host, comma or newline separated").
					Value(&raw),
			).Title("Shared VPC"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		for _, p := range validate.SplitBatch(raw) {
			if err := doc.SharedVPCHost().AddServiceProject(p); err != nil {
				return err
			}
		}
	}

	var hostProject, networkUsers string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Host Project").
				Description("Shared VPC host to attach to. Leave empty when not a service project.").
				Value(&hostProject),
			huh.NewText().
				Title("Network Users").
				Description("Principals granted network use, comma or newline separated").
				Value(&networkUsers).
				Validate(validateOptional(validatePrincipalBatch)),
		).Title("Shared VPC Service"),
	).RunWithContext(ctx); err != nil {
		return err
	}
	svc := doc.SharedVPCService()
	svc.SetHostProject(hostProject)
	for _, u := range validate.SplitBatch(networkUsers) {
		if err := svc.NetworkUsers().Add(u); err != nil {
			return err
		}
	}

	if err := runSchemaMapLoop(ctx, svc.ServiceAgentIAM(), "Service Agent IAM",
		"Service agent", "Roles granted on the host"); err != nil {
		return err
	}
	if err := runSchemaMapLoop(ctx, svc.ServiceAgentSubnetIAM(), "Service Agent Subnet IAM",
		"Subnet", "Service agents granted subnet use"); err != nil {
		return err
	}
	return runSchemaMapLoop(ctx, svc.NetworkSubnetUsers(), "Network Subnet Users",
		"Subnet", "Principals granted subnet use")
}

// runPerimeterGroup configures VPC Service Controls.
func runPerimeterGroup(ctx context.Context, doc *document.Document) error {
	var enable bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Configure VPC Service Controls?").
				Value(&enable),
		).Title("VPC Service Controls"),
	).RunWithContext(ctx); err != nil {
		return err
	}
	doc.VPCSC().SetEnabled(enable)
	if !enable {
		return nil
	}

	var (
		name, bridges string
		dryRun        bool
	)
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Perimeter Name").
				Value(&name).
				Validate(validateRequired),
			huh.NewText().
				Title("Bridge Perimeters").
				Description("Comma or newline separated. Leave empty to skip.").
				Value(&bridges),
			huh.NewConfirm().
				Title("Dry run?").
				Value(&dryRun),
		).Title("VPC Service Controls"),
	).RunWithContext(ctx); err != nil {
		return err
	}

	doc.VPCSC().SetName(name)
	doc.VPCSC().SetDryRun(dryRun)
	for _, b := range validate.SplitBatch(bridges) {
		if err := doc.VPCSC().AddBridge(b); err != nil {
			return err
		}
	}
	return nil
}

func validateRoleBatch(s string) error {
	tokens := validate.SplitBatch(s)
	if len(tokens) == 0 {
		return errBatchInvalid
	}
	for _, t := range tokens {
		if !validate.IsRole(t) {
			return errRoleInvalid
		}
	}
	return nil
}
