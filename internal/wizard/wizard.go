// Package wizard drives the interactive form flow that fills a
// configuration document from scratch. Every answer goes through the
// document mutators, so the wizard can never produce state a scripted
// edit could not.
package wizard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Gerhatlevi/project-factory/internal/document"
	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// Run walks the full configuration flow against doc. The context
// cancels the active form (Ctrl+C). The document is mutated in place;
// on error it may hold a partial configuration, which the caller is
// expected to discard.
func Run(ctx context.Context, doc *document.Document) error {
	if err := runIdentityGroup(ctx, doc); err != nil {
		return fmt.Errorf("project identity: %w", err)
	}
	if err := runServicesGroup(ctx, doc); err != nil {
		return fmt.Errorf("services: %w", err)
	}
	if err := runLabelsGroup(ctx, doc.Labels(), "Project Labels"); err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	if err := runIAMGroup(ctx, "Project", doc.IAM(), doc.Bindings(), doc.AdditiveBindings()); err != nil {
		return fmt.Errorf("iam: %w", err)
	}
	if err := runByPrincipalGroup(ctx, doc); err != nil {
		return fmt.Errorf("iam by principal: %w", err)
	}
	if err := runBucketsGroup(ctx, doc); err != nil {
		return fmt.Errorf("buckets: %w", err)
	}
	if err := runServiceAccountsGroup(ctx, doc.ServiceAccounts(), "Service Accounts", true); err != nil {
		return fmt.Errorf("service accounts: %w", err)
	}
	if err := runOrgPoliciesGroup(ctx, doc); err != nil {
		return fmt.Errorf("org policies: %w", err)
	}
	if err := runAutomationGroup(ctx, doc); err != nil {
		return fmt.Errorf("automation: %w", err)
	}
	if err := runNetworkingGroup(ctx, doc); err != nil {
		return fmt.Errorf("shared vpc: %w", err)
	}
	if err := runPerimeterGroup(ctx, doc); err != nil {
		return fmt.Errorf("vpc service controls: %w", err)
	}
	if err := runExtrasGroup(ctx, doc); err != nil {
		return fmt.Errorf("extras: %w", err)
	}
	return nil
}

// runByPrincipalGroup collects principal-first role grants.
func runByPrincipalGroup(ctx context.Context, doc *document.Document) error {
	for {
		var add bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Grant roles to a principal?").
					Value(&add),
			).Title("IAM by Principal"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var principal, roles string
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Principal").
					Placeholder("group:devops@example.com").
					Value(&principal).
					Validate(validatePrincipal),
				huh.NewText().
					Title("Roles").
					Description("Comma or newline separated").
					Value(&roles).
					Validate(validateRoleBatch),
			).Title("IAM by Principal"),
		).RunWithContext(ctx); err != nil {
			return err
		}
		for _, role := range validate.SplitBatch(roles) {
			if err := doc.ByPrincipals().Add(principal, role); err != nil {
				return err
			}
		}
	}
}

// runExtrasGroup covers the remaining flat collections: budgets, metric
// scopes, contacts, tag bindings and per-service encryption keys.
func runExtrasGroup(ctx context.Context, doc *document.Document) error {
	var budgets, scopes string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Billing Budgets").
				Description("Budget names, comma or newline separated. Leave empty to skip.").
				Value(&budgets),
			huh.NewText().
				Title("Metric Scopes").
				Description("Monitored projects, comma or newline separated. Leave empty to skip.").
				Value(&scopes),
		).Title("Billing & Monitoring"),
	).RunWithContext(ctx); err != nil {
		return err
	}
	for _, b := range validate.SplitBatch(budgets) {
		if err := doc.BillingBudgets().Add(b); err != nil {
			return err
		}
	}
	for _, s := range validate.SplitBatch(scopes) {
		if err := doc.MetricScopes().Add(s); err != nil {
			return err
		}
	}

	if err := runSchemaMapLoop(ctx, doc.Contacts(), "Essential Contacts",
		"Notification category", "Email addresses"); err != nil {
		return err
	}
	if err := runSchemaMapLoop(ctx, doc.TagBindings(), "Tag Bindings",
		"Binding name", "Tag values"); err != nil {
		return err
	}
	return runSchemaMapLoop(ctx, doc.EncryptionKeyIDs(), "Service Encryption Keys",
		"Service (name.googleapis.com)", "KMS key ids")
}

// runSchemaMapLoop collects id → value-list entries for one map.
func runSchemaMapLoop(ctx context.Context, m *document.SchemaMap, title, idLabel, valuesLabel string) error {
	for {
		var add bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add an entry?").
					Value(&add),
			).Title(title),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var id, values string
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(idLabel).
					Value(&id).
					Validate(validateRequired),
				huh.NewText().
					Title(valuesLabel).
					Description("Comma or newline separated").
					Value(&values),
			).Title(title),
		).RunWithContext(ctx); err != nil {
			return err
		}
		if err := m.Add(id, values); err != nil {
			return err
		}
	}
}
