package document

import "fmt"

// Verdict is the result of a save-eligibility check. Reasons lists
// every blocking problem in evaluation order; an empty list means the
// document may be serialized.
type Verdict struct {
	Reasons []string
}

// Savable reports whether the document passed the gate.
func (v Verdict) Savable() bool { return len(v.Reasons) == 0 }

// CheckSave evaluates every save rule and collects all failures; it
// never stops at the first one, so the caller can show the complete
// worklist. The document itself is not modified.
func (d *Document) CheckSave() Verdict {
	var reasons []string

	if d.automation.enabled && d.automation.project == "" {
		reasons = append(reasons, "automation: project name is required while automation is enabled")
	}

	checkBindingScope(&reasons, "project IAM", d.iam, d.bindings, d.additiveBindings)
	if d.automation.enabled {
		checkBindingScope(&reasons, "automation bucket",
			d.automation.bucket.iam, d.automation.bucket.bindings, d.automation.bucket.additive)
		for _, id := range d.automation.serviceAccounts.IDs() {
			a, _ := d.automation.serviceAccounts.Get(id)
			checkBindingScope(&reasons, fmt.Sprintf("automation service account %q", id),
				a.iam, a.bindings, a.additive)
		}
	}
	for _, name := range d.buckets.Names() {
		b, _ := d.buckets.Get(name)
		checkBindingScope(&reasons, fmt.Sprintf("bucket %q", name), b.iam, b.bindings, b.additive)
	}
	for _, id := range d.serviceAccounts.IDs() {
		a, _ := d.serviceAccounts.Get(id)
		checkBindingScope(&reasons, fmt.Sprintf("service account %q", id), a.iam, a.bindings, a.additive)
	}

	if d.vpcSC.enabled && d.vpcSC.name == "" {
		reasons = append(reasons, "VPC service controls: perimeter name is required while enabled")
	}

	return Verdict{Reasons: reasons}
}

// checkBindingScope appends a reason for every binding in the scope
// whose condition is not complete, and for every binding whose role is
// no longer present in the scope's role map. A binding is created with
// an empty condition, so a freshly added binding blocks the save until
// its condition carries both an expression and a title. Roles can
// disappear after a binding was created, so the foreign key is
// re-checked here.
func checkBindingScope(reasons *[]string, scope string, roles *RoleMap, std *BindingSet, add *AdditiveBindingSet) {
	for _, id := range std.IDs() {
		b, _ := std.Get(id)
		if !b.condition.Complete() {
			*reasons = append(*reasons,
				fmt.Sprintf("%s: binding %q has an incomplete condition (expression and title are required)", scope, id))
		}
		if !roles.Has(b.role) {
			*reasons = append(*reasons,
				fmt.Sprintf("%s: binding %q references unknown role %q", scope, id, b.role))
		}
	}
	for _, id := range add.IDs() {
		b, _ := add.Get(id)
		if !b.condition.Complete() {
			*reasons = append(*reasons,
				fmt.Sprintf("%s: additive binding %q has an incomplete condition (expression and title are required)", scope, id))
		}
		if !roles.Has(b.role) {
			*reasons = append(*reasons,
				fmt.Sprintf("%s: additive binding %q references unknown role %q", scope, id, b.role))
		}
	}
}
