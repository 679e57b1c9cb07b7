package document

import (
	"fmt"
	"slices"

	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// RuleAction is the allow or deny half of an organization policy rule.
// Values are only meaningful while All is false.
type RuleAction struct {
	All    bool
	Values []string
}

// Rule is one ordered entry of an organization policy. Allow and deny
// are not mutually exclusive; the external policy engine permits both
// and the model does not over-constrain.
type Rule struct {
	Allow     RuleAction
	Deny      RuleAction
	Enforce   bool
	Condition Condition
}

// OrgPolicy is a constraint with ordered rules. Rules are addressed by
// generated stable ids rather than position, so a removal never
// invalidates another rule's handle.
type OrgPolicy struct {
	inheritFromParent bool
	reset             bool

	nextRule int
	ruleIDs  []string
	rules    map[string]*Rule
}

func newOrgPolicy() *OrgPolicy {
	return &OrgPolicy{rules: make(map[string]*Rule)}
}

// SetInheritFromParent toggles inheritance.
func (p *OrgPolicy) SetInheritFromParent(v bool) { p.inheritFromParent = v }

// SetReset toggles the reset flag.
func (p *OrgPolicy) SetReset(v bool) { p.reset = v }

// InheritFromParent reports the inheritance flag.
func (p *OrgPolicy) InheritFromParent() bool { return p.inheritFromParent }

// Reset reports the reset flag.
func (p *OrgPolicy) Reset() bool { return p.reset }

// AddRule appends a rule with creation defaults (enforce on, nothing
// allowed or denied) and returns its stable id plus the rule for
// in-place editing.
func (p *OrgPolicy) AddRule() (string, *Rule) {
	p.nextRule++
	id := fmt.Sprintf("rule-%d", p.nextRule)
	r := &Rule{Enforce: true}
	p.ruleIDs = append(p.ruleIDs, id)
	p.rules[id] = r
	return id, r
}

// Rule returns the rule under id.
func (p *OrgPolicy) Rule(id string) (*Rule, bool) {
	r, ok := p.rules[id]
	return r, ok
}

// RemoveRule deletes the rule under id. Other rule ids stay valid.
func (p *OrgPolicy) RemoveRule(id string) error {
	if _, ok := p.rules[id]; !ok {
		return fmt.Errorf("rule %w: %q", ErrNotFound, id)
	}
	delete(p.rules, id)
	p.ruleIDs = slices.DeleteFunc(p.ruleIDs, func(k string) bool { return k == id })
	return nil
}

// RuleIDs returns the rule ids in order.
func (p *OrgPolicy) RuleIDs() []string { return slices.Clone(p.ruleIDs) }

// Rules returns the rules in order. The slice is fresh but shares the
// rule pointers for in-place editing.
func (p *OrgPolicy) Rules() []*Rule {
	out := make([]*Rule, 0, len(p.ruleIDs))
	for _, id := range p.ruleIDs {
		out = append(out, p.rules[id])
	}
	return out
}

// PolicySet is the keyed collection of organization policies. Ids are
// constraint names: lowercase letters, a dot, then the constraint
// (e.g. iam.allowedPolicyMemberDomains).
type PolicySet struct {
	inner *collection[*OrgPolicy]
}

// NewPolicySet returns an empty policy set.
func NewPolicySet() *PolicySet {
	return &PolicySet{inner: newCollection[*OrgPolicy]()}
}

// Add creates a policy under id with creation defaults (no inheritance,
// no reset, no rules) and returns it for in-place editing.
func (s *PolicySet) Add(id string) (*OrgPolicy, error) {
	if !validate.IsPolicyID(id) {
		return nil, fmt.Errorf("%w: policy id %q (lowercase letters, then a dot, then the constraint name)", ErrInvalidFormat, id)
	}
	p := newOrgPolicy()
	if err := s.inner.insert(id, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove deletes the policy and its rules.
func (s *PolicySet) Remove(id string) error {
	if err := s.inner.remove(id); err != nil {
		return fmt.Errorf("policy %w", err)
	}
	return nil
}

// Get returns the policy under id.
func (s *PolicySet) Get(id string) (*OrgPolicy, bool) { return s.inner.at(id) }

// IDs returns the policy ids in insertion order.
func (s *PolicySet) IDs() []string { return s.inner.ids() }

// Len returns the number of policies.
func (s *PolicySet) Len() int { return s.inner.size() }
