package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicySet_IDFormat(t *testing.T) {
	s := NewPolicySet()

	_, err := s.Add("iam.allowedPolicyMemberDomains")
	require.NoError(t, err)

	for _, bad := range []string{"iam", "iam.", "Iam.allowed", ""} {
		_, err := s.Add(bad)
		require.Error(t, err, "id %q should be rejected", bad)
		assert.True(t, errors.Is(err, ErrInvalidFormat))
	}
}

func TestOrgPolicy_RuleIDsStayStableAcrossRemoval(t *testing.T) {
	s := NewPolicySet()
	p, err := s.Add("compute.vmExternalIpAccess")
	require.NoError(t, err)

	id1, _ := p.AddRule()
	id2, r2 := p.AddRule()
	id3, _ := p.AddRule()
	r2.Deny = RuleAction{All: true}

	require.NoError(t, p.RemoveRule(id1))

	// The remaining handles still resolve to the same rules.
	got, ok := p.Rule(id2)
	require.True(t, ok)
	assert.True(t, got.Deny.All)

	_, ok = p.Rule(id3)
	assert.True(t, ok)
	assert.Equal(t, []string{id2, id3}, p.RuleIDs())

	// A fresh rule never reuses a released id.
	id4, _ := p.AddRule()
	assert.NotEqual(t, id1, id4)
	assert.NotEqual(t, id2, id4)
	assert.NotEqual(t, id3, id4)
}

func TestOrgPolicy_AddRuleDefaults(t *testing.T) {
	p := newOrgPolicy()
	_, r := p.AddRule()

	assert.True(t, r.Enforce)
	assert.False(t, r.Allow.All)
	assert.False(t, r.Deny.All)
	assert.Empty(t, r.Allow.Values)
	assert.False(t, r.Condition.Complete())
}

func TestOrgPolicy_RemoveRuleNotFound(t *testing.T) {
	p := newOrgPolicy()
	err := p.RemoveRule("rule-99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPolicySet_RemoveDropsRules(t *testing.T) {
	s := NewPolicySet()
	p, err := s.Add("iam.disableServiceAccountKeyCreation")
	require.NoError(t, err)
	p.AddRule()

	require.NoError(t, s.Remove("iam.disableServiceAccountKeyCreation"))
	assert.Zero(t, s.Len())
	assert.True(t, errors.Is(s.Remove("iam.disableServiceAccountKeyCreation"), ErrNotFound))
}
