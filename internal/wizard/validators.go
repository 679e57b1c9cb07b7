package wizard

import "github.com/Gerhatlevi/project-factory/internal/validate"

// huh validators. Each one maps a field shape onto a sentinel error so
// the form can re-prompt with a stable message.

func validateRequired(s string) error {
	if s == "" {
		return errValueRequired
	}
	return nil
}

func validateSlug(s string) error {
	if !validate.IsSlug(s) {
		return errSlugInvalid
	}
	return nil
}

func validateSlugExt(s string) error {
	if !validate.IsSlugExt(s) {
		return errSlugExtInvalid
	}
	return nil
}

func validateRole(s string) error {
	if !validate.IsRole(s) {
		return errRoleInvalid
	}
	return nil
}

func validatePrincipal(s string) error {
	if !validate.IsPrincipal(s) {
		return errPrincipalInvalid
	}
	return nil
}

// validatePrincipalBatch accepts a comma/newline separated member list.
// One bad token fails the whole input, matching the document's
// all-or-nothing batch contract.
func validatePrincipalBatch(s string) error {
	tokens := validate.SplitBatch(s)
	if len(tokens) == 0 {
		return errBatchInvalid
	}
	for _, t := range tokens {
		if !validate.IsPrincipal(t) {
			return errPrincipalInvalid
		}
	}
	return nil
}

func validateServiceBatch(s string) error {
	tokens := validate.SplitBatch(s)
	if len(tokens) == 0 {
		return errBatchInvalid
	}
	for _, t := range tokens {
		if !validate.IsServiceName(t) {
			return errServiceInvalid
		}
	}
	return nil
}

func validatePolicyID(s string) error {
	if !validate.IsPolicyID(s) {
		return errPolicyIDInvalid
	}
	return nil
}

// validateOptional wraps a validator so the empty string passes.
func validateOptional(check func(string) error) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}
		return check(s)
	}
}
