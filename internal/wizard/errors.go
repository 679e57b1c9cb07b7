package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errValueRequired    = errors.New("a value is required")
	errSlugInvalid      = errors.New("use lowercase letters, numbers and hyphens")
	errSlugExtInvalid   = errors.New("use lowercase letters, numbers, underscores and hyphens")
	errRoleInvalid      = errors.New("role must start with roles/")
	errPrincipalInvalid = errors.New("members must be prefixed (user:, group:, serviceAccount:, domain:, principal:, principalSet:) or start with a lowercase letter")
	errServiceInvalid   = errors.New("service must be of the form name.googleapis.com")
	errPolicyIDInvalid  = errors.New("constraint must be lowercase letters, a dot, then the constraint name")
	errBatchInvalid     = errors.New("enter comma or newline separated values")
)
