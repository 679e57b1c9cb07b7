package document

import "errors"

// Error kinds reported by the collection mutators. Callers classify
// failures with errors.Is; every mutator fails closed, leaving prior
// state untouched.
var (
	// ErrInvalidFormat means a value failed a field validator.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrDuplicateKey means an insert collided with an existing id.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound means the operation targeted an absent id.
	ErrNotFound = errors.New("not found")

	// ErrUnknownRole means a binding referenced a role that is not
	// present in its owning role map.
	ErrUnknownRole = errors.New("unknown role")

	// ErrDisabled means the mutation targeted a feature that is
	// currently switched off (shared-VPC host, VPC-SC, automation).
	ErrDisabled = errors.New("disabled")
)
