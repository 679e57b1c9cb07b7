// Package validate provides the field-level format predicates shared by
// every collection in the document model.
//
// All predicates are pure functions over strings. They check syntactic
// shape only; whether a role or service actually exists on the provider
// side is out of scope.
package validate
