package validate

import (
	"regexp"
	"strings"
)

// Regexes are compiled once at package init.
var (
	principalRegex = regexp.MustCompile(`^(?:domain:|group:|serviceAccount:|user:|principal:|principalSet:|[a-z])`)
	slugRegex      = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugExtRegex   = regexp.MustCompile(`^[a-z0-9_-]+$`)
	serviceRegex   = regexp.MustCompile(`^[a-z-]+\.googleapis\.com$`)
	policyIDRegex  = regexp.MustCompile(`^[a-z]+\..+$`)
)

// RolePrefix is the required prefix for predefined role references.
const RolePrefix = "roles/"

// IsRole reports whether s is a role reference ("roles/" prefixed).
func IsRole(s string) bool {
	return strings.HasPrefix(s, RolePrefix)
}

// IsPrincipal reports whether s is a principal reference: one of the six
// tag prefixes (domain:, group:, serviceAccount:, user:, principal:,
// principalSet:) or a bare string starting with a lowercase letter.
// The empty string is never a principal.
func IsPrincipal(s string) bool {
	return s != "" && principalRegex.MatchString(s)
}

// IsSlug reports whether s is a lowercase-alphanumeric-hyphen identifier.
// Used for bucket names, service account ids and dynamic map ids.
func IsSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// IsSlugExt reports whether s is a lowercase-alphanumeric identifier that
// also allows underscores. Used for binding ids and contact group names.
func IsSlugExt(s string) bool {
	return slugExtRegex.MatchString(s)
}

// IsServiceName reports whether s is a Google API service name of the
// form name.googleapis.com.
func IsServiceName(s string) bool {
	return serviceRegex.MatchString(s)
}

// IsPolicyID reports whether s is an organization policy constraint id:
// lowercase letters, a dot, then the constraint name
// (e.g. iam.allowedPolicyMemberDomains).
func IsPolicyID(s string) bool {
	return policyIDRegex.MatchString(s)
}

// SplitBatch parses a comma or newline delimited batch edit into an
// ordered list of trimmed, non-empty tokens. Token order is preserved.
func SplitBatch(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
