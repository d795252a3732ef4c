package auth

import (
	"github.com/screenengine/backend/internal/models"
)

// Requirement is a required-role expression for a protected endpoint:
// either "any of these role codes" or, with an empty set, "any
// authenticated principal".
type Requirement struct {
	anyOf []string
}

// Authenticated requires a valid principal but no particular role.
func Authenticated() Requirement {
	return Requirement{}
}

// AnyRole requires the principal to hold at least one of the given codes.
func AnyRole(codes ...string) Requirement {
	return Requirement{anyOf: codes}
}

// IsAllowed evaluates the principal against the requirement. Pure function,
// evaluated per request with no caching, so role changes take effect on the
// next token issued. A nil principal is never allowed; the caller decides
// whether that surfaces as unauthenticated (no principal) or forbidden
// (principal present, role missing) — the two must not be conflated.
func IsAllowed(principal *models.Principal, req Requirement) bool {
	if principal == nil {
		return false
	}

	if len(req.anyOf) == 0 {
		return true
	}

	for _, code := range req.anyOf {
		if principal.HasAuthority(code) {
			return true
		}
	}
	return false
}
