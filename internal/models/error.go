package models

import "errors"

// Sentinel errors for the auth boundary. Messages for ErrAuthenticationFailed
// and ErrTokenInvalid are deliberately generic: the concrete reason (unknown
// user, bad password, bad signature, expiry) is logged internally only.
var (
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrTokenInvalid         = errors.New("invalid or expired token")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrConfiguration        = errors.New("missing required reference data")
	ErrStoreUnavailable     = errors.New("credential store unavailable")

	// Store-level sentinels, mapped at the database boundary and translated
	// by the service layer before reaching callers.
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)
