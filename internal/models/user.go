package models

import (
	"time"
)

// User is the credential store row for a system account. Accounts are never
// hard-deleted; deactivation flips Active to false.
type User struct {
	ID              int64
	Username        string
	PasswordHash    string
	Email           string
	FullName        string
	Phone           string
	FabrikaKod      int64
	Active          bool
	Locked          bool
	PasswordExpired bool
	FailedAttempts  int
	LastLogin       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
	UpdatedBy       string
}

// Role is a grantable authorization unit identified by its unique RoleCode
// (e.g. "ROLE_USER"). Only active roles participate in authorization.
type Role struct {
	ID          int64
	RoleName    string
	RoleCode    string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Well-known role codes seeded by the migrations.
const (
	RoleCodeUser  = "ROLE_USER"
	RoleCodeAdmin = "ROLE_ADMIN"
)

// DefaultFabrikaKod is assigned when registration does not supply an
// organizational code.
const DefaultFabrikaKod int64 = 101
