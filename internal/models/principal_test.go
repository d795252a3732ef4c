package models

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestNewPrincipal_FiltersInactiveRoles(t *testing.T) {
	user := &User{ID: 7, Username: "alice", Active: true}
	roles := []Role{
		{RoleCode: "ROLE_USER", Active: true},
		{RoleCode: "ROLE_LEGACY", Active: false},
		{RoleCode: "ROLE_ADMIN", Active: true},
	}

	p := NewPrincipal(user, roles)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, p.Authorities)
}

func TestNewPrincipal_StatePredicates(t *testing.T) {
	user := &User{
		ID:              7,
		Username:        "alice",
		Active:          false,
		Locked:          true,
		PasswordExpired: true,
	}

	p := NewPrincipal(user, nil)
	assert.False(t, p.Enabled)
	assert.False(t, p.AccountNonLocked)
	assert.False(t, p.CredentialsNonExpired)
	// No expiry policy is modeled; always true by construction.
	assert.True(t, p.AccountNonExpired)
}

func TestNewPrincipal_NoRoles(t *testing.T) {
	user := &User{ID: 7, Username: "alice", Active: true}

	p := NewPrincipal(user, nil)
	assert.NotNil(t, p.Authorities)
	assert.Empty(t, p.Authorities)
}

func TestPrincipalFromClaims(t *testing.T) {
	claims := &TokenClaims{
		UserID: 7,
		Roles:  []string{"ROLE_USER"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "alice",
		},
	}

	p := PrincipalFromClaims(claims)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, []string{"ROLE_USER"}, p.Authorities)
	assert.True(t, p.Enabled)
}

func TestPrincipalFromClaims_NilRoles(t *testing.T) {
	claims := &TokenClaims{
		UserID:           7,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}

	p := PrincipalFromClaims(claims)
	assert.NotNil(t, p.Authorities)
	assert.Empty(t, p.Authorities)
}

func TestPrincipal_HasAuthority(t *testing.T) {
	p := &Principal{Authorities: []string{"ROLE_USER"}}
	assert.True(t, p.HasAuthority("ROLE_USER"))
	assert.False(t, p.HasAuthority("ROLE_ADMIN"))
}
