package auth

import (
	"testing"

	"github.com/screenengine/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsAllowed_AuthenticatedOnly(t *testing.T) {
	principal := &models.Principal{Username: "alice", Authorities: []string{}}

	assert.True(t, IsAllowed(principal, Authenticated()))
	assert.False(t, IsAllowed(nil, Authenticated()))
}

func TestIsAllowed_SingleRole(t *testing.T) {
	principal := &models.Principal{Username: "alice", Authorities: []string{"ROLE_USER"}}

	assert.True(t, IsAllowed(principal, AnyRole("ROLE_USER")))
	assert.False(t, IsAllowed(principal, AnyRole("ROLE_ADMIN")))
}

func TestIsAllowed_AnyOf(t *testing.T) {
	principal := &models.Principal{Username: "alice", Authorities: []string{"ROLE_USER"}}

	assert.True(t, IsAllowed(principal, AnyRole("ROLE_ADMIN", "ROLE_USER")))
	assert.False(t, IsAllowed(principal, AnyRole("ROLE_ADMIN", "ROLE_AUDITOR")))
}

func TestIsAllowed_NilPrincipalNeverAllowed(t *testing.T) {
	assert.False(t, IsAllowed(nil, AnyRole("ROLE_USER")))
}

func TestIsAllowed_Idempotent(t *testing.T) {
	principal := &models.Principal{Username: "alice", Authorities: []string{"ROLE_USER"}}
	req := AnyRole("ROLE_ADMIN")

	first := IsAllowed(principal, req)
	second := IsAllowed(principal, req)
	assert.Equal(t, first, second)
	assert.False(t, first)
}
