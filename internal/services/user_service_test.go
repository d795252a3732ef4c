package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/screenengine/backend/internal/models"
	pkglogger "github.com/screenengine/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(users UserStore, roles RoleStore) *UserService {
	logger := slog.Default()
	return NewUserService(users, roles, &MockTxRunner{}, logger, pkglogger.NewAuditLogger(logger))
}

func activeUser() *models.User {
	return &models.User{
		ID:         7,
		Username:   "alice",
		Email:      "alice@example.com",
		FullName:   "Alice Smith",
		FabrikaKod: 101,
		Active:     true,
	}
}

func TestUserService_GetUser(t *testing.T) {
	users := &MockUserStore{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return activeUser(), nil
		},
	}
	roles := &MockRoleStore{
		FindRolesForUserFunc: func(ctx context.Context, userID int64) ([]models.Role, error) {
			return []models.Role{{RoleCode: "ROLE_USER", Active: true}}, nil
		},
	}

	dto, err := newTestUserService(users, roles).GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", dto.Username)
	assert.Equal(t, []string{"ROLE_USER"}, dto.Roles)
	assert.Equal(t, "ACTIVE", dto.Status)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	_, err := newTestUserService(&MockUserStore{}, &MockRoleStore{}).GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserService_UpdateUser_DuplicateUsernameRejected(t *testing.T) {
	users := &MockUserStore{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return activeUser(), nil
		},
		ExistsByUsernameFunc: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}

	newName := "bob"
	_, err := newTestUserService(users, &MockRoleStore{}).UpdateUser(
		context.Background(), 7, UpdateUserRequest{Username: &newName}, "ADMIN")

	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestUserService_UpdateUser_StatusAndFields(t *testing.T) {
	var saved *models.User
	users := &MockUserStore{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return activeUser(), nil
		},
		SaveFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			saved = user
			return user, nil
		},
	}
	roles := &MockRoleStore{
		FindRolesForUserFunc: func(ctx context.Context, userID int64) ([]models.Role, error) {
			return []models.Role{}, nil
		},
	}

	fullName := "Alice B. Smith"
	status := "INACTIVE"
	kod := int64(205)
	dto, err := newTestUserService(users, roles).UpdateUser(
		context.Background(), 7,
		UpdateUserRequest{FullName: &fullName, Status: &status, FabrikaKod: &kod}, "ADMIN")

	require.NoError(t, err)
	assert.Equal(t, "Alice B. Smith", saved.FullName)
	assert.Equal(t, int64(205), saved.FabrikaKod)
	assert.False(t, saved.Active)
	assert.Equal(t, "ADMIN", saved.UpdatedBy)
	assert.Equal(t, "INACTIVE", dto.Status)
}

func TestUserService_ToggleUserStatus(t *testing.T) {
	var saved *models.User
	users := &MockUserStore{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return activeUser(), nil
		},
		SaveFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			saved = user
			return user, nil
		},
	}
	roles := &MockRoleStore{}

	dto, err := newTestUserService(users, roles).ToggleUserStatus(context.Background(), 7, "ADMIN")
	require.NoError(t, err)
	assert.False(t, saved.Active)
	assert.Equal(t, "INACTIVE", dto.Status)
}

func TestUserService_DeleteUser_IsSoftDelete(t *testing.T) {
	var saved *models.User
	users := &MockUserStore{
		FindByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return activeUser(), nil
		},
		SaveFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			saved = user
			return user, nil
		},
	}

	err := newTestUserService(users, &MockRoleStore{}).DeleteUser(context.Background(), 7, "ADMIN")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.False(t, saved.Active)
}

func TestUserService_UpdateUserRole_NormalizesPrefix(t *testing.T) {
	var lookedUp string
	replaced := false

	roles := &MockRoleStore{
		FindByCodeFunc: func(ctx context.Context, code string) (*models.Role, error) {
			lookedUp = code
			return &models.Role{ID: 2, RoleCode: code, Active: true}, nil
		},
		ReplaceRoleTxFunc: func(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error {
			replaced = true
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, int64(2), roleID)
			return nil
		},
	}

	err := newTestUserService(&MockUserStore{}, roles).UpdateUserRole(context.Background(), 7, "ADMIN", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "ROLE_ADMIN", lookedUp)
	assert.True(t, replaced)
}

func TestUserService_UpdateUserRole_UnknownRole(t *testing.T) {
	err := newTestUserService(&MockUserStore{}, &MockRoleStore{}).UpdateUserRole(
		context.Background(), 7, "ROLE_NOPE", "ADMIN")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	users := &MockUserStore{
		ListFunc: func(ctx context.Context, limit, offset int) ([]*models.User, error) {
			return []*models.User{activeUser()}, nil
		},
	}
	roles := &MockRoleStore{
		FindRolesForUserFunc: func(ctx context.Context, userID int64) ([]models.Role, error) {
			return []models.Role{{RoleCode: "ROLE_USER", Active: true}}, nil
		},
	}

	dtos, err := newTestUserService(users, roles).ListUsers(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "alice", dtos[0].Username)
}
