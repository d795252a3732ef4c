package handlers

import (
	"context"

	"github.com/screenengine/backend/internal/models"
	"github.com/screenengine/backend/internal/services"
)

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc    func(ctx context.Context, username, password string) (*services.AuthResult, error)
	RegisterFunc func(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error)
	ValidateFunc func(ctx context.Context, token string) (*models.Principal, error)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*services.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return nil, models.ErrAuthenticationFailed
}

func (m *MockAuthService) Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, models.ErrRegistrationFailed
}

func (m *MockAuthService) Validate(ctx context.Context, token string) (*models.Principal, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token)
	}
	return nil, models.ErrTokenInvalid
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	ListUsersFunc        func(ctx context.Context, limit, offset int) ([]*services.UserDTO, error)
	GetUserFunc          func(ctx context.Context, userID int64) (*services.UserDTO, error)
	UpdateUserFunc       func(ctx context.Context, userID int64, req services.UpdateUserRequest, actor string) (*services.UserDTO, error)
	ToggleUserStatusFunc func(ctx context.Context, userID int64, actor string) (*services.UserDTO, error)
	DeleteUserFunc       func(ctx context.Context, userID int64, actor string) error
	ListRolesFunc        func(ctx context.Context) ([]models.Role, error)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]*services.UserDTO, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, limit, offset)
	}
	return []*services.UserDTO{}, nil
}

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*services.UserDTO, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID int64, req services.UpdateUserRequest, actor string) (*services.UserDTO, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, userID, req, actor)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) ToggleUserStatus(ctx context.Context, userID int64, actor string) (*services.UserDTO, error) {
	if m.ToggleUserStatusFunc != nil {
		return m.ToggleUserStatusFunc(ctx, userID, actor)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID int64, actor string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, userID, actor)
	}
	return models.ErrNotFound
}

func (m *MockUserService) ListRoles(ctx context.Context) ([]models.Role, error) {
	if m.ListRolesFunc != nil {
		return m.ListRolesFunc(ctx)
	}
	return []models.Role{}, nil
}
