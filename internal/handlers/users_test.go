package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/screenengine/backend/internal/models"
	"github.com/screenengine/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userDTO() *services.UserDTO {
	return &services.UserDTO{
		UserID: 7, Username: "alice", Email: "alice@example.com",
		FullName: "Alice Smith", FabrikaKod: 101,
		Roles: []string{"ROLE_USER"}, Status: "ACTIVE",
	}
}

// withURLParam installs a chi route context carrying the {id} parameter.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUserHandler_GetUser(t *testing.T) {
	handler := NewUserHandler(&MockUserService{
		GetUserFunc: func(ctx context.Context, userID int64) (*services.UserDTO, error) {
			assert.Equal(t, int64(7), userID)
			return userDTO(), nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/7", nil), "id", "7")
	rec := httptest.NewRecorder()
	handler.GetUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestUserHandler_GetUser_InvalidID(t *testing.T) {
	handler := NewUserHandler(&MockUserService{})

	for _, id := range []string{"abc", "-1", "0", ""} {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/"+id, nil), "id", id)
		rec := httptest.NewRecorder()
		handler.GetUser(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
	}
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	handler := NewUserHandler(&MockUserService{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/99", nil), "id", "99")
	rec := httptest.NewRecorder()
	handler.GetUser(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_ListUsers_Pagination(t *testing.T) {
	var gotLimit, gotOffset int
	handler := NewUserHandler(&MockUserService{
		ListUsersFunc: func(ctx context.Context, limit, offset int) ([]*services.UserDTO, error) {
			gotLimit, gotOffset = limit, offset
			return []*services.UserDTO{userDTO()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users?limit=10&offset=20", nil)
	rec := httptest.NewRecorder()
	handler.ListUsers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 20, gotOffset)
}

func TestUserHandler_UpdateUser_Conflict(t *testing.T) {
	handler := NewUserHandler(&MockUserService{
		UpdateUserFunc: func(ctx context.Context, userID int64, req services.UpdateUserRequest, actor string) (*services.UserDTO, error) {
			return nil, models.ErrConflict
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodPut, "/users/7",
		strings.NewReader(`{"username":"taken"}`)), "id", "7")
	rec := httptest.NewRecorder()
	handler.UpdateUser(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUserHandler_UpdateUser_InvalidStatus(t *testing.T) {
	handler := NewUserHandler(&MockUserService{})

	req := withURLParam(httptest.NewRequest(http.MethodPut, "/users/7",
		strings.NewReader(`{"status":"SUSPENDED"}`)), "id", "7")
	rec := httptest.NewRecorder()
	handler.UpdateUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	deleted := false
	handler := NewUserHandler(&MockUserService{
		DeleteUserFunc: func(ctx context.Context, userID int64, actor string) error {
			deleted = true
			return nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/users/7", nil), "id", "7")
	rec := httptest.NewRecorder()
	handler.DeleteUser(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, deleted)
}

func TestUserHandler_ListRoles(t *testing.T) {
	handler := NewUserHandler(&MockUserService{
		ListRolesFunc: func(ctx context.Context) ([]models.Role, error) {
			return []models.Role{
				{RoleCode: "ROLE_ADMIN", Active: true},
				{RoleCode: "ROLE_USER", Active: true},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/roles", nil)
	rec := httptest.NewRecorder()
	handler.ListRoles(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["ROLE_ADMIN","ROLE_USER"]`, rec.Body.String())
}
