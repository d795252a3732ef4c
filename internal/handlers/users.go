package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/screenengine/backend/internal/auth"
	"github.com/screenengine/backend/internal/models"
	"github.com/screenengine/backend/internal/services"
	pkghttp "github.com/screenengine/backend/pkg/http"
)

// UserServiceInterface defines the administrative user operations.
type UserServiceInterface interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*services.UserDTO, error)
	GetUser(ctx context.Context, userID int64) (*services.UserDTO, error)
	UpdateUser(ctx context.Context, userID int64, req services.UpdateUserRequest, actor string) (*services.UserDTO, error)
	ToggleUserStatus(ctx context.Context, userID int64, actor string) (*services.UserDTO, error)
	DeleteUser(ctx context.Context, userID int64, actor string) error
	ListRoles(ctx context.Context) ([]models.Role, error)
}

// UserHandler handles administrative user HTTP requests.
type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateUserBody is the request body for user updates; absent fields stay
// unchanged.
type UpdateUserBody struct {
	Username   *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email      *string `json:"email" validate:"omitempty,email"`
	FullName   *string `json:"fullName" validate:"omitempty,min=1,max=100"`
	FabrikaKod *int64  `json:"fabrikaKod"`
	Status     *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE active inactive"`
	Role       *string `json:"role" validate:"omitempty,min=1"`
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	users, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /users/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var body UpdateUserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(body); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, services.UpdateUserRequest{
		Username:   body.Username,
		Email:      body.Email,
		FullName:   body.FullName,
		FabrikaKod: body.FabrikaKod,
		Status:     body.Status,
		Role:       body.Role,
	}, actorName(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// ToggleStatus handles POST /users/{id}/toggle-status.
func (h *UserHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.ToggleUserStatus(r.Context(), userID, actorName(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}. Soft delete only.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID, actorName(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRoles handles GET /roles.
func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	codes := make([]string, 0, len(roles))
	for _, role := range roles {
		codes = append(codes, role.RoleCode)
	}

	pkghttp.WriteJSON(w, http.StatusOK, codes)
}

func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		pkghttp.WriteBadRequest(w, "invalid user id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return defaultVal
}

func actorName(r *http.Request) string {
	if principal := auth.GetPrincipal(r.Context()); principal != nil {
		return principal.Username
	}
	return "SYSTEM"
}
