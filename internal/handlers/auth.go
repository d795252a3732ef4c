package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/screenengine/backend/internal/auth"
	"github.com/screenengine/backend/internal/models"
	"github.com/screenengine/backend/internal/services"
	pkghttp "github.com/screenengine/backend/pkg/http"
)

// AuthServiceInterface defines the auth business logic consumed by the handler.
type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
	Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResult, error)
	Validate(ctx context.Context, token string) (*models.Principal, error)
}

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=6,max=128"`
	Email      string `json:"email" validate:"required,email"`
	FullName   string `json:"fullName" validate:"required,min=1,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	FabrikaKod *int64 `json:"fabrikaKod"`
}

// MeResponse is the principal view returned by /auth/me. Profile fields are
// empty when the principal was rebuilt from token claims, which carry only
// the identity and role set.
type MeResponse struct {
	UserID      int64    `json:"userId"`
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	FullName    string   `json:"fullName,omitempty"`
	FabrikaKod  int64    `json:"fabrikaKod,omitempty"`
	Authorities []string `json:"roles"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, result)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Register(r.Context(), services.RegisterRequest{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		FullName:   req.FullName,
		Phone:      req.Phone,
		FabrikaKod: req.FabrikaKod,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, result)
}

// Me handles GET /auth/me for the authenticated principal.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := auth.GetPrincipal(r.Context())
	if principal == nil {
		pkghttp.WriteUnauthorized(w, models.ErrUnauthenticated.Error())
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, MeResponse{
		UserID:      principal.UserID,
		Username:    principal.Username,
		Email:       principal.Email,
		FullName:    principal.FullName,
		FabrikaKod:  principal.FabrikaKod,
		Authorities: principal.Authorities,
	})
}

// writeServiceError maps service sentinels to HTTP statuses. Generic
// messages only; internal detail stays in the logs.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrAuthenticationFailed):
		pkghttp.WriteUnauthorized(w, models.ErrAuthenticationFailed.Error())
	case errors.Is(err, models.ErrTokenInvalid):
		pkghttp.WriteUnauthorized(w, models.ErrTokenInvalid.Error())
	case errors.Is(err, models.ErrRegistrationFailed):
		pkghttp.WriteConflict(w, err.Error())
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, err.Error())
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, err.Error())
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, models.ErrForbidden.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		pkghttp.WriteServiceUnavailable(w, models.ErrStoreUnavailable.Error())
	case errors.Is(err, models.ErrConfiguration):
		pkghttp.WriteInternalError(w, "server misconfiguration")
	default:
		pkghttp.WriteInternalError(w, "internal server error")
	}
}
