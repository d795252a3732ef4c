package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/screenengine/backend/internal/models"
	pkglogger "github.com/screenengine/backend/pkg/logger"
)

// UserService implements the administrative user operations: listing,
// profile updates, status toggles, soft deletes and role reassignment.
type UserService struct {
	users  UserStore
	roles  RoleStore
	tx     TxRunner
	logger *slog.Logger
	audit  *pkglogger.AuditLogger
}

func NewUserService(users UserStore, roles RoleStore, tx TxRunner, logger *slog.Logger, audit *pkglogger.AuditLogger) *UserService {
	return &UserService{
		users:  users,
		roles:  roles,
		tx:     tx,
		logger: logger,
		audit:  audit,
	}
}

// UserDTO is the administrative view of a user with its resolved roles.
type UserDTO struct {
	UserID     int64     `json:"userId"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	FabrikaKod int64     `json:"fabrikaKod"`
	Roles      []string  `json:"roles"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpdateUserRequest carries optional field updates; nil means unchanged.
type UpdateUserRequest struct {
	Username   *string
	Email      *string
	FullName   *string
	FabrikaKod *int64
	Status     *string
	Role       *string
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*UserDTO, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	dtos := make([]*UserDTO, 0, len(users))
	for _, user := range users {
		dto, err := s.toDTO(ctx, user)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, user)
}

// UpdateUser applies the provided fields, re-checking username and email
// uniqueness when they change, and reassigns the role if one is supplied.
func (s *UserService) UpdateUser(ctx context.Context, userID int64, req UpdateUserRequest, actor string) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.users.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: username is already taken", models.ErrConflict)
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		registered, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if registered {
			return nil, fmt.Errorf("%w: email is already registered", models.ErrConflict)
		}
		user.Email = email
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.FabrikaKod != nil {
		user.FabrikaKod = *req.FabrikaKod
	}
	if req.Status != nil {
		user.Active = strings.EqualFold(*req.Status, "ACTIVE")
	}
	user.UpdatedBy = actor

	updated, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if err := s.UpdateUserRole(ctx, userID, *req.Role, actor); err != nil {
			return nil, err
		}
	}

	s.audit.LogAccountAction("user_updated", userID, actor)
	return s.toDTO(ctx, updated)
}

// ToggleUserStatus flips the active flag.
func (s *UserService) ToggleUserStatus(ctx context.Context, userID int64, actor string) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Active = !user.Active
	user.UpdatedBy = actor

	updated, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.LogAccountAction("status_toggled", userID, actor)
	return s.toDTO(ctx, updated)
}

// DeleteUser deactivates the account. Users are never hard-deleted.
func (s *UserService) DeleteUser(ctx context.Context, userID int64, actor string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Active = false
	user.UpdatedBy = actor

	if _, err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.audit.LogAccountAction("user_deactivated", userID, actor)
	s.logger.Info("user soft-deleted", slog.Int64("user_id", userID))
	return nil
}

// UpdateUserRole replaces the user's role membership with the single given
// role. Bare codes are normalized to their ROLE_ prefixed form; the change
// takes effect on the next issued token.
func (s *UserService) UpdateUserRole(ctx context.Context, userID int64, roleCode, actor string) error {
	fullCode := roleCode
	if !strings.HasPrefix(fullCode, "ROLE_") {
		fullCode = "ROLE_" + fullCode
	}

	role, err := s.roles.FindByCode(ctx, fullCode)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: role %s", models.ErrNotFound, fullCode)
		}
		return err
	}

	err = s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		return s.roles.ReplaceRoleTx(ctx, tx, userID, role.ID, actor)
	})
	if err != nil {
		return err
	}

	s.audit.LogAccountAction("role_reassigned", userID, actor)
	return nil
}

// ListRoles returns all active roles.
func (s *UserService) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.roles.FindAllActive(ctx)
}

func (s *UserService) toDTO(ctx context.Context, user *models.User) (*UserDTO, error) {
	roles, err := s.roles.FindRolesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(roles))
	for _, role := range roles {
		codes = append(codes, role.RoleCode)
	}

	status := "INACTIVE"
	if user.Active {
		status = "ACTIVE"
	}

	return &UserDTO{
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		FabrikaKod: user.FabrikaKod,
		Roles:      codes,
		Status:     status,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}, nil
}
