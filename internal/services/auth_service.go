package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/screenengine/backend/internal/auth"
	"github.com/screenengine/backend/internal/metrics"
	"github.com/screenengine/backend/internal/models"
	pkgauth "github.com/screenengine/backend/pkg/auth"
	pkglogger "github.com/screenengine/backend/pkg/logger"
)

// UserStore is the credential-store boundary consumed by the services.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
	RecordLogin(ctx context.Context, userID int64) error
}

// RoleStore is the role-store boundary, including the raw join-table writes.
type RoleStore interface {
	FindByCode(ctx context.Context, code string) (*models.Role, error)
	FindRolesForUser(ctx context.Context, userID int64) ([]models.Role, error)
	FindAllActive(ctx context.Context) ([]models.Role, error)
	AssignRoleTx(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error
	ReplaceRoleTx(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error
}

// TxRunner runs a function inside a single database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// AuthService orchestrates credential checks, principal construction and
// token issuance.
type AuthService struct {
	users  UserStore
	roles  RoleStore
	tx     TxRunner
	codec  *auth.TokenCodec
	logger *slog.Logger
	audit  *pkglogger.AuditLogger
}

func NewAuthService(users UserStore, roles RoleStore, tx TxRunner, codec *auth.TokenCodec, logger *slog.Logger, audit *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		tx:     tx,
		codec:  codec,
		logger: logger,
		audit:  audit,
	}
}

// UserInfo is the user summary embedded in an AuthResult.
type UserInfo struct {
	UserID     int64    `json:"userId"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	FullName   string   `json:"fullName"`
	FabrikaKod int64    `json:"fabrikaKod"`
	Roles      []string `json:"roles"`
}

// AuthResult is returned by both login and registration.
type AuthResult struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	ExpiresIn int64    `json:"expiresIn"`
	User      UserInfo `json:"user"`
}

// RegisterRequest carries the fields accepted at registration.
type RegisterRequest struct {
	Username   string
	Password   string
	Email      string
	FullName   string
	Phone      string
	FabrikaKod *int64
}

// Login validates the credentials and issues a bearer token. Unknown
// username, wrong password and blocked account state all collapse into the
// same ErrAuthenticationFailed so the outward signal enumerates nothing;
// the concrete reason is logged and audited internally only.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, s.failLogin(0, "unknown_username")
		}
		if errors.Is(err, models.ErrStoreUnavailable) {
			return nil, err
		}
		s.logger.Error("failed to look up user", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}

	if !pkgauth.VerifyPassword(password, user.PasswordHash) {
		return nil, s.failLogin(user.ID, "invalid_password")
	}

	if reason := blockedAccountReason(user); reason != "" {
		return nil, s.failLogin(user.ID, reason)
	}

	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		s.logger.Error("failed to record login", slog.Int64("user_id", user.ID), slog.Any("error", err))
		return nil, err
	}

	result, err := s.issueFor(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    user.ID,
		Username:  user.Username,
		Success:   true,
	})

	return result, nil
}

// Register creates the user row and its default role join in one atomic
// unit, then runs the regular login flow with the fresh credentials.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// Registration is not enumeration-sensitive the way login is, so the
	// duplicate messages may be distinct and user-facing.
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		metrics.Registrations.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%w: username is already taken", models.ErrRegistrationFailed)
	}

	registered, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if registered {
		metrics.Registrations.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%w: email is already registered", models.ErrRegistrationFailed)
	}

	digest, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, err
	}

	// Missing default role is a deployment precondition, not a user error.
	defaultRole, err := s.roles.FindByCode(ctx, models.RoleCodeUser)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Error("default role missing", slog.String("role_code", models.RoleCodeUser))
			return nil, fmt.Errorf("%w: default role %s not found", models.ErrConfiguration, models.RoleCodeUser)
		}
		return nil, err
	}

	fabrikaKod := models.DefaultFabrikaKod
	if req.FabrikaKod != nil {
		fabrikaKod = *req.FabrikaKod
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: digest,
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		FabrikaKod:   fabrikaKod,
		Active:       true,
		CreatedBy:    "SYSTEM",
	}

	err = s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		created, err := s.users.CreateTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user = created
		return s.roles.AssignRoleTx(ctx, tx, created.ID, defaultRole.ID, "SYSTEM")
	})
	if err != nil {
		// The unique constraints decide concurrent duplicate registrations;
		// the loser sees a conflict here even after the pre-checks passed.
		if errors.Is(err, models.ErrConflict) {
			metrics.Registrations.WithLabelValues("failure").Inc()
			return nil, fmt.Errorf("%w: username or email is already taken", models.ErrRegistrationFailed)
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, err
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	s.logger.Info("user registered", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "registration",
		UserID:    user.ID,
		Username:  user.Username,
		Success:   true,
	})

	// Auto-login reuses the full login path rather than duplicating token
	// issuance.
	return s.Login(ctx, req.Username, req.Password)
}

// Validate parses a bearer token and rebuilds its request-scoped principal.
func (s *AuthService) Validate(ctx context.Context, token string) (*models.Principal, error) {
	claims, err := s.codec.Parse(token)
	if err != nil {
		metrics.TokenValidationFailures.Inc()
		s.logger.Debug("token validation failed", slog.Any("error", err))
		return nil, models.ErrTokenInvalid
	}
	return models.PrincipalFromClaims(claims), nil
}

func (s *AuthService) issueFor(ctx context.Context, user *models.User) (*AuthResult, error) {
	roles, err := s.roles.FindRolesForUser(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to resolve roles", slog.Int64("user_id", user.ID), slog.Any("error", err))
		return nil, err
	}

	principal := models.NewPrincipal(user, roles)

	token, err := s.codec.Issue(principal)
	if err != nil {
		s.logger.Error("failed to issue token", slog.Int64("user_id", user.ID), slog.Any("error", err))
		return nil, err
	}

	return &AuthResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.codec.TTL().Milliseconds(),
		User: UserInfo{
			UserID:     user.ID,
			Username:   user.Username,
			Email:      user.Email,
			FullName:   user.FullName,
			FabrikaKod: user.FabrikaKod,
			Roles:      principal.Authorities,
		},
	}, nil
}

func (s *AuthService) failLogin(userID int64, reason string) error {
	metrics.LoginAttempts.WithLabelValues("failure").Inc()
	s.logger.Info("login failed", slog.String("reason", reason))
	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType:     "login_failed",
		UserID:        userID,
		Success:       false,
		FailureReason: reason,
	})
	return models.ErrAuthenticationFailed
}

// blockedAccountReason returns a non-empty internal reason when the account
// state forbids login. The reason never reaches the caller.
func blockedAccountReason(user *models.User) string {
	switch {
	case !user.Active:
		return "account_inactive"
	case user.Locked:
		return "account_locked"
	case user.PasswordExpired:
		return "password_expired"
	}
	return ""
}
