package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/screenengine/backend/internal/database"
	"github.com/screenengine/backend/internal/models"
)

const userColumns = `user_id, username, password, email, full_name, phone, fabrika_kod,
		active, locked, password_expired, failed_attempts, last_login,
		created_at, updated_at, created_by, updated_by`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var phone, updatedBy *string
	var lastLogin *time.Time

	err := scanner.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&user.FullName, &phone, &user.FabrikaKod,
		&user.Active, &user.Locked, &user.PasswordExpired,
		&user.FailedAttempts, &lastLogin,
		&user.CreatedAt, &user.UpdatedAt, &user.CreatedBy, &updatedBy,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if phone != nil {
		user.Phone = *phone
	}
	if updatedBy != nil {
		user.UpdatedBy = *updatedBy
	}
	user.LastLogin = lastLogin

	return &user, nil
}

func scanUserRows(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM t_user WHERE user_id = $1`
	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM t_user WHERE username = $1`
	return scanUserRow(r.pool.QueryRow(ctx, query, username))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM t_user WHERE email = $1`
	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) > 0 FROM t_user WHERE username = $1`, username).Scan(&exists)
	if err != nil {
		return false, database.MapPostgresError(err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) > 0 FROM t_user WHERE email = $1`, email).Scan(&exists)
	if err != nil {
		return false, database.MapPostgresError(err)
	}
	return exists, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM t_user ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return scanUserRows(rows)
}

// CreateTx inserts a new user row inside the caller's transaction so the
// role-join insert commits atomically with it. Uniqueness on username and
// email is enforced by the store and surfaces as ErrConflict to the loser
// of a concurrent race.
func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO t_user (username, password, email, full_name, phone, fabrika_kod,
			active, locked, password_expired, failed_attempts, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + userColumns

	var phone *string
	if user.Phone != "" {
		phone = &user.Phone
	}

	return scanUserRow(tx.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.FullName, phone,
		user.FabrikaKod, user.Active, user.Locked, user.PasswordExpired,
		user.FailedAttempts, user.CreatedAt, user.UpdatedAt, user.CreatedBy,
	))
}

// Save persists mutable profile and state fields of an existing user.
func (r *UserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE t_user
		SET username = $1, email = $2, full_name = $3, phone = $4, fabrika_kod = $5,
			active = $6, locked = $7, password_expired = $8,
			updated_at = $9, updated_by = $10
		WHERE user_id = $11
		RETURNING ` + userColumns

	var phone *string
	if user.Phone != "" {
		phone = &user.Phone
	}

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.FullName, phone, user.FabrikaKod,
		user.Active, user.Locked, user.PasswordExpired,
		user.UpdatedAt, user.UpdatedBy, user.ID,
	))
}

// RecordLogin refreshes last_login and zeroes the failed-attempt counter
// after a successful credential check.
func (r *UserRepository) RecordLogin(ctx context.Context, userID int64) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE t_user SET last_login = $1, failed_attempts = 0 WHERE user_id = $2`,
		time.Now(), userID)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
