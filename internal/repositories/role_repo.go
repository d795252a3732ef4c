package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/screenengine/backend/internal/database"
	"github.com/screenengine/backend/internal/models"
)

const roleColumns = `role_id, role_name, role_code, description, active, created_at, updated_at`

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(db *database.DB) *RoleRepository {
	return &RoleRepository{pool: db.Pool}
}

func scanRoleRow(scanner rowScanner) (*models.Role, error) {
	var role models.Role
	var description *string

	err := scanner.Scan(
		&role.ID, &role.RoleName, &role.RoleCode, &description,
		&role.Active, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if description != nil {
		role.Description = *description
	}

	return &role, nil
}

func scanRoleRows(rows pgx.Rows) ([]models.Role, error) {
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		role, err := scanRoleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, *role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return roles, nil
}

func (r *RoleRepository) FindByCode(ctx context.Context, code string) (*models.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM t_role WHERE role_code = $1`
	return scanRoleRow(r.pool.QueryRow(ctx, query, code))
}

// FindRolesForUser resolves the user's role set through the join table,
// filtered to active roles. Membership is read fresh on every call; stale
// assignments to deactivated roles simply drop out of the result.
func (r *RoleRepository) FindRolesForUser(ctx context.Context, userID int64) ([]models.Role, error) {
	query := `
		SELECT r.role_id, r.role_name, r.role_code, r.description, r.active, r.created_at, r.updated_at
		FROM t_role r
		INNER JOIN t_user_role ur ON r.role_id = ur.role_id
		WHERE ur.user_id = $1 AND r.active = TRUE`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return scanRoleRows(rows)
}

func (r *RoleRepository) FindAllActive(ctx context.Context) ([]models.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM t_role WHERE active = TRUE ORDER BY role_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return scanRoleRows(rows)
}

// AssignRoleTx inserts a user-role join row inside the caller's transaction.
// Insert-only; registration uses this to grant the default role atomically
// with the user insert.
func (r *RoleRepository) AssignRoleTx(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO t_user_role (user_id, role_id, created_by) VALUES ($1, $2, $3)`,
		userID, roleID, createdBy)
	return database.MapPostgresError(err)
}

// ReplaceRoleTx reassigns the user's role with delete-then-insert semantics:
// all existing joins are dropped, then the single new join is inserted.
func (r *RoleRepository) ReplaceRoleTx(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM t_user_role WHERE user_id = $1`, userID); err != nil {
		return database.MapPostgresError(err)
	}

	_, err := tx.Exec(ctx,
		`INSERT INTO t_user_role (user_id, role_id, created_by) VALUES ($1, $2, $3)`,
		userID, roleID, createdBy)
	return database.MapPostgresError(err)
}
