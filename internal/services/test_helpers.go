package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/screenengine/backend/internal/models"
)

// MockUserStore implements UserStore for testing
type MockUserStore struct {
	FindByIDFunc         func(ctx context.Context, id int64) (*models.User, error)
	FindByUsernameFunc   func(ctx context.Context, username string) (*models.User, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*models.User, error)
	ExistsByUsernameFunc func(ctx context.Context, username string) (bool, error)
	ExistsByEmailFunc    func(ctx context.Context, email string) (bool, error)
	ListFunc             func(ctx context.Context, limit, offset int) ([]*models.User, error)
	CreateTxFunc         func(ctx context.Context, tx pgx.Tx, user *models.User) (*models.User, error)
	SaveFunc             func(ctx context.Context, user *models.User) (*models.User, error)
	RecordLoginFunc      func(ctx context.Context, userID int64) error
}

func (m *MockUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username)
	}
	return false, nil
}

func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserStore) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *MockUserStore) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) (*models.User, error) {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, user)
	}
	return nil, models.ErrStoreUnavailable
}

func (m *MockUserStore) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil, models.ErrStoreUnavailable
}

func (m *MockUserStore) RecordLogin(ctx context.Context, userID int64) error {
	if m.RecordLoginFunc != nil {
		return m.RecordLoginFunc(ctx, userID)
	}
	return nil
}

// MockRoleStore implements RoleStore for testing
type MockRoleStore struct {
	FindByCodeFunc       func(ctx context.Context, code string) (*models.Role, error)
	FindRolesForUserFunc func(ctx context.Context, userID int64) ([]models.Role, error)
	FindAllActiveFunc    func(ctx context.Context) ([]models.Role, error)
	AssignRoleTxFunc     func(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error
	ReplaceRoleTxFunc    func(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error
}

func (m *MockRoleStore) FindByCode(ctx context.Context, code string) (*models.Role, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, models.ErrNotFound
}

func (m *MockRoleStore) FindRolesForUser(ctx context.Context, userID int64) ([]models.Role, error) {
	if m.FindRolesForUserFunc != nil {
		return m.FindRolesForUserFunc(ctx, userID)
	}
	return []models.Role{}, nil
}

func (m *MockRoleStore) FindAllActive(ctx context.Context) ([]models.Role, error) {
	if m.FindAllActiveFunc != nil {
		return m.FindAllActiveFunc(ctx)
	}
	return []models.Role{}, nil
}

func (m *MockRoleStore) AssignRoleTx(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error {
	if m.AssignRoleTxFunc != nil {
		return m.AssignRoleTxFunc(ctx, tx, userID, roleID, createdBy)
	}
	return nil
}

func (m *MockRoleStore) ReplaceRoleTx(ctx context.Context, tx pgx.Tx, userID, roleID int64, createdBy string) error {
	if m.ReplaceRoleTxFunc != nil {
		return m.ReplaceRoleTxFunc(ctx, tx, userID, roleID, createdBy)
	}
	return nil
}

// MockTxRunner runs the transaction function directly with a nil tx; the
// store mocks never touch it.
type MockTxRunner struct {
	WithTransactionFunc func(ctx context.Context, fn func(pgx.Tx) error) error
}

func (m *MockTxRunner) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	if m.WithTransactionFunc != nil {
		return m.WithTransactionFunc(ctx, fn)
	}
	return fn(nil)
}
