package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/screenengine/backend/internal/auth"
	"github.com/screenengine/backend/internal/database"
	"github.com/screenengine/backend/internal/models"
	"github.com/screenengine/backend/internal/repositories"
	"github.com/screenengine/backend/internal/services"
	pkgauth "github.com/screenengine/backend/pkg/auth"
	pkglogger "github.com/screenengine/backend/pkg/logger"
)

// TestDB manages PostgreSQL testcontainer and database operations
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase creates a PostgreSQL testcontainer, runs migrations, returns TestDB
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("screenengine"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         &database.DB{Pool: pool},
	}, nil
}

// runMigrations executes all goose migrations
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir, err := filepath.Abs("../../migrations")
	if err != nil {
		return fmt.Errorf("failed to get migrations path: %w", err)
	}

	// Goose needs a stdlib DB connection; use the pgx adapter
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupUsers removes all users for test isolation. Seeded roles stay.
func (db *TestDB) CleanupUsers(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, "TRUNCATE TABLE t_user CASCADE"); err != nil {
		return fmt.Errorf("failed to truncate t_user: %w", err)
	}
	return nil
}

// NewAuthService wires an AuthService against the test database.
func (db *TestDB) NewAuthService(secret string, ttl time.Duration) *services.AuthService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userRepo := repositories.NewUserRepository(db.DB)
	roleRepo := repositories.NewRoleRepository(db.DB)
	codec := auth.NewTokenCodec(secret, ttl)
	return services.NewAuthService(userRepo, roleRepo, db.DB, codec, logger, pkglogger.NewAuditLogger(logger))
}

// NewUserService wires a UserService against the test database.
func (db *TestDB) NewUserService() *services.UserService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userRepo := repositories.NewUserRepository(db.DB)
	roleRepo := repositories.NewRoleRepository(db.DB)
	return services.NewUserService(userRepo, roleRepo, db.DB, logger, pkglogger.NewAuditLogger(logger))
}

// SeedUser inserts a test user with a hashed password and the given role code.
func SeedUser(ctx context.Context, pool *pgxpool.Pool, username, email, password, roleCode string) (*models.User, error) {
	digest, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO t_user (username, password, email, full_name, fabrika_kod, created_by)
		VALUES ($1, $2, $3, $4, $5, 'SYSTEM')
		RETURNING user_id
	`

	var user models.User
	user.Username = username
	user.Email = email
	user.PasswordHash = digest
	user.Active = true

	err = pool.QueryRow(ctx, query, username, digest, email, "Test User "+username, models.DefaultFabrikaKod).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO t_user_role (user_id, role_id, created_by)
		SELECT $1, role_id, 'SYSTEM' FROM t_role WHERE role_code = $2
	`, user.ID, roleCode)
	if err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	return &user, nil
}
