package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Repository is a Store backed by database/sql. It supports an embedded
// sqlite database (the default for a single-terminal shop) and postgres.
type Repository struct {
	db     *sql.DB
	driver string
	cfg    Config
}

var _ Store = (*Repository)(nil)

func NewRepository(cfg Config) (*Repository, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case DriverSQLite, "":
		cfg.Driver = DriverSQLite
		db, err = sql.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// A single connection serializes write transactions, which is what
		// makes concurrent checkouts against the same product safe on sqlite.
		db.SetMaxOpenConns(1)
		if _, e2 := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); e2 != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure sqlite: %w", e2)
		}
	case DriverPostgres:
		psqlconn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName)
		db, err = sql.Open("postgres", psqlconn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(100)
		db.SetMaxIdleConns(10)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if e2 := db.Ping(); e2 != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	return &Repository{db: db, driver: cfg.Driver, cfg: cfg}, nil
}

// RunMigrations applies the golang-migrate files under
// <MigrationsDir>/<driver>.
func (r *Repository) RunMigrations() error {
	path := filepath.Join(r.cfg.MigrationsDir, r.driver)

	var m *migrate.Migrate
	switch r.driver {
	case DriverSQLite:
		driver, err := migratesqlite.WithInstance(r.db, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("could not create migration driver: %w", err)
		}
		m, err = migrate.NewWithDatabaseInstance(
			fmt.Sprintf("file://%s", path),
			"sqlite",
			driver,
		)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	case DriverPostgres:
		driver, err := migratepg.WithInstance(r.db, &migratepg.Config{
			MigrationsTable: "pos_schema_migrations",
		})
		if err != nil {
			return fmt.Errorf("could not create migration driver: %w", err)
		}
		m, err = migrate.NewWithDatabaseInstance(
			fmt.Sprintf("file://%s", path),
			"postgres",
			driver,
		)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

// forUpdate returns the row-locking clause for drivers that need one.
// sqlite has no FOR UPDATE; its single write connection serializes instead.
func (r *Repository) forUpdate() string {
	if r.driver == DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

func (r *Repository) Close() error {
	return r.db.Close()
}
