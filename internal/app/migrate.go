package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/football-hub/internal/config"
)

// NewMigrator opens golang-migrate against DB_URL and the first migrations
// directory found.
func NewMigrator(cfg config.Config) (*migrate.Migrate, string, error) {
	dbURL := strings.TrimSpace(cfg.DBURL)
	if dbURL == "" {
		return nil, "", fmt.Errorf("DB_URL is required")
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		return nil, "", err
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	dsn, _ := postgresDSN(dbURL, cfg.DBDisablePreparedBinary)
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("create migrator: %w", err)
	}
	return m, sourceURL, nil
}

// MigrateUp applies every pending migration. No change is not an error.
func MigrateUp(cfg config.Config) error {
	m, _, err := NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer CloseMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// CloseMigrator closes both ends and joins their errors.
func CloseMigrator(m *migrate.Migrate) error {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		srcErr = fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		dbErr = fmt.Errorf("close migration db: %w", dbErr)
	}
	return errors.Join(srcErr, dbErr)
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		strings.TrimSpace(os.Getenv("MIGRATIONS_PATH")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}
