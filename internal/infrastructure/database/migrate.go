package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ipede/freecourse-services/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewMigrate creates a migrate instance reading SQL files from dir
func NewMigrate(cfg *config.Config, dir string) (*migrate.Migrate, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("error resolving migrations directory: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations runs all pending migrations from dir
func (p *Postgres) RunMigrations(dir string) error {
	m, err := NewMigrate(p.cfg, dir)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations: %w", err)
	}

	p.log.Info("Migrations completed successfully", zap.String("dir", dir))
	return nil
}
