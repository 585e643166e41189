package main

import (
	"errors"
	"flag"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/ipede/freecourse-services/internal/infrastructure/config"
	"github.com/ipede/freecourse-services/internal/infrastructure/database"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	up := flag.Bool("up", false, "Run migrations up")
	down := flag.Bool("down", false, "Run migrations down")
	steps := flag.Int("steps", 0, "Number of steps to migrate (positive for up, negative for down)")
	force := flag.String("force", "", "Force migration to specific version")
	migrationDir := flag.String("dir", "", "Migration directory path (default MIGRATIONS_DIR)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	dir := *migrationDir
	if dir == "" {
		dir = cfg.MigrationsDir
	}

	m, err := database.NewMigrate(cfg, dir)
	if err != nil {
		logger.Fatal("Failed to create migration instance", zap.Error(err))
	}
	defer m.Close()

	logger.Info("Using migrations",
		zap.String("dir", dir),
		zap.String("database", cfg.DBName),
		zap.String("host", cfg.DBHost),
	)

	// Run migrations based on flags
	if *force != "" {
		version, err := strconv.ParseUint(*force, 10, 64)
		if err != nil {
			logger.Fatal("Invalid version number", zap.Error(err))
		}
		if version == 0 {
			if err := m.Drop(); err != nil {
				logger.Fatal("Failed to drop database schema", zap.Error(err))
			}
			logger.Info("Dropped all tables and reset migration state")
		} else {
			if err := m.Force(int(version)); err != nil {
				logger.Fatal("Failed to force migration version", zap.Error(err))
			}
			logger.Info("Forced migration version", zap.Uint64("version", version))
		}
	} else if *up {
		logger.Info("Running migrations up")
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info("No migrations to apply")
			} else {
				logger.Fatal("Failed to run migrations up", zap.Error(err))
			}
		}
		logger.Info("Migrations up completed successfully")
	} else if *down {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Failed to run migrations down", zap.Error(err))
		}
		logger.Info("Migrations down completed successfully")
	} else if *steps != 0 {
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Failed to run migrations steps", zap.Error(err))
		}
		logger.Info("Migrations steps completed successfully", zap.Int("steps", *steps))
	} else {
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal("Failed to get migration version", zap.Error(err))
		}
		logger.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
	}
}
