package integration

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/ipede/freecourse-services/internal/infrastructure/config"
	"github.com/ipede/freecourse-services/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestDatabase connects to the PostgreSQL instance named by TEST_DB_HOST
// and runs all migrations. The test is skipped when TEST_DB_HOST is unset.
func setupTestDatabase(t *testing.T) (*database.Postgres, *config.Config) {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
	}

	cfg := config.NewConfig()
	cfg.DBHost = host
	if port := os.Getenv("TEST_DB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		require.NoError(t, err)
		cfg.DBPort = p
	}
	if user := os.Getenv("TEST_DB_USER"); user != "" {
		cfg.DBUser = user
		cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	}
	if name := os.Getenv("TEST_DB_NAME"); name != "" {
		cfg.DBName = name
	}

	ctx := context.Background()
	var db *database.Postgres
	var err error
	for i := 0; i < 10; i++ {
		db, err = database.NewPostgres(ctx, cfg, zap.NewNop())
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.RunMigrations("../../migrations"))
	return db, cfg
}
