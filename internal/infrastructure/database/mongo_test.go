package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ipede/freecourse-services/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMongo(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	cfg := config.NewConfig()
	cfg.MongoURI = uri
	cfg.MongoDatabase = "catalog_test"

	m, err := NewMongo(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	assert.NoError(t, m.Ping())
	assert.NoError(t, m.EnsureIndexes(ctx))
	assert.Equal(t, "catalog_test", m.DB().Name())
}

func TestNewMongo_Unreachable(t *testing.T) {
	cfg := config.NewConfig()
	cfg.MongoURI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200"
	cfg.MongoTimeout = time.Second

	_, err := NewMongo(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
