package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "identity_test")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("MONGO_DATABASE", "catalog_test")
	t.Setenv("MONGO_TIMEOUT", "5s")
	t.Setenv("JWT_ACCESS_TOKEN_DURATION", "15m")
	t.Setenv("JWT_REFRESH_TOKEN_DURATION", "24h")
	t.Setenv("JWT_KEY_PATH", "/tmp/keys/signing.pem")
	t.Setenv("PORT", "5011")
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr bool
	}{
		{
			name:    "valid config",
			setup:   func(t *testing.T) {},
			wantErr: false,
		},
		{
			name: "invalid db port",
			setup: func(t *testing.T) {
				t.Setenv("DB_PORT", "invalid")
			},
			wantErr: true,
		},
		{
			name: "invalid jwt durations",
			setup: func(t *testing.T) {
				t.Setenv("JWT_ACCESS_TOKEN_DURATION", "invalid")
				t.Setenv("JWT_REFRESH_TOKEN_DURATION", "invalid")
			},
			wantErr: true,
		},
		{
			name: "invalid server port",
			setup: func(t *testing.T) {
				t.Setenv("PORT", "invalid")
			},
			wantErr: true,
		},
		{
			name: "invalid mongo timeout",
			setup: func(t *testing.T) {
				t.Setenv("MONGO_TIMEOUT", "soon")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidEnv(t)
			tt.setup(t)

			cfg, err := LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "localhost", cfg.DBHost)
			assert.Equal(t, 5432, cfg.DBPort)
			assert.Equal(t, "identity_test", cfg.DBName)
			assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
			assert.Equal(t, "catalog_test", cfg.MongoDatabase)
			assert.Equal(t, "courses", cfg.CourseCollection)
			assert.Equal(t, "categories", cfg.CategoryCollection)
			assert.Equal(t, 5*time.Second, cfg.MongoTimeout)
			assert.Equal(t, 15*time.Minute, cfg.JWTAccessDuration)
			assert.Equal(t, 24*time.Hour, cfg.JWTRefreshDuration)
			assert.Equal(t, "/tmp/keys/signing.pem.pub", cfg.JWTPublicKeyPath)
			assert.Equal(t, 5011, cfg.ServerPort)
		})
	}
}

func TestConfig_ConnectionStrings(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     5433,
		DBUser:     "owner",
		DBPassword: "pw",
		DBName:     "users",
	}

	assert.Equal(t, "host=db port=5433 user=owner password=pw dbname=users sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, "postgres://owner:pw@db:5433/users?sslmode=disable", cfg.PostgresURL())
}
