package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultAccessTokenDuration is the lifetime of issued access tokens
	DefaultAccessTokenDuration = time.Hour
	// DefaultRefreshTokenDuration is the lifetime of issued refresh tokens
	DefaultRefreshTokenDuration = 60 * 24 * time.Hour
)

// Config holds the application configuration
type Config struct {
	// Database configuration (identity users)
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// MongoDB configuration (catalog)
	MongoURI           string
	MongoDatabase      string
	CourseCollection   string
	CategoryCollection string
	MongoTimeout       time.Duration

	// JWT configuration
	JWTAccessDuration  time.Duration
	JWTRefreshDuration time.Duration
	JWTKeyPath         string
	JWTPublicKeyPath   string
	Issuer             string

	// OAuth2 client/scope registry file, empty for built-in defaults
	RegistryPath string

	// Server configuration
	ServerPort    int
	// Swagger document served at /swagger/doc.json, empty for the service default
	SwaggerPath   string
	MigrationsDir string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		DBHost:     "localhost",
		DBPort:     5432,
		DBUser:     "owner",
		DBPassword: "ownerTest",
		DBName:     "users",

		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "catalogdb",
		CourseCollection:   "courses",
		CategoryCollection: "categories",
		MongoTimeout:       10 * time.Second,

		JWTAccessDuration:  DefaultAccessTokenDuration,
		JWTRefreshDuration: DefaultRefreshTokenDuration,
		JWTKeyPath:         "keys/signing.pem",
		JWTPublicKeyPath:   "keys/signing.pem.pub",
		Issuer:             "http://localhost:5001",

		ServerPort:    8080,
		MigrationsDir: "migrations",
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env from project root
	_ = godotenv.Load()

	defaults := NewConfig()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", strconv.Itoa(defaults.DBPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	serverPort, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(defaults.ServerPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	accessDuration, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_DURATION", defaults.JWTAccessDuration.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_DURATION: %w", err)
	}

	refreshDuration, err := time.ParseDuration(getEnv("JWT_REFRESH_TOKEN_DURATION", defaults.JWTRefreshDuration.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TOKEN_DURATION: %w", err)
	}

	mongoTimeout, err := time.ParseDuration(getEnv("MONGO_TIMEOUT", defaults.MongoTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_TIMEOUT: %w", err)
	}

	keyPath := getEnv("JWT_KEY_PATH", defaults.JWTKeyPath)

	return &Config{
		DBHost:     getEnv("DB_HOST", defaults.DBHost),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", defaults.DBUser),
		DBPassword: getEnv("DB_PASSWORD", defaults.DBPassword),
		DBName:     getEnv("DB_NAME", defaults.DBName),

		MongoURI:           getEnv("MONGO_URI", defaults.MongoURI),
		MongoDatabase:      getEnv("MONGO_DATABASE", defaults.MongoDatabase),
		CourseCollection:   getEnv("MONGO_COURSE_COLLECTION", defaults.CourseCollection),
		CategoryCollection: getEnv("MONGO_CATEGORY_COLLECTION", defaults.CategoryCollection),
		MongoTimeout:       mongoTimeout,

		JWTAccessDuration:  accessDuration,
		JWTRefreshDuration: refreshDuration,
		JWTKeyPath:         keyPath,
		JWTPublicKeyPath:   getEnv("JWT_PUBLIC_KEY_PATH", keyPath+".pub"),
		Issuer:             getEnv("ISSUER", defaults.Issuer),

		RegistryPath: getEnv("CLIENT_REGISTRY_PATH", ""),

		ServerPort:    serverPort,
		SwaggerPath:   getEnv("SWAGGER_PATH", defaults.SwaggerPath),
		MigrationsDir: getEnv("MIGRATIONS_DIR", defaults.MigrationsDir),
	}, nil
}

// PostgresDSN returns the keyword/value connection string for pgx
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// PostgresURL returns the URL form used by golang-migrate
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
