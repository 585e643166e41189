package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ipede/freecourse-services/internal/application"
	"github.com/ipede/freecourse-services/internal/infrastructure/config"
	"github.com/ipede/freecourse-services/internal/infrastructure/database"
	"github.com/ipede/freecourse-services/internal/infrastructure/jwt"
	"github.com/ipede/freecourse-services/internal/infrastructure/metrics"
	"github.com/ipede/freecourse-services/internal/infrastructure/oauth"
	"github.com/ipede/freecourse-services/internal/infrastructure/repository"
	httprouter "github.com/ipede/freecourse-services/internal/interfaces/http"
	"github.com/ipede/freecourse-services/internal/interfaces/http/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// @title FreeCourse Identity Server API
// @version 1.0
// @description OAuth2 token issuer with the resource owner password grant
// @host localhost:5001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := database.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	registry, err := config.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		logger.Fatal("Failed to load client registry", zap.Error(err))
	}

	keys, err := jwt.NewKeyManager(cfg.JWTKeyPath, cfg.JWTPublicKeyPath, logger)
	if err != nil {
		logger.Fatal("Failed to initialize signing key", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector("identity", reg)

	userRepo := repository.NewUserRepository(db, logger)
	userService := application.NewUserService(userRepo, logger)
	validator := application.NewResourceOwnerPasswordValidator(repository.NewCredentialStore(userRepo), logger)

	issuer, err := oauth.NewIssuer(oauth.Config{
		Issuer:          cfg.Issuer,
		AccessTokenExp:  cfg.JWTAccessDuration,
		RefreshTokenExp: cfg.JWTRefreshDuration,
	}, registry, keys, validator, collector, logger)
	if err != nil {
		logger.Fatal("Failed to initialize token issuer", zap.Error(err))
	}

	grantTypes := make([]string, 0, len(oauth.SupportedGrantTypes))
	for _, gt := range oauth.SupportedGrantTypes {
		grantTypes = append(grantTypes, gt.String())
	}

	swaggerPath := cfg.SwaggerPath
	if swaggerPath == "" {
		swaggerPath = "docs/identity.swagger.json"
	}

	router := httprouter.NewIdentityRouter(ctx, httprouter.IdentityDeps{
		Ops: httprouter.Ops{
			DB:          db,
			Metrics:     reg,
			Collector:   collector,
			SwaggerPath: swaggerPath,
		},
		Users:     userService,
		Issuer:    issuer,
		Keys:      keys,
		PublicKey: keys.PublicKey(),
		Discovery: handlers.Discovery{
			Issuer:     issuer.Issuer(),
			GrantTypes: grantTypes,
			Scopes:     registry.ScopeNames(),
		},
		TokenRate:  10,
		TokenBurst: 20,
	}, logger)

	// Start server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting identity server", zap.Int("port", cfg.ServerPort), zap.String("issuer", issuer.Issuer()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("Shutting down server...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}
