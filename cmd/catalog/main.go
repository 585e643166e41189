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
	"github.com/ipede/freecourse-services/internal/infrastructure/repository"
	httprouter "github.com/ipede/freecourse-services/internal/interfaces/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// @title FreeCourse Catalog API
// @version 1.0
// @description Courses and categories, each course returned with its category
// @host localhost:5011
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	mongo, err := database.NewMongo(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.Close(); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	if err := mongo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}

	publicKey, err := jwt.LoadPublicKey(cfg.JWTPublicKeyPath)
	if err != nil {
		logger.Fatal("Failed to load token verification key", zap.Error(err), zap.String("path", cfg.JWTPublicKeyPath))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector("catalog", reg)

	categoryRepo := repository.NewCategoryRepository(mongo.DB(), cfg.CategoryCollection, logger)
	courseRepo := repository.NewCourseRepository(mongo.DB(), cfg.CourseCollection, logger)

	swaggerPath := cfg.SwaggerPath
	if swaggerPath == "" {
		swaggerPath = "docs/catalog.swagger.json"
	}

	router := httprouter.NewCatalogRouter(httprouter.CatalogDeps{
		Ops: httprouter.Ops{
			DB:          mongo,
			Metrics:     reg,
			Collector:   collector,
			SwaggerPath: swaggerPath,
		},
		Categories: application.NewCategoryService(categoryRepo, logger),
		Courses:    application.NewCourseService(courseRepo, categoryRepo, collector, logger),
		PublicKey:  publicKey,
		Issuer:     cfg.Issuer,
	}, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting catalog service", zap.Int("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}
