package http

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ipede/freecourse-services/internal/domain"
	"github.com/ipede/freecourse-services/internal/infrastructure/metrics"
	"github.com/ipede/freecourse-services/internal/interfaces/http/dto"
	"github.com/ipede/freecourse-services/internal/interfaces/http/handlers"
	"github.com/ipede/freecourse-services/internal/interfaces/http/middleware/auth"
	"github.com/ipede/freecourse-services/internal/interfaces/http/middleware/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Catalog API resource and the scope its routes require
const (
	CatalogAudience = "resource_catalog"
	CatalogScope    = "catalog_fullpermission"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// Ops holds what both services expose besides their API
type Ops struct {
	DB          Pinger
	Metrics     prometheus.Gatherer
	Collector   metrics.MetricsCollector
	SwaggerPath string
}

// IdentityDeps are the collaborators of the identity server routes
type IdentityDeps struct {
	Ops
	Users     handlers.UserService
	Issuer    handlers.TokenIssuer
	Keys      handlers.KeySource
	PublicKey *rsa.PublicKey
	Discovery handlers.Discovery

	// Token endpoint limit per client IP
	TokenRate  rate.Limit
	TokenBurst int
}

// CatalogDeps are the collaborators of the catalog service routes
type CatalogDeps struct {
	Ops
	Categories handlers.CategoryService
	Courses    handlers.CourseService
	PublicKey  *rsa.PublicKey
	// Issuer is the identity server URL expected in the iss claim
	Issuer string
}

type Router struct {
	router *chi.Mux
}

// NewIdentityRouter serves the token endpoint, discovery and the local user API.
// The rate limiter cleanup stops when ctx is done.
func NewIdentityRouter(ctx context.Context, deps IdentityDeps, logger *zap.Logger) *Router {
	authMiddleware := auth.NewAuthMiddleware(deps.PublicKey, logger)
	tokenHandler := handlers.NewTokenHandler(deps.Issuer, logger)
	oidcHandler := handlers.NewOIDCHandler(deps.Keys, deps.Discovery, logger)
	userHandler := handlers.NewUserHandler(deps.Users, logger)

	rateLimiter := ratelimit.NewRateLimiter(deps.TokenRate, deps.TokenBurst, 3*time.Minute, logger)
	go rateLimiter.Run(ctx, time.Minute)

	router := createRouter(deps.Ops, logger)

	router.With(rateLimiter.Middleware).Post("/connect/token", tokenHandler.Token)
	router.Get("/.well-known/openid-configuration", oidcHandler.GetOpenIDConfigurationHandler)
	router.Get("/.well-known/jwks.json", oidcHandler.GetJWKSHandler)

	router.Route("/api/user", func(r chi.Router) {
		// Public routes
		r.Post("/signup", userHandler.SignUp)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Verifier())
			r.Use(authMiddleware.Authenticator)
			r.Use(authMiddleware.RequireScope(domain.ScopeLocalAPI))
			r.Get("/", userHandler.GetCurrentUser)
		})
	})

	return &Router{router: router}
}

// NewCatalogRouter serves the category and course API. Every route needs a
// token from deps.Issuer for the catalog audience carrying the catalog scope.
func NewCatalogRouter(deps CatalogDeps, logger *zap.Logger) *Router {
	authMiddleware := auth.NewAuthMiddleware(deps.PublicKey, logger).
		WithErrorWriter(func(w http.ResponseWriter, code, message string, status int) {
			if err := dto.Write(w, dto.Fail(status, message)); err != nil {
				logger.Error("Failed to encode response", zap.Error(err))
			}
		})
	categoryHandler := handlers.NewCategoryHandler(deps.Categories, logger)
	courseHandler := handlers.NewCourseHandler(deps.Courses, logger)

	router := createRouter(deps.Ops, logger)

	router.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Verifier())
		r.Use(authMiddleware.Authenticator)
		r.Use(authMiddleware.RequireIssuer(deps.Issuer))
		r.Use(authMiddleware.RequireAudience(CatalogAudience))
		r.Use(authMiddleware.RequireScope(CatalogScope))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Get("/{id}", categoryHandler.Get)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", courseHandler.List)
			r.Post("/", courseHandler.Create)
			r.Put("/", courseHandler.Update)
			r.Get("/user/{userId}", courseHandler.GetByUserID)
			r.Get("/{id}", courseHandler.Get)
			r.Delete("/{id}", courseHandler.Delete)
		})
	})

	return &Router{router: router}
}

func createRouter(ops Ops, logger *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	collector := ops.Collector
	if collector == nil {
		collector = metrics.Nop{}
	}

	// Add middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(metrics.Middleware(collector))

	// Health check endpoints
	router.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
			if ops.DB != nil {
				if err := ops.DB.Ping(); err != nil {
					logger.Error("Database health check failed", zap.Error(err))
					w.WriteHeader(http.StatusServiceUnavailable)
					w.Write([]byte("Database connection failed"))
					return
				}
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Ready"))
		})

		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Alive"))
		})
	})

	if ops.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", metrics.Handler(ops.Metrics))
	}

	if ops.SwaggerPath != "" {
		router.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.DocExpansion("list"),
			httpSwagger.DomID("swagger-ui"),
			httpSwagger.DeepLinking(true),
			httpSwagger.PersistAuthorization(true),
		))

		// Serve Swagger JSON with CORS headers
		router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			w.Header().Set("Content-Type", "application/json")
			http.ServeFile(w, r, ops.SwaggerPath)
		})
	}

	return router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
