package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/recruitbase/recruitbase-api/internal/cache"
	"github.com/recruitbase/recruitbase-api/internal/database"
	"github.com/recruitbase/recruitbase-api/internal/handlers"
	"github.com/recruitbase/recruitbase-api/internal/services"
)

func main() {
	// 1. Load Environment Variables (.env is optional in deployed envs)
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	// 2. Database Connection
	db, err := database.Connect(dsn)
	if err != nil {
		log.Error("database setup failed", "err", err)
		os.Exit(1)
	}
	log.Info("database connection established")

	// 3. Shared cache — the only in-process shared state.
	ttl := cacheTTL(log)
	store := cache.New(ttl, log)

	// 4. Initialize Core Services
	appService := services.NewApplicationService(db, store, ttl, log)
	jobService := services.NewJobService(db, store, ttl, log)
	deptService := services.NewDepartmentService(db, store, ttl, log)
	dashService := services.NewDashboardService(db, store, ttl, log)

	// 5. Initialize Handlers
	appHandler := handlers.NewApplicationHandler(appService)
	jobHandler := handlers.NewJobHandler(jobService)
	deptHandler := handlers.NewDepartmentHandler(deptService)
	dashHandler := handlers.NewDashboardHandler(dashService)

	// 6. Setup Router & CORS
	r := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // For development only
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Company-ID"}
	r.Use(cors.New(config))

	// 7. Define Routes
	api := r.Group("/api/v1")
	api.GET("/health", handlers.HealthCheck)

	authed := api.Group("", handlers.TenantRequired())
	{
		apps := authed.Group("/applications")
		apps.GET("", appHandler.List)
		apps.GET("/export", appHandler.Export)
		apps.GET("/:id", appHandler.Get)
		apps.POST("", appHandler.Create)
		apps.PUT("/:id", appHandler.Update)
		apps.DELETE("/:id", appHandler.Delete)

		jobs := authed.Group("/jobs")
		jobs.GET("", jobHandler.List)
		jobs.GET("/export", jobHandler.Export)
		jobs.GET("/:id", jobHandler.Get)
		jobs.POST("", jobHandler.Create)
		jobs.PUT("/:id", jobHandler.Update)
		jobs.DELETE("/:id", jobHandler.Delete)

		depts := authed.Group("/departments")
		depts.GET("", deptHandler.List)
		depts.GET("/export", deptHandler.Export)
		depts.GET("/:id", deptHandler.Get)
		depts.POST("", deptHandler.Create)
		depts.PUT("/:id", deptHandler.Update)
		depts.DELETE("/:id", deptHandler.Delete)

		authed.GET("/dashboard/stats", dashHandler.Stats)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// cacheTTL reads CACHE_TTL (Go duration) with a short default. Brief
// staleness on reads is acceptable; writes invalidate eagerly anyway.
func cacheTTL(log *slog.Logger) time.Duration {
	raw := os.Getenv("CACHE_TTL")
	if raw == "" {
		return 60 * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn("invalid CACHE_TTL, using default", "value", raw)
		return 60 * time.Second
	}
	return d
}
