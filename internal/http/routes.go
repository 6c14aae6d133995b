package http

import (
	"net/http"

	"taskboard/internal/config"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// One fixed-window limiter in front of every API route. Redis variant
	// kicks in when a shared backend is configured.
	rl := middleware.RateLimit(cfg.RateLimit, cfg.RateWindow)
	if cfg.RedisAddr != "" {
		rl = middleware.RedisRateLimit(cfg.RateLimit, cfg.RateWindow)
	}

	registerAPIRoutes(r, h, rl)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
}

func registerAPIRoutes(r *gin.Engine, h *handlers.Handler, rl gin.HandlerFunc) {
	auth := r.Group("/auth")
	auth.Use(rl)
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.JWT(), h.Me)
	}

	tasks := r.Group("/tasks")
	tasks.Use(rl, middleware.JWT())
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.DELETE("/history", h.ClearHistory)
		tasks.PATCH("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}
}

// CORS allows the single-page client to call the API from another origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
