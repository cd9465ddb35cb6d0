package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/cache"
	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/handlers"
	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires middleware and every API route onto a fresh engine.
func SetupRouter(h *handlers.Handler, cfg *config.Config) *gin.Engine {
	middleware.RegisterValidators()

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", healthHandler(h))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	registerAuthRoutes(api, h, cfg)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware([]byte(cfg.Auth.JWTSecret), h.Svc.DB))
	{
		protected.GET("/profile", h.Profile)
		protected.PUT("/profile", h.UpdateProfile)

		protected.GET("/sessions", h.ListSessions)
		protected.POST("/sessions", h.OpenSession)

		mirror := protected.Group("/mirror")
		mirror.Use(middleware.CacheMiddleware(cfg.MirrorCacheTTL))
		mirror.GET("/today", h.MirrorToday)
		mirror.GET("/week", h.MirrorWeek)

		protected.POST("/emotions/checkin", h.Checkin)
		protected.POST("/activities/complete", h.CompleteActivity)

		protected.GET("/goals", h.ListGoals)
		protected.POST("/goals", h.CreateGoal)
		protected.POST("/goals/:id/progress", h.AddGoalProgress)

		protected.GET("/reminders", h.ListReminders)
		protected.POST("/reminders", h.CreateReminder)
		protected.DELETE("/reminders/:id", h.DeleteReminder)
	}

	// catalog reads are public
	api.GET("/emotions", h.ListEmotions)
	api.GET("/activities", h.ListActivities)

	registerDevRoutes(api, h, cfg)
	return r
}

func healthHandler(h *handlers.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, database := "ok", "connected"
		if sqlDB, err := h.Svc.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status, database = "degraded", "unreachable"
		}
		redis := "disabled"
		if cache.Enabled() {
			redis = "connected"
			if err := cache.Client.Ping(ctx).Err(); err != nil {
				redis = "unreachable"
			}
		}

		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
			"database":  database,
			"redis":     redis,
		})
	}
}
