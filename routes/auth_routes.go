package routes

import (
	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/handlers"
	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/gin-gonic/gin"
)

// registerAuthRoutes mounts the credential endpoints behind a per-IP limiter.
func registerAuthRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	limiter := middleware.NewRateLimiter("auth", cfg.AuthRateLimit, cfg.AuthRateWindow)

	auth := api.Group("")
	auth.Use(limiter.Handler())
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/auth/forgot-password", h.ForgotPassword)
	auth.POST("/auth/reset-password", h.ResetPassword)
	auth.POST("/auth/verify-email", h.VerifyEmail)
}
