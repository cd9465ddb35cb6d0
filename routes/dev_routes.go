package routes

import (
	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/handlers"
	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/gin-gonic/gin"
)

// registerDevRoutes mounts seeding helpers; they answer 404 unless APP_DEBUG is on.
func registerDevRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	dev := api.Group("/dev")
	dev.Use(middleware.DevOnly(cfg.AppDebug))
	dev.POST("/seed/activities/bulk", h.SeedActivitiesBulk)
	dev.POST("/seed/emotions", h.SeedEmotions)
	dev.POST("/reset", h.ResetSessions)
}
