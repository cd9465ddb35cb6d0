package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/gin-gonic/gin"
)

type bulkActivitiesRequest struct {
	Activities []services.SeedActivity `json:"activities" binding:"required,min=1"`
}

func (h *Handler) SeedActivitiesBulk(c *gin.Context) {
	var req bulkActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "seed_activities", err)
		return
	}
	result, err := h.Svc.SeedActivities(c.Request.Context(), req.Activities)
	if err != nil {
		respondError(c, "seed_activities", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) SeedEmotions(c *gin.Context) {
	result, err := h.Svc.SeedEmotions(c.Request.Context(), nil)
	if err != nil {
		respondError(c, "seed_emotions", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ResetSessions(c *gin.Context) {
	deleted, err := h.Svc.ResetSessions(c.Request.Context())
	if err != nil {
		respondError(c, "dev_reset", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "sessions reset", "deleted": deleted})
}
