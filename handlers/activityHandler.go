package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/gin-gonic/gin"
)

type completeRequest struct {
	ExternalID    string `json:"external_id" binding:"required,max=120"`
	SessionType   string `json:"session_type" binding:"omitempty,session_type"`
	IsRecommended bool   `json:"is_recommended"`
	Source        string `json:"source" binding:"omitempty,oneof=today catalog"`
}

func (h *Handler) ListActivities(c *gin.Context) {
	activities, err := h.Svc.ListActivities(c.Request.Context(), c.Query("type"))
	if err != nil {
		respondError(c, "list_activities", err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *Handler) CompleteActivity(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "complete_activity", err)
		return
	}

	result, err := h.Svc.CompleteActivity(c.Request.Context(), services.CompleteInput{
		UserID:      middleware.CurrentUserID(c),
		ExternalID:  req.ExternalID,
		SessionType: req.SessionType,
		Recommended: req.IsRecommended,
		Source:      req.Source,
	})
	if err != nil {
		respondError(c, "complete_activity", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
