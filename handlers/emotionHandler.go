package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/gin-gonic/gin"
)

type checkinRequest struct {
	EmotionID   uint   `json:"emotion_id" binding:"required"`
	Intensity   int    `json:"intensity" binding:"required,min=1,max=10"`
	Note        string `json:"note" binding:"max=300"`
	SessionType string `json:"session_type" binding:"omitempty,session_type"`
}

func (h *Handler) ListEmotions(c *gin.Context) {
	emotions, err := h.Svc.ListEmotions(c.Request.Context())
	if err != nil {
		respondError(c, "list_emotions", err)
		return
	}
	c.JSON(http.StatusOK, emotions)
}

func (h *Handler) Checkin(c *gin.Context) {
	var req checkinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "emotion_checkin", err)
		return
	}

	result, err := h.Svc.Checkin(c.Request.Context(), services.CheckinInput{
		UserID:      middleware.CurrentUserID(c),
		EmotionID:   req.EmotionID,
		Intensity:   req.Intensity,
		Note:        req.Note,
		SessionType: req.SessionType,
	})
	if err != nil {
		respondError(c, "emotion_checkin", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
