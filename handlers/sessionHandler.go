package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/gin-gonic/gin"
)

type openSessionRequest struct {
	SessionType string `json:"session_type" binding:"omitempty,session_type"`
}

func (h *Handler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "open_session", err)
			return
		}
	}

	session, created, err := h.Svc.OpenSession(c.Request.Context(), middleware.CurrentUserID(c), req.SessionType)
	if err != nil {
		respondError(c, "open_session", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"session": session, "created": created})
}

func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.Svc.ListSessions(c.Request.Context(), middleware.CurrentUserID(c), c.Query("date"))
	if err != nil {
		respondError(c, "list_sessions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
