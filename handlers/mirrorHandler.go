package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/gin-gonic/gin"
)

func (h *Handler) MirrorToday(c *gin.Context) {
	m, err := h.Svc.Today(c.Request.Context(), middleware.CurrentUserID(c), c.Query("type"))
	if err != nil {
		respondError(c, "mirror_today", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) MirrorWeek(c *gin.Context) {
	w, err := h.Svc.Week(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, "mirror_week", err)
		return
	}
	c.JSON(http.StatusOK, w)
}
