package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Svc *services.Service
	Cfg *config.Config
}

func New(svc *services.Service, cfg *config.Config) *Handler {
	return &Handler{Svc: svc, Cfg: cfg}
}

// respondError maps service errors onto status codes. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, name string, err error) {
	var svcErr *services.Error
	status, kind := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, services.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, services.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, services.ErrUnauthorized):
		status, kind = http.StatusUnauthorized, "unauthorized"
	}
	utils.ErrorCount.WithLabelValues(name, kind).Inc()

	if status == http.StatusInternalServerError {
		utils.Logger.Error(name+"_failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	msg := err.Error()
	if errors.As(err, &svcErr) {
		msg = svcErr.Message
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, name string, err error) {
	utils.ErrorCount.WithLabelValues(name, "validation").Inc()
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.ErrorCount.WithLabelValues(c.FullPath(), "validation").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
