package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "login", err)
		return
	}

	result, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		respondError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
