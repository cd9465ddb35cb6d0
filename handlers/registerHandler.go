package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email,max=120"`
	Username string `json:"username" binding:"required,min=2,max=80"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Timezone string `json:"timezone" binding:"omitempty,timezone"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "register", err)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Timezone: req.Timezone,
	})
	if err != nil {
		respondError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "user created", "user": user})
}
