package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/gin-gonic/gin"
)

type forgotRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

type profileRequest struct {
	Username       *string `json:"username" binding:"omitempty,min=2,max=80"`
	Timezone       *string `json:"timezone" binding:"omitempty,timezone"`
	DayStartTime   *string `json:"day_start_time" binding:"omitempty,hhmm"`
	NightStartTime *string `json:"night_start_time" binding:"omitempty,hhmm"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "forgot_password", err)
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, "forgot_password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "reset link sent"})
}

// ResetPassword expects the reset token as the bearer credential.
func (h *Handler) ResetPassword(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "reset_password", err)
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), token, req.Email, req.Password); err != nil {
		respondError(c, "reset_password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "password updated"})
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "verify_email", err)
		return
	}
	user, err := h.Svc.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, "verify_email", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "email verified", "user": user})
}

func (h *Handler) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "update_profile", err)
		return
	}
	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), services.ProfileInput{
		Username:       req.Username,
		Timezone:       req.Timezone,
		DayStartTime:   req.DayStartTime,
		NightStartTime: req.NightStartTime,
	})
	if err != nil {
		respondError(c, "update_profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "profile updated", "user": user})
}
