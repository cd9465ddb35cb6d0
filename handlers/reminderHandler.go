package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/gin-gonic/gin"
)

type reminderRequest struct {
	ReminderType         string `json:"reminder_type" binding:"required"`
	Mode                 string `json:"mode" binding:"required,oneof=fixed inactivity"`
	LocalTime            string `json:"local_time" binding:"omitempty,hhmm"`
	InactiveAfterMinutes int    `json:"inactive_after_minutes" binding:"min=0"`
	DaysOfWeek           string `json:"days_of_week" binding:"max=40"`
}

func (h *Handler) ListReminders(c *gin.Context) {
	reminders, err := h.Svc.ListReminders(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, "list_reminders", err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (h *Handler) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "create_reminder", err)
		return
	}
	reminder, err := h.Svc.CreateReminder(c.Request.Context(), services.ReminderInput{
		UserID:               middleware.CurrentUserID(c),
		ReminderType:         req.ReminderType,
		Mode:                 req.Mode,
		LocalTime:            req.LocalTime,
		InactiveAfterMinutes: req.InactiveAfterMinutes,
		DaysOfWeek:           req.DaysOfWeek,
	})
	if err != nil {
		respondError(c, "create_reminder", err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (h *Handler) DeleteReminder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteReminder(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, "delete_reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "reminder deleted"})
}
