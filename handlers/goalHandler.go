package handlers

import (
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/middleware"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/gin-gonic/gin"
)

type goalRequest struct {
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description" binding:"max=255"`
	Size        string `json:"size" binding:"required,oneof=small medium large"`
	TargetValue int    `json:"target_value" binding:"min=0"`
}

type progressRequest struct {
	DeltaValue  int    `json:"delta_value" binding:"required"`
	Note        string `json:"note" binding:"max=300"`
	SessionType string `json:"session_type" binding:"omitempty,session_type"`
}

func (h *Handler) ListGoals(c *gin.Context) {
	goals, err := h.Svc.ListGoals(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, "list_goals", err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *Handler) CreateGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "create_goal", err)
		return
	}
	goal, err := h.Svc.CreateGoal(c.Request.Context(), services.GoalInput{
		UserID:      middleware.CurrentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Size:        req.Size,
		TargetValue: req.TargetValue,
	})
	if err != nil {
		respondError(c, "create_goal", err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *Handler) AddGoalProgress(c *gin.Context) {
	goalID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "goal_progress", err)
		return
	}
	result, err := h.Svc.AddProgress(c.Request.Context(), services.ProgressInput{
		UserID:      middleware.CurrentUserID(c),
		GoalID:      goalID,
		DeltaValue:  req.DeltaValue,
		Note:        req.Note,
		SessionType: req.SessionType,
	})
	if err != nil {
		respondError(c, "goal_progress", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
