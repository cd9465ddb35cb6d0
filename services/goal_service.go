package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalInput struct {
	UserID      uint
	Title       string
	Description string
	Size        string
	TargetValue int
}

type ProgressInput struct {
	UserID      uint
	GoalID      uint
	DeltaValue  int
	Note        string
	SessionType string
}

type ProgressResult struct {
	Goal     models.Goal         `json:"goal"`
	Progress models.GoalProgress `json:"progress"`
	Session  SessionView         `json:"session"`
}

func (s *Service) ListGoals(ctx context.Context, userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *Service) CreateGoal(ctx context.Context, in GoalInput) (*models.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	size := models.GoalSize(in.Size)
	if !size.Valid() {
		return nil, invalid("size must be small, medium or large")
	}
	if in.TargetValue < 0 {
		return nil, invalid("target_value must be >= 0")
	}

	goal := models.Goal{
		UserID:      in.UserID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Size:        size,
		TargetValue: in.TargetValue,
		IsActive:    true,
	}
	if err := s.DB.WithContext(ctx).Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &goal, nil
}

// AddProgress applies a delta to one of the user's goals, links the goal to
// today's session and marks it done once the target is reached. Falling back
// below the target reopens the goal.
func (s *Service) AddProgress(ctx context.Context, in ProgressInput) (*ProgressResult, error) {
	if in.DeltaValue == 0 {
		return nil, invalid("delta_value must not be zero")
	}
	note := strings.TrimSpace(in.Note)
	if len([]rune(note)) > maxNoteLength {
		return nil, invalid("note must be at most %d characters", maxNoteLength)
	}

	db := s.DB.WithContext(ctx)
	user, err := s.loadUser(db, in.UserID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	st, err := parseSessionType(in.SessionType, user, now)
	if err != nil {
		return nil, err
	}

	result := &ProgressResult{}
	err = db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", in.GoalID, user.ID).
			First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("goal")
			}
			return fmt.Errorf("load goal: %w", err)
		}

		session, _, err := resolveSession(tx, user.ID, LocalToday(user, now), st, false)
		if err != nil {
			return err
		}

		sessionID := session.ID
		progress := models.GoalProgress{
			GoalID:         goal.ID,
			DailySessionID: &sessionID,
			DeltaValue:     in.DeltaValue,
			Note:           note,
		}
		if err := tx.Create(&progress).Error; err != nil {
			return fmt.Errorf("create progress: %w", err)
		}

		goal.CurrentValue += in.DeltaValue
		if goal.CurrentValue < 0 {
			goal.CurrentValue = 0
		}
		status := models.SessionGoalActive
		if goal.CurrentValue >= goal.TargetValue {
			status = models.SessionGoalDone
			if goal.CompletedAt == nil {
				done := now.UTC()
				goal.CompletedAt = &done
			}
		} else {
			goal.CompletedAt = nil
		}
		if err := tx.Model(&goal).Updates(map[string]interface{}{
			"current_value": goal.CurrentValue,
			"completed_at":  goal.CompletedAt,
		}).Error; err != nil {
			return fmt.Errorf("update goal: %w", err)
		}

		link := models.DailySessionGoal{
			DailySessionID: session.ID,
			GoalID:         goal.ID,
			Status:         status,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "daily_session_id"}, {Name: "goal_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).Create(&link).Error; err != nil {
			return fmt.Errorf("link goal to session: %w", err)
		}
		if err := touchActivity(tx, user.ID, now.UTC()); err != nil {
			return fmt.Errorf("touch user: %w", err)
		}

		result.Goal = goal
		result.Progress = progress
		result.Session = NewSessionView(*session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.Info("goal_progress",
		zap.Uint("user_id", user.ID),
		zap.Uint("goal_id", result.Goal.ID),
		zap.Int("delta", in.DeltaValue),
		zap.Int("current_value", result.Goal.CurrentValue),
	)
	return result, nil
}
