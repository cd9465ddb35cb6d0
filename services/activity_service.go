package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/cache"
	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompleteInput struct {
	UserID      uint
	ExternalID  string
	SessionType string
	Recommended bool
	Source      string
}

type CompletionResult struct {
	ActivityID       string             `json:"activity_id"`
	PointsAwarded    int                `json:"points_awarded"`
	AlreadyCompleted bool               `json:"already_completed"`
	SessionPoints    int                `json:"session_points"`
	SessionID        uint               `json:"session_id"`
	SessionType      models.SessionType `json:"session_type"`
	SessionDate      string             `json:"session_date"`
}

type ActivityView struct {
	ID           uint                `json:"id"`
	ExternalID   string              `json:"external_id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	ActivityType models.ActivityType `json:"activity_type"`
	Category     string              `json:"category"`
}

// CompleteActivity records an activity completion in today's session and awards
// points once per (session, activity).
func (s *Service) CompleteActivity(ctx context.Context, in CompleteInput) (*CompletionResult, error) {
	externalID := strings.TrimSpace(in.ExternalID)
	if externalID == "" {
		return nil, invalid("external_id is required")
	}
	source := Source(in.Source)
	if in.Source == "" {
		source = SourceToday
	}
	if !source.Valid() {
		return nil, invalid("source must be 'today' or 'catalog'")
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

	var activity models.Activity
	if err := db.Where("external_id = ? AND is_active = ?", externalID, true).
		First(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("activity")
		}
		return nil, fmt.Errorf("load activity: %w", err)
	}

	result := &CompletionResult{
		ActivityID:  activity.ExternalID,
		SessionType: st,
	}
	today := LocalToday(user, now)
	points := PointsFor(in.Recommended, source)

	err = db.Transaction(func(tx *gorm.DB) error {
		session, _, err := resolveSession(tx, user.ID, today, st, true)
		if err != nil {
			return err
		}
		result.SessionID = session.ID
		result.SessionDate = session.DateKey()

		var existing int64
		if err := tx.Model(&models.ActivityCompletion{}).
			Where("daily_session_id = ? AND activity_id = ?", session.ID, activity.ID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("check completion: %w", err)
		}
		if existing > 0 {
			result.AlreadyCompleted = true
			result.SessionPoints = session.PointsEarned
			return nil
		}

		completion := models.ActivityCompletion{
			DailySessionID: session.ID,
			ActivityID:     activity.ID,
			PointsAwarded:  points,
			CompletedAt:    now.UTC(),
		}
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.DailySession{}).Where("id = ?", session.ID).
			UpdateColumn("points_earned", gorm.Expr("points_earned + ?", points)).Error; err != nil {
			return fmt.Errorf("update session points: %w", err)
		}
		if err := touchActivity(tx, user.ID, now.UTC()); err != nil {
			return fmt.Errorf("touch user: %w", err)
		}

		result.PointsAwarded = points
		result.SessionPoints = session.PointsEarned + points
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// a concurrent request inserted the same completion first
		var session models.DailySession
		if rerr := db.Where("user_id = ? AND session_date = ? AND session_type = ?", user.ID, today, st).
			First(&session).Error; rerr != nil {
			return nil, fmt.Errorf("reload session: %w", rerr)
		}
		result.PointsAwarded = 0
		result.AlreadyCompleted = true
		result.SessionID = session.ID
		result.SessionDate = session.DateKey()
		result.SessionPoints = session.PointsEarned
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("complete activity: %w", err)
	}

	if result.AlreadyCompleted {
		utils.CompletionCount.WithLabelValues("already_completed").Inc()
	} else {
		utils.CompletionCount.WithLabelValues("awarded").Inc()
		utils.PointsAwarded.WithLabelValues(string(source)).Add(float64(points))
		s.invalidate(ctx, user.ID)
	}

	utils.Logger.Info("activity_completed",
		zap.Uint("user_id", user.ID),
		zap.String("activity_id", activity.ExternalID),
		zap.Int("points_awarded", result.PointsAwarded),
		zap.Bool("already_completed", result.AlreadyCompleted),
		zap.Uint("session_id", result.SessionID),
	)
	return result, nil
}

// ListActivities returns active activities, optionally only those usable in a
// session type.
func (s *Service) ListActivities(ctx context.Context, rawType string) ([]ActivityView, error) {
	q := s.DB.WithContext(ctx).Preload("Category").Where("is_active = ?", true)
	if rawType != "" {
		st := models.SessionType(rawType)
		if !st.Valid() {
			return nil, invalid("type must be 'day' or 'night'")
		}
		q = q.Where("activity_type IN ?", []string{string(st), string(models.ActivityBoth)})
	}

	var activities []models.Activity
	if err := q.Order("external_id ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, ActivityView{
			ID:           a.ID,
			ExternalID:   a.ExternalID,
			Name:         a.Name,
			Description:  a.Description,
			ActivityType: a.ActivityType,
			Category:     a.Category.Name,
		})
	}
	return views, nil
}

// Swapped in tests.
var (
	invalidateUser = cache.InvalidateUser
	flushCache     = func(ctx context.Context) error { return cache.DeletePattern(ctx, "cache:*") }
)

func (s *Service) invalidate(ctx context.Context, userID uint) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := invalidateUser(ctx, userID); err != nil {
		utils.Logger.Warn("cache_invalidate_failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}
