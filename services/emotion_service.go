package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxNoteLength = 300

type CheckinInput struct {
	UserID      uint
	EmotionID   uint
	Intensity   int
	Note        string
	SessionType string
}

type CheckinResult struct {
	Checkin models.EmotionCheckin `json:"checkin"`
	Session SessionView           `json:"session"`
}

func (s *Service) ListEmotions(ctx context.Context) ([]models.Emotion, error) {
	var emotions []models.Emotion
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&emotions).Error; err != nil {
		return nil, fmt.Errorf("list emotions: %w", err)
	}
	return emotions, nil
}

// Checkin records how the user feels inside today's session of the given type.
func (s *Service) Checkin(ctx context.Context, in CheckinInput) (*CheckinResult, error) {
	if in.EmotionID == 0 {
		return nil, invalid("emotion_id is required")
	}
	if in.Intensity < 1 || in.Intensity > 10 {
		return nil, invalid("intensity must be between 1 and 10")
	}
	note := strings.TrimSpace(in.Note)
	if utf8.RuneCountInString(note) > maxNoteLength {
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

	var emotion models.Emotion
	if err := db.First(&emotion, in.EmotionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("emotion")
		}
		return nil, fmt.Errorf("load emotion: %w", err)
	}

	intensity := in.Intensity
	result := &CheckinResult{}
	err = db.Transaction(func(tx *gorm.DB) error {
		session, _, err := resolveSession(tx, user.ID, LocalToday(user, now), st, false)
		if err != nil {
			return err
		}
		checkin := models.EmotionCheckin{
			DailySessionID: session.ID,
			EmotionID:      emotion.ID,
			Intensity:      &intensity,
			Note:           note,
			CreatedAt:      now.UTC(),
		}
		if err := tx.Create(&checkin).Error; err != nil {
			return fmt.Errorf("create checkin: %w", err)
		}
		if err := touchActivity(tx, user.ID, now.UTC()); err != nil {
			return fmt.Errorf("touch user: %w", err)
		}
		result.Checkin = checkin
		result.Session = NewSessionView(*session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, user.ID)
	utils.Logger.Info("emotion_checkin",
		zap.Uint("user_id", user.ID),
		zap.Uint("emotion_id", emotion.ID),
		zap.Int("intensity", intensity),
		zap.String("session_type", string(st)),
	)
	return result, nil
}
