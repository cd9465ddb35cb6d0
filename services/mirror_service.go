package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"gorm.io/gorm"
)

// Today loads the user's local-date sessions and builds the daily mirror.
// rawType narrows it to one session type.
func (s *Service) Today(ctx context.Context, userID uint, rawType string) (*DailyMirror, error) {
	db := s.DB.WithContext(ctx)
	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, err
	}
	today := LocalToday(user, s.now())

	q := db.Where("user_id = ? AND session_date = ?", user.ID, today)
	if rawType != "" {
		st := models.SessionType(rawType)
		if !st.Valid() {
			return nil, invalid("type must be 'day' or 'night'")
		}
		q = q.Where("session_type = ?", st)
	}
	var sessions []models.DailySession
	if err := q.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if len(sessions) == 0 {
		m := BuildDailyMirror(today, nil, nil, nil)
		return &m, nil
	}

	ids := make([]uint, 0, len(sessions))
	for _, sess := range sessions {
		ids = append(ids, sess.ID)
	}

	var completions []CompletionRow
	if err := db.Table("activity_completions AS ac").
		Select(`ac.id AS id, a.external_id AS external_id, a.name AS name,
			COALESCE(c.name, '') AS category, ds.session_type AS session_type,
			ac.points_awarded AS points, ac.completed_at AS completed_at`).
		Joins("JOIN daily_sessions ds ON ds.id = ac.daily_session_id").
		Joins("JOIN activities a ON a.id = ac.activity_id").
		Joins("LEFT JOIN activity_categories c ON c.id = a.category_id").
		Where("ac.daily_session_id IN ?", ids).
		Order("ac.completed_at ASC").
		Scan(&completions).Error; err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	var latest CheckinRow
	err = db.Table("emotion_checkins AS ec").
		Select(`ec.emotion_id AS emotion_id, e.name AS name, e.value AS value, ec.intensity AS intensity,
			ec.note AS note, ec.created_at AS created_at`).
		Joins("JOIN emotions e ON e.id = ec.emotion_id").
		Where("ec.daily_session_id IN ?", ids).
		Order("ec.created_at DESC").
		Order("ec.id DESC").
		Limit(1).
		Take(&latest).Error
	var latestPtr *CheckinRow
	switch {
	case err == nil:
		latestPtr = &latest
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("load latest checkin: %w", err)
	}

	m := BuildDailyMirror(today, sessions, completions, latestPtr)
	return &m, nil
}

// Week builds the 7-day rollup ending at the user's local today.
func (s *Service) Week(ctx context.Context, userID uint) (*WeeklyMirror, error) {
	db := s.DB.WithContext(ctx)
	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, err
	}
	today := LocalToday(user, s.now())
	start, end := WeekWindow(today)

	var sessions []models.DailySession
	if err := db.Where("user_id = ? AND session_date BETWEEN ? AND ?", user.ID, start, end).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("load week sessions: %w", err)
	}

	w := BuildWeeklyMirror(today, sessions)
	return &w, nil
}
