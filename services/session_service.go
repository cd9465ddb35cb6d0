package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultDayStart   = 6 * 60
	defaultNightStart = 19 * 60
)

// LocalNow is now in the user's stored timezone.
func LocalNow(user *models.User, now time.Time) time.Time {
	return now.In(utils.LoadLocation(user.Timezone))
}

// LocalToday is the user's calendar date, stored as UTC midnight.
func LocalToday(user *models.User, now time.Time) time.Time {
	return utils.CalendarDate(LocalNow(user, now))
}

// SessionTypeAt classifies a user-local clock time as day or night using the
// user's boundaries. A day window that wraps past midnight is supported.
func SessionTypeAt(local time.Time, dayStart, nightStart string) models.SessionType {
	ds, err := utils.ParseClock(dayStart)
	if err != nil {
		ds = defaultDayStart
	}
	ns, err := utils.ParseClock(nightStart)
	if err != nil {
		ns = defaultNightStart
	}

	m := utils.MinuteOfDay(local)
	if ds <= ns {
		if m >= ds && m < ns {
			return models.SessionDay
		}
		return models.SessionNight
	}
	if m >= ns && m < ds {
		return models.SessionNight
	}
	return models.SessionDay
}

func parseSessionType(raw string, user *models.User, now time.Time) (models.SessionType, error) {
	if raw == "" {
		return SessionTypeAt(LocalNow(user, now), user.DayStartTime, user.NightStartTime), nil
	}
	st := models.SessionType(raw)
	if !st.Valid() {
		return "", invalid("session_type must be 'day' or 'night'")
	}
	return st, nil
}

func (s *Service) loadUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// resolveSession finds the (user, date, type) session or creates it. With lock
// the row is selected FOR UPDATE so the running total is serialized inside tx.
func resolveSession(tx *gorm.DB, userID uint, date time.Time, st models.SessionType, lock bool) (*models.DailySession, bool, error) {
	find := func() (*models.DailySession, error) {
		var session models.DailySession
		q := tx
		if lock {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		err := q.Where("user_id = ? AND session_date = ? AND session_type = ?", userID, date, st).
			First(&session).Error
		if err != nil {
			return nil, err
		}
		return &session, nil
	}

	session, err := find()
	if err == nil {
		return session, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find session: %w", err)
	}

	created := models.DailySession{
		UserID:      userID,
		SessionDate: date,
		SessionType: st,
		IsActive:    true,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&created)
	if res.Error != nil {
		return nil, false, fmt.Errorf("create session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// another request created it first
		session, err = find()
		if err != nil {
			return nil, false, fmt.Errorf("reload session: %w", err)
		}
		return session, false, nil
	}
	return &created, true, nil
}

type SessionView struct {
	ID           uint               `json:"id"`
	SessionDate  string             `json:"session_date"`
	SessionType  models.SessionType `json:"session_type"`
	PointsEarned int                `json:"points_earned"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
}

func NewSessionView(s models.DailySession) SessionView {
	return SessionView{
		ID:           s.ID,
		SessionDate:  s.DateKey(),
		SessionType:  s.SessionType,
		PointsEarned: s.PointsEarned,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
	}
}

// OpenSession resolves or creates today's session of the requested type.
func (s *Service) OpenSession(ctx context.Context, userID uint, rawType string) (*SessionView, bool, error) {
	tx := s.DB.WithContext(ctx)
	user, err := s.loadUser(tx, userID)
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	st, err := parseSessionType(rawType, user, now)
	if err != nil {
		return nil, false, err
	}

	session, created, err := resolveSession(tx, user.ID, LocalToday(user, now), st, false)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.invalidate(ctx, user.ID)
		utils.Logger.Info("session_opened",
			zap.Uint("user_id", user.ID),
			zap.String("session_type", string(st)),
			zap.String("date", session.DateKey()))
	}
	view := NewSessionView(*session)
	return &view, created, nil
}

// ListSessions returns the user's sessions for a date (YYYY-MM-DD), default today.
func (s *Service) ListSessions(ctx context.Context, userID uint, rawDate string) ([]SessionView, error) {
	tx := s.DB.WithContext(ctx)
	user, err := s.loadUser(tx, userID)
	if err != nil {
		return nil, err
	}

	date := LocalToday(user, s.now())
	if rawDate != "" {
		parsed, err := time.Parse(models.DateLayout, rawDate)
		if err != nil {
			return nil, invalid("date must be YYYY-MM-DD")
		}
		date = parsed
	}

	var sessions []models.DailySession
	if err := tx.Where("user_id = ? AND session_date = ?", user.ID, date).
		Order("session_type ASC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	views := make([]SessionView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, NewSessionView(sess))
	}
	return views, nil
}

func touchActivity(tx *gorm.DB, userID uint, at time.Time) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("last_activity_at", at).Error
}
