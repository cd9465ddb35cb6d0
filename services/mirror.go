package services

import (
	"sort"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
)

const (
	uncategorized = "uncategorized"
	weekDays      = 7

	emptyMirrorMessage = "No sessions yet today. Complete an activity or check in to start."
)

// CompletionRow is one completion joined with its activity, category and session.
type CompletionRow struct {
	ID          uint
	ExternalID  string
	Name        string
	Category    string
	SessionType models.SessionType
	Points      int
	CompletedAt time.Time
}

type CheckinRow struct {
	EmotionID uint
	Name      string
	Value     *int
	Intensity *int
	Note      string
	CreatedAt time.Time
}

type MirrorSession struct {
	ID           uint               `json:"id"`
	SessionType  models.SessionType `json:"session_type"`
	PointsEarned int                `json:"points_earned"`
}

type MirrorActivity struct {
	ID          uint               `json:"id"`
	ExternalID  string             `json:"external_id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	SessionType models.SessionType `json:"session_type"`
	Points      int                `json:"points"`
	CompletedAt time.Time          `json:"completed_at"`
}

type MirrorEmotion struct {
	EmotionID uint      `json:"emotion_id"`
	Name      string    `json:"name"`
	Value     *int      `json:"value"`
	Intensity *int      `json:"intensity"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type DailyMirror struct {
	Date             string           `json:"date"`
	Sessions         []MirrorSession  `json:"sessions"`
	PointsToday      int              `json:"points_today"`
	PointsByCategory map[string]int   `json:"points_by_category"`
	Activities       []MirrorActivity `json:"activities"`
	Emotion          *MirrorEmotion   `json:"emotion"`
	Message          string           `json:"message,omitempty"`
}

// BuildDailyMirror folds one date's sessions, completions and latest check-in
// into the daily summary. It never touches storage.
func BuildDailyMirror(date time.Time, sessions []models.DailySession, completions []CompletionRow, latest *CheckinRow) DailyMirror {
	m := DailyMirror{
		Date:             date.Format(models.DateLayout),
		Sessions:         []MirrorSession{},
		PointsByCategory: map[string]int{},
		Activities:       []MirrorActivity{},
	}
	if len(sessions) == 0 {
		m.Message = emptyMirrorMessage
		return m
	}

	for _, s := range sessions {
		m.Sessions = append(m.Sessions, MirrorSession{
			ID:           s.ID,
			SessionType:  s.SessionType,
			PointsEarned: s.PointsEarned,
		})
		m.PointsToday += s.PointsEarned
	}
	sort.Slice(m.Sessions, func(i, j int) bool {
		return m.Sessions[i].SessionType < m.Sessions[j].SessionType
	})

	rows := make([]CompletionRow, len(completions))
	copy(rows, completions)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CompletedAt.Equal(rows[j].CompletedAt) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].CompletedAt.Before(rows[j].CompletedAt)
	})

	for _, r := range rows {
		category := r.Category
		if category == "" {
			category = uncategorized
		}
		m.PointsByCategory[category] += r.Points
		m.Activities = append(m.Activities, MirrorActivity{
			ID:          r.ID,
			ExternalID:  r.ExternalID,
			Name:        r.Name,
			Category:    category,
			SessionType: r.SessionType,
			Points:      r.Points,
			CompletedAt: r.CompletedAt,
		})
	}

	if latest != nil {
		m.Emotion = &MirrorEmotion{
			EmotionID: latest.EmotionID,
			Name:      latest.Name,
			Value:     latest.Value,
			Intensity: latest.Intensity,
			Note:      latest.Note,
			CreatedAt: latest.CreatedAt,
		}
	}
	return m
}

type WeekDay struct {
	Points      int `json:"points"`
	DayPoints   int `json:"day_points"`
	NightPoints int `json:"night_points"`
}

type WeeklyMirror struct {
	Start       string             `json:"start"`
	End         string             `json:"end"`
	TotalPoints int                `json:"total_points"`
	Dates       []string           `json:"dates"`
	Days        map[string]WeekDay `json:"days"`
}

// WeekWindow returns the first and last date of the 7-day window ending at today.
func WeekWindow(today time.Time) (time.Time, time.Time) {
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -(weekDays - 1)), end
}

// BuildWeeklyMirror always yields exactly seven zero-filled date slots. Sessions
// outside the window are ignored.
func BuildWeeklyMirror(today time.Time, sessions []models.DailySession) WeeklyMirror {
	start, end := WeekWindow(today)
	w := WeeklyMirror{
		Start: start.Format(models.DateLayout),
		End:   end.Format(models.DateLayout),
		Dates: make([]string, 0, weekDays),
		Days:  make(map[string]WeekDay, weekDays),
	}
	for i := 0; i < weekDays; i++ {
		key := start.AddDate(0, 0, i).Format(models.DateLayout)
		w.Dates = append(w.Dates, key)
		w.Days[key] = WeekDay{}
	}

	for _, s := range sessions {
		key := s.DateKey()
		day, ok := w.Days[key]
		if !ok {
			continue
		}
		day.Points += s.PointsEarned
		switch s.SessionType {
		case models.SessionDay:
			day.DayPoints += s.PointsEarned
		case models.SessionNight:
			day.NightPoints += s.PointsEarned
		}
		w.Days[key] = day
		w.TotalPoints += s.PointsEarned
	}
	return w
}
