package services

import (
	"testing"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDailyMirrorEmpty(t *testing.T) {
	m := BuildDailyMirror(date(2025, 3, 14), nil, nil, nil)

	assert.Equal(t, "2025-03-14", m.Date)
	assert.Zero(t, m.PointsToday)
	assert.Empty(t, m.Sessions)
	assert.Empty(t, m.Activities)
	assert.Empty(t, m.PointsByCategory)
	assert.Nil(t, m.Emotion)
	assert.NotEmpty(t, m.Message)
}

func TestBuildDailyMirrorAggregates(t *testing.T) {
	today := date(2025, 3, 14)
	sessions := []models.DailySession{
		{ID: 2, SessionDate: today, SessionType: models.SessionNight, PointsEarned: 10},
		{ID: 1, SessionDate: today, SessionType: models.SessionDay, PointsEarned: 25},
	}
	base := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	completions := []CompletionRow{
		{ID: 3, ExternalID: "n-journal-1", Name: "Reflexión", Category: "Aprendizaje", SessionType: models.SessionNight, Points: 10, CompletedAt: base.Add(12 * time.Hour)},
		{ID: 1, ExternalID: "d-rec-breath-5", Name: "Respiración", Category: "Regulación", SessionType: models.SessionDay, Points: 20, CompletedAt: base},
		{ID: 2, ExternalID: "d-custom", Name: "Custom", Category: "", SessionType: models.SessionDay, Points: 5, CompletedAt: base.Add(time.Hour)},
	}
	intensity, value := 7, 3
	latest := &CheckinRow{EmotionID: 4, Name: "alegria", Value: &value, Intensity: &intensity, Note: "buen día", CreatedAt: base.Add(13 * time.Hour)}

	m := BuildDailyMirror(today, sessions, completions, latest)

	assert.Equal(t, 35, m.PointsToday)
	assert.Equal(t, map[string]int{"Regulación": 20, "Aprendizaje": 10, "uncategorized": 5}, m.PointsByCategory)
	require.Len(t, m.Activities, 3)
	assert.Equal(t, "d-rec-breath-5", m.Activities[0].ExternalID)
	assert.Equal(t, "d-custom", m.Activities[1].ExternalID)
	assert.Equal(t, "n-journal-1", m.Activities[2].ExternalID)
	require.Len(t, m.Sessions, 2)
	assert.Equal(t, models.SessionDay, m.Sessions[0].SessionType)
	require.NotNil(t, m.Emotion)
	assert.Equal(t, "alegria", m.Emotion.Name)
	require.NotNil(t, m.Emotion.Value)
	assert.Equal(t, 3, *m.Emotion.Value)
	assert.Empty(t, m.Message)

	sum := 0
	for _, a := range m.Activities {
		sum += a.Points
	}
	assert.Equal(t, m.PointsToday, sum)
}

func TestBuildWeeklyMirrorAlwaysSevenDays(t *testing.T) {
	today := date(2025, 3, 14)

	w := BuildWeeklyMirror(today, nil)
	require.Len(t, w.Dates, 7)
	require.Len(t, w.Days, 7)
	assert.Equal(t, "2025-03-08", w.Start)
	assert.Equal(t, "2025-03-14", w.End)
	assert.Equal(t, w.Start, w.Dates[0])
	assert.Equal(t, w.End, w.Dates[6])
	for _, d := range w.Dates {
		assert.Equal(t, WeekDay{}, w.Days[d])
	}
	assert.Zero(t, w.TotalPoints)
}

func TestBuildWeeklyMirrorSplitsDayAndNight(t *testing.T) {
	today := date(2025, 3, 14)
	sessions := []models.DailySession{
		{SessionDate: date(2025, 3, 14), SessionType: models.SessionDay, PointsEarned: 20},
		{SessionDate: date(2025, 3, 14), SessionType: models.SessionNight, PointsEarned: 15},
		{SessionDate: date(2025, 3, 10), SessionType: models.SessionNight, PointsEarned: 5},
		{SessionDate: date(2025, 3, 1), SessionType: models.SessionDay, PointsEarned: 100},
	}

	w := BuildWeeklyMirror(today, sessions)

	require.Len(t, w.Days, 7)
	assert.Equal(t, WeekDay{Points: 35, DayPoints: 20, NightPoints: 15}, w.Days["2025-03-14"])
	assert.Equal(t, WeekDay{Points: 5, NightPoints: 5}, w.Days["2025-03-10"])
	assert.Equal(t, WeekDay{}, w.Days["2025-03-12"])
	assert.Equal(t, 40, w.TotalPoints)
}

func TestBuildWeeklyMirrorAcrossMonthBoundary(t *testing.T) {
	w := BuildWeeklyMirror(date(2025, 3, 2), nil)
	assert.Equal(t, []string{
		"2025-02-24", "2025-02-25", "2025-02-26", "2025-02-27",
		"2025-02-28", "2025-03-01", "2025-03-02",
	}, w.Dates)
}
