package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "external_id", "name", "category", "session_type", "points", "completed_at"}).
		AddRow(1, "d-rec-breath-5", "Respiración guiada", "Regulación", "day", 20, fixedNow)
}

func TestTodayFiltersByTypeWithoutCheckin(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows(1, "UTC"))
	mock.ExpectQuery(`SELECT \* FROM "daily_sessions" WHERE .*session_type = \$3`).
		WithArgs(1, date(2025, 3, 14), "day").
		WillReturnRows(sessionRows(10, 20))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM activity_completions AS ac`)).
		WillReturnRows(completionRows())
	mock.ExpectQuery(regexp.QuoteMeta(`FROM emotion_checkins AS ec`)).
		WillReturnRows(sqlmock.NewRows([]string{"emotion_id"}))

	m, err := svc.Today(context.Background(), 1, "day")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-14", m.Date)
	assert.Equal(t, 20, m.PointsToday)
	assert.Equal(t, map[string]int{"Regulación": 20}, m.PointsByCategory)
	require.Len(t, m.Activities, 1)
	assert.Nil(t, m.Emotion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodayIncludesLatestCheckin(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows(1, "UTC"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_sessions"`)).
		WillReturnRows(sessionRows(10, 20))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM activity_completions AS ac`)).
		WillReturnRows(completionRows())
	mock.ExpectQuery(regexp.QuoteMeta(`e.value AS value`)).
		WillReturnRows(sqlmock.NewRows([]string{"emotion_id", "name", "value", "intensity", "note", "created_at"}).
			AddRow(4, "alegria", 3, 8, "buen día", fixedNow))

	m, err := svc.Today(context.Background(), 1, "")
	require.NoError(t, err)

	require.NotNil(t, m.Emotion)
	assert.Equal(t, "alegria", m.Emotion.Name)
	require.NotNil(t, m.Emotion.Value)
	assert.Equal(t, 3, *m.Emotion.Value)
	assert.Equal(t, 8, *m.Emotion.Intensity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodayWithoutSessions(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows(1, "UTC"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_sessions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	m, err := svc.Today(context.Background(), 1, "")
	require.NoError(t, err)

	assert.Zero(t, m.PointsToday)
	assert.NotEmpty(t, m.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodayRejectsUnknownType(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows(1, "UTC"))

	_, err := svc.Today(context.Background(), 1, "noon")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWeekQueriesSevenDayWindow(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows(1, "UTC"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_sessions" WHERE user_id = $1 AND session_date BETWEEN $2 AND $3`)).
		WithArgs(1, date(2025, 3, 8), date(2025, 3, 14)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "session_date", "session_type", "points_earned"}).
			AddRow(1, 1, date(2025, 3, 8), "day", 10).
			AddRow(2, 1, date(2025, 3, 14), "night", 5).
			AddRow(3, 1, date(2025, 3, 14), "day", 20))

	w, err := svc.Week(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-08", w.Start)
	assert.Equal(t, "2025-03-14", w.End)
	assert.Equal(t, 35, w.TotalPoints)
	assert.Len(t, w.Dates, 7)
	assert.Equal(t, WeekDay{Points: 25, DayPoints: 20, NightPoints: 5}, w.Days["2025-03-14"])
	assert.Equal(t, WeekDay{}, w.Days["2025-03-10"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
