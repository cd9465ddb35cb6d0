package handlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/db"
	"github.com/4GeeksAcademy/Place-Between-Daniel/mailer"
	"github.com/4GeeksAcademy/Place-Between-Daniel/services"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm/logger"
)

func newMockHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := db.Open(postgres.New(postgres.Config{Conn: sqlDB}), logger.Discard)
	require.NoError(t, err)

	cfg := &config.Config{FrontendURL: "http://app.test/"}
	svc := services.New(conn, mailer.New(mailer.LogSender{}, mailer.Templates{}, time.Second), cfg)
	svc.Now = func() time.Time { return time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC) }
	return New(svc, cfg), mock
}

// asUser stands in for the auth middleware.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}

func TestCompleteActivityAcceptsClientBody(t *testing.T) {
	h, mock := newMockHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "timezone", "day_start_time", "night_start_time"}).
			AddRow(1, "ana@example.com", "ana", "UTC", "06:00", "19:00"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "activities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "external_id", "name", "activity_type", "is_active"}).
			AddRow(7, "ext-1", "Respiración guiada", "day", true))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "daily_sessions" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "daily_sessions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "activity_completions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "activity_completions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "daily_sessions" SET "points_earned"=points_earned + $1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "last_activity_at"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := gin.New()
	r.POST("/activities/complete", asUser(1), h.CompleteActivity)

	body := `{"external_id":"ext-1","session_type":"day","is_recommended":true,"source":"today"}`
	req := httptest.NewRequest(http.MethodPost, "/activities/complete", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"points_awarded":20`)
	assert.Contains(t, w.Body.String(), `"already_completed":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
