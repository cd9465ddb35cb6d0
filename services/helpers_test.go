package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/config"
	"github.com/4GeeksAcademy/Place-Between-Daniel/db"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm/logger"
)

type sentMail struct {
	Kind  string
	Email string
	URL   string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeNotifier) record(kind, email, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{Kind: kind, Email: email, URL: url})
	return f.err
}

func (f *fakeNotifier) SendWelcome(_ context.Context, email, _, loginURL string) error {
	return f.record("welcome", email, loginURL)
}

func (f *fakeNotifier) SendVerification(_ context.Context, email, _, verifyURL string) error {
	return f.record("verify", email, verifyURL)
}

func (f *fakeNotifier) SendPasswordReset(_ context.Context, email, resetURL string) error {
	return f.record("reset", email, resetURL)
}

func (f *fakeNotifier) SendReminder(_ context.Context, email, _, reminderType, _ string) error {
	return f.record("reminder:"+reminderType, email, "")
}

func testConfig() *config.Config {
	return &config.Config{
		FrontendURL:     "http://app.test/",
		ReminderWorkers: 2,
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			AccessTTL:   24 * time.Hour,
			RememberTTL: 720 * time.Hour,
			ResetTTL:    15 * time.Minute,
			VerifyTTL:   48 * time.Hour,
			BcryptCost:  4,
		},
	}
}

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock, *fakeNotifier) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := db.Open(postgres.New(postgres.Config{Conn: sqlDB}), logger.Discard)
	require.NoError(t, err)

	mail := &fakeNotifier{}
	svc := New(conn, mail, testConfig())
	svc.Now = func() time.Time { return fixedNow }
	return svc, mock, mail
}

func userRows(id uint, tz string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "timezone", "day_start_time", "night_start_time", "created_at"}).
		AddRow(id, "ana@example.com", "ana", "", tz, "06:00", "19:00", fixedNow.Add(-48*time.Hour))
}

type cacheSpy struct {
	mu          sync.Mutex
	invalidated []uint
	flushes     int
}

// spyCache records cache invalidations for the duration of the test.
func spyCache(t *testing.T) *cacheSpy {
	t.Helper()
	spy := &cacheSpy{}
	prevInvalidate, prevFlush := invalidateUser, flushCache
	invalidateUser = func(_ context.Context, userID uint) error {
		spy.mu.Lock()
		defer spy.mu.Unlock()
		spy.invalidated = append(spy.invalidated, userID)
		return nil
	}
	flushCache = func(context.Context) error {
		spy.mu.Lock()
		defer spy.mu.Unlock()
		spy.flushes++
		return nil
	}
	t.Cleanup(func() { invalidateUser, flushCache = prevInvalidate, prevFlush })
	return spy
}
