package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoalValidation(t *testing.T) {
	svc, _, _ := newMockService(t)
	ctx := context.Background()

	_, err := svc.CreateGoal(ctx, GoalInput{UserID: 1, Title: " ", Size: "small"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateGoal(ctx, GoalInput{UserID: 1, Title: "Leer", Size: "huge"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateGoal(ctx, GoalInput{UserID: 1, Title: "Leer", Size: "small", TargetValue: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddProgressRejectsZeroDelta(t *testing.T) {
	svc, _, _ := newMockService(t)

	_, err := svc.AddProgress(context.Background(), ProgressInput{UserID: 1, GoalID: 2})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddProgressForeignGoal(t *testing.T) {
	svc, mock, _ := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows(1, "UTC"))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "goals" WHERE id = \$1 AND user_id = \$2 .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.AddProgress(context.Background(), ProgressInput{UserID: 1, GoalID: 99, DeltaValue: 1, SessionType: "day"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func goalRows(current, target int, completedAt interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "size", "target_value", "current_value", "is_active", "completed_at"}).
		AddRow(2, 1, "Leer", "small", target, current, true, completedAt)
}

func expectProgressTx(mock sqlmock.Sqlmock, goal *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).WillReturnRows(userRows(1, "UTC"))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "goals" .* FOR UPDATE`).WillReturnRows(goal)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_sessions"`)).WillReturnRows(sessionRows(10, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "goal_progress`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(70))
}

func TestAddProgressReachesTarget(t *testing.T) {
	svc, mock, _ := newMockService(t)

	expectProgressTx(mock, goalRows(2, 3, nil))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "goals" SET "completed_at"=$1,"current_value"=$2`)).
		WithArgs(sqlmock.AnyArg(), 3, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "daily_session_goals" .* ON CONFLICT \("daily_session_id","goal_id"\) DO UPDATE SET "status"="excluded"."status"`).
		WithArgs(10, 2, "done", "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "last_activity_at"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.AddProgress(context.Background(), ProgressInput{UserID: 1, GoalID: 2, DeltaValue: 1, SessionType: "day"})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Goal.CurrentValue)
	require.NotNil(t, res.Goal.CompletedAt)
	assert.True(t, res.Goal.CompletedAt.Equal(fixedNow))
	assert.Equal(t, uint(70), res.Progress.ID)
	assert.Equal(t, uint(10), res.Session.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProgressClampsAndReopens(t *testing.T) {
	svc, mock, _ := newMockService(t)

	expectProgressTx(mock, goalRows(1, 3, fixedNow.Add(-time.Hour)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "goals" SET "completed_at"=$1,"current_value"=$2`)).
		WithArgs(nil, 0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "daily_session_goals"`)).
		WithArgs(10, 2, "active", "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "last_activity_at"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.AddProgress(context.Background(), ProgressInput{UserID: 1, GoalID: 2, DeltaValue: -5, SessionType: "day"})
	require.NoError(t, err)

	assert.Zero(t, res.Goal.CurrentValue)
	assert.Nil(t, res.Goal.CompletedAt)
	assert.Equal(t, -5, res.Progress.DeltaValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
