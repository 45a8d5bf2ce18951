package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
)

func newScheduleMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestScheduleRepositoryList(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "term_id", "department_id", "status", "submitted_by", "submitted_at", "evaluated_by", "evaluated_at", "created_at", "updated_at"}).
		AddRow("sched-1", "term-1", "dept-1", "draft", nil, nil, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, term_id, department_id, status, submitted_by, submitted_at, evaluated_by, evaluated_at, created_at, updated_at FROM schedules WHERE 1=1 AND term_id = $1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("term-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM schedules WHERE 1=1 AND term_id = $1")).
		WithArgs("term-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	schedules, total, err := repo.List(context.Background(), models.ScheduleFilter{TermID: "term-1"})
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryCreateDefaultsToDraft(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	schedule := &models.Schedule{TermID: "term-1", DepartmentID: "dept-1"}
	err := repo.Create(context.Background(), schedule)
	require.NoError(t, err)
	assert.NotEmpty(t, schedule.ID)
	assert.Equal(t, models.ScheduleStatusDraft, schedule.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryMarkSubmitted(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)
	at := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedules SET status = $1, submitted_by = $2, submitted_at = $3, updated_at = $3 WHERE id = $4 AND status = $5")).
		WithArgs(models.ScheduleStatusPending, "user-1", at, "sched-1", models.ScheduleStatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkSubmitted(context.Background(), "sched-1", "user-1", at)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryMarkSubmittedNotDraft(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE schedules SET status").
		WithArgs(models.ScheduleStatusPending, "user-1", at, "sched-1", models.ScheduleStatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.MarkSubmitted(context.Background(), "sched-1", "user-1", at)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryMarkEvaluated(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)
	at := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedules SET status = $1, evaluated_by = $2, evaluated_at = $3, updated_at = $3 WHERE id = $4 AND status = $5")).
		WithArgs(models.ScheduleStatusApproved, "dean-1", at, "sched-1", models.ScheduleStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkEvaluated(context.Background(), "sched-1", models.ScheduleStatusApproved, "dean-1", at)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryExistsByTermAndDepartment(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("term-1", "dept-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByTermAndDepartment(context.Background(), "term-1", "dept-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
