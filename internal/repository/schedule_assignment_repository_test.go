package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
)

func TestScheduleAssignmentRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "schedule_id", "course_offering_id", "time_slot_id", "classroom_id", "created_at", "course_code", "course_name", "instructor_id", "instructor_name", "classroom_code", "day_of_week", "start_time", "end_time"}).
		AddRow("assign-1", "sched-1", "offer-1", "slot-1", "room-1", time.Now(), "BLG101", "Intro to Programming", "inst-1", "Ada Lovelace", "D-201", "Monday", "09:00", "10:00")
	mock.ExpectQuery("SELECT sa.id, sa.schedule_id").
		WithArgs("sched-1").
		WillReturnRows(rows)

	assignments, err := repo.ListBySchedule(context.Background(), "sched-1")
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "BLG101", assignments[0].CourseCode)
	assert.Equal(t, "Ada Lovelace", assignments[0].InstructorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleAssignmentRepositoryHasInstructorConflict(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleAssignmentRepository(db)

	// The exclusion predicate must tolerate an empty exclude ID against a
	// native uuid column, so the query compares ids as text behind a guard.
	mock.ExpectQuery(`OR sa.id::text <> \$4`).
		WithArgs("sched-1", "inst-1", "slot-1", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	conflict, err := repo.HasInstructorConflict(context.Background(), "sched-1", "inst-1", "slot-1", "")
	require.NoError(t, err)
	assert.True(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleAssignmentRepositoryHasClassroomConflictExcludesAssignment(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleAssignmentRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("sched-1", "room-1", "slot-1", "assign-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	conflict, err := repo.HasClassroomConflict(context.Background(), "sched-1", "room-1", "slot-1", "assign-1")
	require.NoError(t, err)
	assert.False(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleAssignmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO schedule_assignments").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.ScheduleAssignment{ScheduleID: "sched-1", CourseOfferingID: "offer-1", TimeSlotID: "slot-1", ClassroomID: "room-1"}
	err := repo.Create(context.Background(), assignment)
	require.NoError(t, err)
	assert.NotEmpty(t, assignment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
