package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uniplan/uniplan-api/internal/models"
)

// ScheduleAssignmentRepository provides persistence for the placements inside
// a schedule, including the conflict probes the assignment write path runs
// before inserting. All conflict checks are scoped to a single schedule.
type ScheduleAssignmentRepository struct {
	ext sqlx.ExtContext
}

// NewScheduleAssignmentRepository creates a pool-backed assignment repository.
func NewScheduleAssignmentRepository(db *sqlx.DB) *ScheduleAssignmentRepository {
	return &ScheduleAssignmentRepository{ext: db}
}

func newScheduleAssignmentRepositoryTx(tx *sqlx.Tx) *ScheduleAssignmentRepository {
	return &ScheduleAssignmentRepository{ext: tx}
}

// ListBySchedule returns the assignments of one schedule joined with the
// course, instructor, classroom and time-slot data the timetable views need.
func (r *ScheduleAssignmentRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleAssignmentDetail, error) {
	const query = `
		SELECT sa.id, sa.schedule_id, sa.course_offering_id, sa.time_slot_id, sa.classroom_id, sa.created_at,
		       c.code AS course_code, c.name AS course_name,
		       co.instructor_id, i.full_name AS instructor_name,
		       cr.code AS classroom_code,
		       ts.day_of_week, ts.start_time, ts.end_time
		FROM schedule_assignments sa
		JOIN course_offerings co ON co.id = sa.course_offering_id
		JOIN courses c ON c.id = co.course_id
		JOIN instructors i ON i.id = co.instructor_id
		JOIN classrooms cr ON cr.id = sa.classroom_id
		JOIN time_slots ts ON ts.id = sa.time_slot_id
		WHERE sa.schedule_id = $1
		ORDER BY ts.day_of_week, ts.start_time, c.code`
	var assignments []models.ScheduleAssignmentDetail
	if err := sqlx.SelectContext(ctx, r.ext, &assignments, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list schedule assignments: %w", err)
	}
	return assignments, nil
}

// FindByID loads a single assignment row.
func (r *ScheduleAssignmentRepository) FindByID(ctx context.Context, id string) (*models.ScheduleAssignment, error) {
	const query = `SELECT id, schedule_id, course_offering_id, time_slot_id, classroom_id, created_at FROM schedule_assignments WHERE id = $1`
	var assignment models.ScheduleAssignment
	if err := sqlx.GetContext(ctx, r.ext, &assignment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule assignment: %w", err)
	}
	return &assignment, nil
}

// HasInstructorConflict reports whether the schedule already places the same
// instructor in the given time slot. excludeAssignmentID skips one existing
// row so a placement can be re-validated against its siblings only; empty
// means consider every row.
func (r *ScheduleAssignmentRepository) HasInstructorConflict(ctx context.Context, scheduleID, instructorID, timeSlotID, excludeAssignmentID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM schedule_assignments sa
			JOIN course_offerings co ON co.id = sa.course_offering_id
			WHERE sa.schedule_id = $1 AND co.instructor_id = $2 AND sa.time_slot_id = $3 AND ($4 = '' OR sa.id::text <> $4)
		)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext, &exists, query, scheduleID, instructorID, timeSlotID, excludeAssignmentID); err != nil {
		return false, fmt.Errorf("check instructor conflict: %w", err)
	}
	return exists, nil
}

// HasClassroomConflict reports whether the schedule already occupies the
// classroom in the given time slot.
func (r *ScheduleAssignmentRepository) HasClassroomConflict(ctx context.Context, scheduleID, classroomID, timeSlotID, excludeAssignmentID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM schedule_assignments sa
			WHERE sa.schedule_id = $1 AND sa.classroom_id = $2 AND sa.time_slot_id = $3 AND ($4 = '' OR sa.id::text <> $4)
		)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext, &exists, query, scheduleID, classroomID, timeSlotID, excludeAssignmentID); err != nil {
		return false, fmt.Errorf("check classroom conflict: %w", err)
	}
	return exists, nil
}

// Create stores a new assignment row.
func (r *ScheduleAssignmentRepository) Create(ctx context.Context, assignment *models.ScheduleAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	assignment.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO schedule_assignments (id, schedule_id, course_offering_id, time_slot_id, classroom_id, created_at) VALUES (:id, :schedule_id, :course_offering_id, :time_slot_id, :classroom_id, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.ext, query, assignment); err != nil {
		return fmt.Errorf("create schedule assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment from its schedule.
func (r *ScheduleAssignmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM schedule_assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule assignment: %w", err)
	}
	return nil
}
