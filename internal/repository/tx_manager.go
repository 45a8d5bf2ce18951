package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/uniplan/uniplan-api/internal/models"
)

// ScheduleStore is the schedule surface available inside a transaction.
type ScheduleStore interface {
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	ExistsByTermAndDepartment(ctx context.Context, termID, departmentID string) (bool, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	MarkSubmitted(ctx context.Context, id, submittedBy string, at time.Time) (bool, error)
	MarkEvaluated(ctx context.Context, id string, status models.ScheduleStatus, evaluatedBy string, at time.Time) (bool, error)
}

// ScheduleAssignmentStore is the assignment surface available inside a
// transaction.
type ScheduleAssignmentStore interface {
	FindByID(ctx context.Context, id string) (*models.ScheduleAssignment, error)
	HasInstructorConflict(ctx context.Context, scheduleID, instructorID, timeSlotID, excludeAssignmentID string) (bool, error)
	HasClassroomConflict(ctx context.Context, scheduleID, classroomID, timeSlotID, excludeAssignmentID string) (bool, error)
	Create(ctx context.Context, assignment *models.ScheduleAssignment) error
	Delete(ctx context.Context, id string) error
}

// CourseOfferingStore is the offering surface available inside a transaction.
type CourseOfferingStore interface {
	FindByID(ctx context.Context, id string) (*models.CourseOffering, error)
}

// ReviewNoteStore is the review note surface available inside a transaction.
type ReviewNoteStore interface {
	Create(ctx context.Context, note *models.ReviewNote) error
}

// TxRepositories bundles transaction-scoped repository instances so a service
// can run a multi-statement write path against a single transaction.
type TxRepositories struct {
	Schedules   ScheduleStore
	Assignments ScheduleAssignmentStore
	Offerings   CourseOfferingStore
	ReviewNotes ReviewNoteStore
}

// TxManager opens database transactions for service write paths that must
// observe and mutate schedule state atomically.
type TxManager struct {
	db *sqlx.DB
}

// NewTxManager creates a transaction manager over the shared pool.
func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTx runs fn inside a serializable transaction, committing on nil and
// rolling back on error or panic.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	repos := TxRepositories{
		Schedules:   newScheduleRepositoryTx(tx),
		Assignments: newScheduleAssignmentRepositoryTx(tx),
		Offerings:   newCourseOfferingRepositoryTx(tx),
		ReviewNotes: newReviewNoteRepositoryTx(tx),
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
