package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uniplan/uniplan-api/internal/models"
)

// ScheduleRepository provides persistence for schedules and their lifecycle
// transitions. Status-changing updates are guarded by the expected current
// status so concurrent transitions cannot both succeed.
type ScheduleRepository struct {
	ext sqlx.ExtContext
}

// NewScheduleRepository creates a pool-backed schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{ext: db}
}

func newScheduleRepositoryTx(tx *sqlx.Tx) *ScheduleRepository {
	return &ScheduleRepository{ext: tx}
}

const scheduleColumns = `id, term_id, department_id, status, submitted_by, submitted_at, evaluated_by, evaluated_at, created_at, updated_at`

// List returns schedules filtered by term, department and status.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, int, error) {
	base := "FROM schedules WHERE 1=1"
	var args []interface{}

	if filter.TermID != "" {
		base += fmt.Sprintf(" AND term_id = $%d", len(args)+1)
		args = append(args, filter.TermID)
	}
	if filter.DepartmentID != "" {
		base += fmt.Sprintf(" AND department_id = $%d", len(args)+1)
		args = append(args, filter.DepartmentID)
	}
	if filter.Status != "" {
		base += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"created_at": true, "updated_at": true, "status": true, "submitted_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", scheduleColumns, base, sortBy, order, size, (page-1)*size)
	var schedules []models.Schedule
	if err := sqlx.SelectContext(ctx, r.ext, &schedules, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedules: %w", err)
	}

	var total int
	if err := sqlx.GetContext(ctx, r.ext, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}
	return schedules, total, nil
}

// FindByID loads a schedule by id.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE id = $1`, scheduleColumns)
	var schedule models.Schedule
	if err := sqlx.GetContext(ctx, r.ext, &schedule, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	return &schedule, nil
}

// ExistsByTermAndDepartment reports whether a schedule already exists for the
// (term, department) pair. Each department keeps a single schedule per term.
func (r *ScheduleRepository) ExistsByTermAndDepartment(ctx context.Context, termID, departmentID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM schedules WHERE term_id = $1 AND department_id = $2)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext, &exists, query, termID, departmentID); err != nil {
		return false, fmt.Errorf("check schedule: %w", err)
	}
	return exists, nil
}

// Create stores a new schedule in draft status.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.Status == "" {
		schedule.Status = models.ScheduleStatusDraft
	}
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	const query = `INSERT INTO schedules (id, term_id, department_id, status, submitted_by, submitted_at, evaluated_by, evaluated_at, created_at, updated_at) VALUES (:id, :term_id, :department_id, :status, :submitted_by, :submitted_at, :evaluated_by, :evaluated_at, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.ext, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// MarkSubmitted moves a draft schedule to pending approval. The returned bool
// reports whether a row was actually transitioned; false means the schedule
// was not in draft status when the update ran.
func (r *ScheduleRepository) MarkSubmitted(ctx context.Context, id, submittedBy string, at time.Time) (bool, error) {
	const query = `UPDATE schedules SET status = $1, submitted_by = $2, submitted_at = $3, updated_at = $3 WHERE id = $4 AND status = $5`
	res, err := r.ext.ExecContext(ctx, query, models.ScheduleStatusPending, submittedBy, at, id, models.ScheduleStatusDraft)
	if err != nil {
		return false, fmt.Errorf("submit schedule: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("submit schedule: %w", err)
	}
	return rows == 1, nil
}

// MarkEvaluated moves a pending schedule to its terminal status (approved or
// rejected). False means the schedule was not pending approval.
func (r *ScheduleRepository) MarkEvaluated(ctx context.Context, id string, status models.ScheduleStatus, evaluatedBy string, at time.Time) (bool, error) {
	const query = `UPDATE schedules SET status = $1, evaluated_by = $2, evaluated_at = $3, updated_at = $3 WHERE id = $4 AND status = $5`
	res, err := r.ext.ExecContext(ctx, query, status, evaluatedBy, at, id, models.ScheduleStatusPending)
	if err != nil {
		return false, fmt.Errorf("evaluate schedule: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("evaluate schedule: %w", err)
	}
	return rows == 1, nil
}
