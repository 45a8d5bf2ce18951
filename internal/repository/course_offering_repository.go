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

// CourseOfferingRepository provides persistence for course offerings. It is
// backed by an sqlx.ExtContext so the same code runs against the pool or a
// transaction opened by the tx manager.
type CourseOfferingRepository struct {
	ext sqlx.ExtContext
}

// NewCourseOfferingRepository creates a pool-backed offering repository.
func NewCourseOfferingRepository(db *sqlx.DB) *CourseOfferingRepository {
	return &CourseOfferingRepository{ext: db}
}

func newCourseOfferingRepositoryTx(tx *sqlx.Tx) *CourseOfferingRepository {
	return &CourseOfferingRepository{ext: tx}
}

const offeringColumns = `id, course_id, instructor_id, classroom_id, term_id, group_no, student_count, created_at, updated_at`

// List returns offerings with optional filtering and pagination.
func (r *CourseOfferingRepository) List(ctx context.Context, filter models.CourseOfferingFilter) ([]models.CourseOffering, int, error) {
	base := "FROM course_offerings WHERE 1=1"
	var args []interface{}

	if filter.TermID != "" {
		base += fmt.Sprintf(" AND term_id = $%d", len(args)+1)
		args = append(args, filter.TermID)
	}
	if filter.CourseID != "" {
		base += fmt.Sprintf(" AND course_id = $%d", len(args)+1)
		args = append(args, filter.CourseID)
	}
	if filter.InstructorID != "" {
		base += fmt.Sprintf(" AND instructor_id = $%d", len(args)+1)
		args = append(args, filter.InstructorID)
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	sortBy := filter.SortBy
	if sortBy != "created_at" && sortBy != "student_count" {
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", offeringColumns, base, sortBy, order, size, (page-1)*size)
	var offerings []models.CourseOffering
	if err := sqlx.SelectContext(ctx, r.ext, &offerings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list course offerings: %w", err)
	}

	var total int
	if err := sqlx.GetContext(ctx, r.ext, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count course offerings: %w", err)
	}
	return offerings, total, nil
}

// FindByID loads an offering by id.
func (r *CourseOfferingRepository) FindByID(ctx context.Context, id string) (*models.CourseOffering, error) {
	query := fmt.Sprintf(`SELECT %s FROM course_offerings WHERE id = $1`, offeringColumns)
	var offering models.CourseOffering
	if err := sqlx.GetContext(ctx, r.ext, &offering, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course offering: %w", err)
	}
	return &offering, nil
}

// Exists reports whether the (course, term, group) tuple is already offered.
func (r *CourseOfferingRepository) Exists(ctx context.Context, courseID, termID string, groupNo *int, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM course_offerings WHERE course_id = $1 AND term_id = $2 AND group_no IS NOT DISTINCT FROM $3 AND ($4 = '' OR id::text <> $4))`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext, &exists, query, courseID, termID, groupNo, excludeID); err != nil {
		return false, fmt.Errorf("check course offering: %w", err)
	}
	return exists, nil
}

// Create stores a new offering record.
func (r *CourseOfferingRepository) Create(ctx context.Context, offering *models.CourseOffering) error {
	if offering.ID == "" {
		offering.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	offering.CreatedAt = now
	offering.UpdatedAt = now
	const query = `INSERT INTO course_offerings (id, course_id, instructor_id, classroom_id, term_id, group_no, student_count, created_at, updated_at) VALUES (:id, :course_id, :instructor_id, :classroom_id, :term_id, :group_no, :student_count, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.ext, query, offering); err != nil {
		return fmt.Errorf("create course offering: %w", err)
	}
	return nil
}

// Update modifies mutable fields of an offering.
func (r *CourseOfferingRepository) Update(ctx context.Context, offering *models.CourseOffering) error {
	offering.UpdatedAt = time.Now().UTC()
	const query = `UPDATE course_offerings SET instructor_id = :instructor_id, classroom_id = :classroom_id, group_no = :group_no, student_count = :student_count, updated_at = :updated_at WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.ext, query, offering); err != nil {
		return fmt.Errorf("update course offering: %w", err)
	}
	return nil
}

// Delete removes an offering.
func (r *CourseOfferingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM course_offerings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course offering: %w", err)
	}
	return nil
}
