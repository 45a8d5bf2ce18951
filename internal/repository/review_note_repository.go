package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uniplan/uniplan-api/internal/models"
)

// ReviewNoteRepository provides persistence for the notes deans and
// department representatives attach to a schedule during review.
type ReviewNoteRepository struct {
	ext sqlx.ExtContext
}

// NewReviewNoteRepository creates a pool-backed review note repository.
func NewReviewNoteRepository(db *sqlx.DB) *ReviewNoteRepository {
	return &ReviewNoteRepository{ext: db}
}

func newReviewNoteRepositoryTx(tx *sqlx.Tx) *ReviewNoteRepository {
	return &ReviewNoteRepository{ext: tx}
}

// ListBySchedule returns the notes of one schedule, newest first.
func (r *ReviewNoteRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ReviewNote, error) {
	const query = `SELECT id, schedule_id, note_type, message, created_by, created_at FROM review_notes WHERE schedule_id = $1 ORDER BY created_at DESC`
	var notes []models.ReviewNote
	if err := sqlx.SelectContext(ctx, r.ext, &notes, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list review notes: %w", err)
	}
	return notes, nil
}

// Create stores a new review note.
func (r *ReviewNoteRepository) Create(ctx context.Context, note *models.ReviewNote) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	note.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO review_notes (id, schedule_id, note_type, message, created_by, created_at) VALUES (:id, :schedule_id, :note_type, :message, :created_by, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.ext, query, note); err != nil {
		return fmt.Errorf("create review note: %w", err)
	}
	return nil
}
