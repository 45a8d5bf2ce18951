package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/repository"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

type scheduleRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, int, error)
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
}

type scheduleAssignmentReader interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleAssignmentDetail, error)
	HasInstructorConflict(ctx context.Context, scheduleID, instructorID, timeSlotID, excludeAssignmentID string) (bool, error)
	HasClassroomConflict(ctx context.Context, scheduleID, classroomID, timeSlotID, excludeAssignmentID string) (bool, error)
}

type scheduleReviewNoteReader interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ReviewNote, error)
}

type scheduleOfferingReader interface {
	FindByID(ctx context.Context, id string) (*models.CourseOffering, error)
}

type scheduleTimeSlotReader interface {
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
}

type scheduleAuditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type scheduleTxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error
}

type scheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CreateScheduleRequest opens a draft schedule for a (term, department) pair.
type CreateScheduleRequest struct {
	TermID       string `json:"term_id" validate:"required,uuid4"`
	DepartmentID string `json:"department_id" validate:"required,uuid4"`
}

// AddAssignmentRequest places a course offering into a time slot. ClassroomID
// defaults to the offering's classroom when empty.
type AddAssignmentRequest struct {
	CourseOfferingID string `json:"course_offering_id" validate:"required,uuid4"`
	TimeSlotID       string `json:"time_slot_id" validate:"required,uuid4"`
	ClassroomID      string `json:"classroom_id" validate:"omitempty,uuid4"`
}

// CheckConflictsRequest probes a placement without persisting it.
type CheckConflictsRequest struct {
	CourseOfferingID    string `json:"course_offering_id" validate:"required,uuid4"`
	TimeSlotID          string `json:"time_slot_id" validate:"required,uuid4"`
	ClassroomID         string `json:"classroom_id" validate:"omitempty,uuid4"`
	ExcludeAssignmentID string `json:"exclude_assignment_id" validate:"omitempty,uuid4"`
}

// EvaluateScheduleRequest carries the reviewer's note for approve and reject.
type EvaluateScheduleRequest struct {
	Note string `json:"note"`
}

// scheduleLockTable hands out one mutex per key so concurrent writers to the
// same schedule (or the same term/department pair) serialize before entering
// the database transaction. Entries are reference counted and evicted once
// the last holder releases, so the table stays bounded by the number of
// in-flight writes.
type scheduleLockTable struct {
	mu    sync.Mutex
	locks map[string]*scheduleLock
}

type scheduleLock struct {
	mu   sync.Mutex
	refs int
}

func newScheduleLockTable() *scheduleLockTable {
	return &scheduleLockTable{locks: make(map[string]*scheduleLock)}
}

func (t *scheduleLockTable) acquire(key string) *scheduleLock {
	t.mu.Lock()
	lock, ok := t.locks[key]
	if !ok {
		lock = &scheduleLock{}
		t.locks[key] = lock
	}
	lock.refs++
	t.mu.Unlock()
	lock.mu.Lock()
	return lock
}

func (t *scheduleLockTable) release(key string, lock *scheduleLock) {
	lock.mu.Unlock()
	t.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(t.locks, key)
	}
	t.mu.Unlock()
}

// ScheduleService orchestrates the schedule lifecycle: drafting, conflict-free
// assignment placement, submission and the dean's approve/reject decision.
type ScheduleService struct {
	repo        scheduleRepository
	assignments scheduleAssignmentReader
	notes       scheduleReviewNoteReader
	offerings   scheduleOfferingReader
	slots       scheduleTimeSlotReader
	audits      scheduleAuditRecorder
	tx          scheduleTxManager
	cache       scheduleCache
	validator   *validator.Validate
	logger      *zap.Logger
	cacheTTL    time.Duration
	locks       *scheduleLockTable
}

// NewScheduleService creates a new schedule service instance. cache may be
// nil, in which case detail lookups always hit the database.
func NewScheduleService(
	repo scheduleRepository,
	assignments scheduleAssignmentReader,
	notes scheduleReviewNoteReader,
	offerings scheduleOfferingReader,
	slots scheduleTimeSlotReader,
	audits scheduleAuditRecorder,
	tx scheduleTxManager,
	cache scheduleCache,
	validate *validator.Validate,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 2 * time.Minute
	}
	return &ScheduleService{
		repo:        repo,
		assignments: assignments,
		notes:       notes,
		offerings:   offerings,
		slots:       slots,
		audits:      audits,
		tx:          tx,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		cacheTTL:    cacheTTL,
		locks:       newScheduleLockTable(),
	}
}

func scheduleDetailCacheKey(id string) string {
	return fmt.Sprintf("schedule:detail:%s", id)
}

// List returns paginated schedules.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, *models.Pagination, error) {
	schedules, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns a schedule with its assignments and review notes resolved.
// The boolean reports whether the detail was served from cache.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.ScheduleDetail, bool, error) {
	if s.cache != nil {
		var cached models.ScheduleDetail
		if err := s.cache.Get(ctx, scheduleDetailCacheKey(id), &cached); err == nil {
			return &cached, true, nil
		} else if !appErrors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("schedule detail cache read failed", zap.String("schedule_id", id), zap.Error(err))
		}
	}

	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	assignments, err := s.assignments.ListBySchedule(ctx, id)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule assignments")
	}

	notes, err := s.notes.ListBySchedule(ctx, id)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load review notes")
	}

	detail := &models.ScheduleDetail{Schedule: *schedule, Assignments: assignments, ReviewNotes: notes}
	if s.cache != nil {
		if err := s.cache.Set(ctx, scheduleDetailCacheKey(id), detail, s.cacheTTL); err != nil {
			s.logger.Warn("schedule detail cache write failed", zap.String("schedule_id", id), zap.Error(err))
		}
	}
	return detail, false, nil
}

// Create opens a new draft schedule. Each (term, department) pair owns at
// most one schedule.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest, actorID string) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	// Serialize duplicate checks per (term, department) so two concurrent
	// creates cannot both pass the existence check.
	lockKey := req.TermID + "/" + req.DepartmentID
	lock := s.locks.acquire(lockKey)
	defer s.locks.release(lockKey, lock)

	schedule := &models.Schedule{
		TermID:       req.TermID,
		DepartmentID: req.DepartmentID,
		Status:       models.ScheduleStatusDraft,
		SubmittedBy:  actorID,
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		exists, err := repos.Schedules.ExistsByTermAndDepartment(ctx, req.TermID, req.DepartmentID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing schedule")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrAlreadyExists, "schedule already exists for this term and department")
		}
		if err := repos.Schedules.Create(ctx, schedule); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	s.recordAudit(ctx, actorID, models.AuditActionScheduleCreate, schedule.ID, nil)
	return schedule, nil
}

// CheckConflicts evaluates a prospective placement against the schedule's
// existing assignments and returns the conflicting resource kinds. An empty
// result means the placement is safe. The answer is advisory: AddAssignment
// re-runs the same checks inside its transaction.
func (s *ScheduleService) CheckConflicts(ctx context.Context, scheduleID string, req CheckConflictsRequest) ([]models.ConflictKind, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check payload")
	}

	schedule, err := s.repo.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	offering, slot, classroomID, err := s.resolvePlacement(ctx, schedule, req.CourseOfferingID, req.TimeSlotID, req.ClassroomID)
	if err != nil {
		return nil, err
	}

	var conflicts []models.ConflictKind
	instructorBusy, err := s.assignments.HasInstructorConflict(ctx, scheduleID, offering.InstructorID, slot.ID, req.ExcludeAssignmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check instructor conflict")
	}
	if instructorBusy {
		conflicts = append(conflicts, models.ConflictInstructor)
	}

	classroomBusy, err := s.assignments.HasClassroomConflict(ctx, scheduleID, classroomID, slot.ID, req.ExcludeAssignmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check classroom conflict")
	}
	if classroomBusy {
		conflicts = append(conflicts, models.ConflictClassroom)
	}

	return conflicts, nil
}

// AddAssignment places an offering into a time slot. The conflict checks and
// the insert run inside one transaction, under a per-schedule lock, so two
// concurrent requests for the same slot cannot both pass the checks.
func (s *ScheduleService) AddAssignment(ctx context.Context, scheduleID string, req AddAssignmentRequest, actorID string) (*models.ScheduleAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	lock := s.locks.acquire(scheduleID)
	defer s.locks.release(scheduleID, lock)

	var created *models.ScheduleAssignment
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		schedule, err := repos.Schedules.FindByID(ctx, scheduleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
		}
		if schedule.Status != models.ScheduleStatusDraft {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "assignments can only be added while the schedule is a draft")
		}

		offering, err := repos.Offerings.FindByID(ctx, req.CourseOfferingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "course offering not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course offering")
		}
		if offering.TermID != schedule.TermID {
			return appErrors.Clone(appErrors.ErrValidation, "offering belongs to a different term")
		}

		slot, err := s.slots.FindByID(ctx, req.TimeSlotID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slot")
		}
		if slot.TermID != schedule.TermID {
			return appErrors.Clone(appErrors.ErrValidation, "time slot belongs to a different term")
		}

		classroomID := req.ClassroomID
		if classroomID == "" {
			classroomID = offering.ClassroomID
		}

		instructorBusy, err := repos.Assignments.HasInstructorConflict(ctx, scheduleID, offering.InstructorID, slot.ID, "")
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check instructor conflict")
		}
		if instructorBusy {
			return appErrors.Clone(appErrors.ErrScheduleConflict, "instructor is already assigned in this time slot")
		}

		classroomBusy, err := repos.Assignments.HasClassroomConflict(ctx, scheduleID, classroomID, slot.ID, "")
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check classroom conflict")
		}
		if classroomBusy {
			return appErrors.Clone(appErrors.ErrScheduleConflict, "classroom is already occupied in this time slot")
		}

		assignment := &models.ScheduleAssignment{
			ScheduleID:       scheduleID,
			CourseOfferingID: offering.ID,
			TimeSlotID:       slot.ID,
			ClassroomID:      classroomID,
		}
		if err := repos.Assignments.Create(ctx, assignment); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
		}
		created = assignment
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	s.recordAudit(ctx, actorID, models.AuditActionAssignmentAdd, created.ID, nil)
	s.invalidateDetail(ctx, scheduleID)
	return created, nil
}

// RemoveAssignment deletes an assignment from a draft schedule.
func (s *ScheduleService) RemoveAssignment(ctx context.Context, scheduleID, assignmentID, actorID string) error {
	lock := s.locks.acquire(scheduleID)
	defer s.locks.release(scheduleID, lock)

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		schedule, err := repos.Schedules.FindByID(ctx, scheduleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
		}
		if schedule.Status != models.ScheduleStatusDraft {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "assignments can only be removed while the schedule is a draft")
		}

		assignment, err := repos.Assignments.FindByID(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
		}
		if assignment.ScheduleID != scheduleID {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}

		if err := repos.Assignments.Delete(ctx, assignmentID); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
		}
		return nil
	})
	if err != nil {
		return appErrors.FromError(err)
	}

	s.recordAudit(ctx, actorID, models.AuditActionAssignmentRemove, scheduleID, nil)
	s.invalidateDetail(ctx, scheduleID)
	return nil
}

// Submit moves a draft schedule to pending approval. A non-empty note is
// recorded for the reviewers as a suggestion.
func (s *ScheduleService) Submit(ctx context.Context, scheduleID, actorID, note string) (*models.Schedule, error) {
	lock := s.locks.acquire(scheduleID)
	defer s.locks.release(scheduleID, lock)

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		schedule, err := repos.Schedules.FindByID(ctx, scheduleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
		}
		if schedule.Status != models.ScheduleStatusDraft {
			return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("cannot submit schedule in %s status", schedule.Status))
		}

		ok, err := repos.Schedules.MarkSubmitted(ctx, scheduleID, actorID, time.Now().UTC())
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit schedule")
		}
		if !ok {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "schedule is no longer a draft")
		}

		if note != "" {
			if err := repos.ReviewNotes.Create(ctx, &models.ReviewNote{
				ScheduleID: scheduleID,
				NoteType:   models.ReviewNoteSuggestion,
				Message:    note,
				CreatedBy:  actorID,
			}); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record submission note")
			}
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	s.recordAudit(ctx, actorID, models.AuditActionScheduleSubmit, scheduleID, nil)
	s.invalidateDetail(ctx, scheduleID)
	return s.reload(ctx, scheduleID)
}

// Approve moves a pending schedule to approved, optionally attaching the
// dean's note.
func (s *ScheduleService) Approve(ctx context.Context, scheduleID, actorID string, req EvaluateScheduleRequest) (*models.Schedule, error) {
	return s.evaluate(ctx, scheduleID, actorID, models.ScheduleStatusApproved, req.Note)
}

// Reject moves a pending schedule to rejected. A note explaining the decision
// is required.
func (s *ScheduleService) Reject(ctx context.Context, scheduleID, actorID string, req EvaluateScheduleRequest) (*models.Schedule, error) {
	if req.Note == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a rejection note is required")
	}
	return s.evaluate(ctx, scheduleID, actorID, models.ScheduleStatusRejected, req.Note)
}

func (s *ScheduleService) evaluate(ctx context.Context, scheduleID, actorID string, status models.ScheduleStatus, note string) (*models.Schedule, error) {
	lock := s.locks.acquire(scheduleID)
	defer s.locks.release(scheduleID, lock)

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		schedule, err := repos.Schedules.FindByID(ctx, scheduleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
		}
		if schedule.Status != models.ScheduleStatusPending {
			return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("cannot evaluate schedule in %s status", schedule.Status))
		}

		ok, err := repos.Schedules.MarkEvaluated(ctx, scheduleID, status, actorID, time.Now().UTC())
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to evaluate schedule")
		}
		if !ok {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "schedule is no longer pending approval")
		}

		if note != "" {
			noteType := models.ReviewNoteApproval
			if status == models.ScheduleStatusRejected {
				noteType = models.ReviewNoteRejection
			}
			if err := repos.ReviewNotes.Create(ctx, &models.ReviewNote{
				ScheduleID: scheduleID,
				NoteType:   noteType,
				Message:    note,
				CreatedBy:  actorID,
			}); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record review note")
			}
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	action := models.AuditActionScheduleApprove
	if status == models.ScheduleStatusRejected {
		action = models.AuditActionScheduleReject
	}
	s.recordAudit(ctx, actorID, action, scheduleID, []byte(fmt.Sprintf(`{"status":%q}`, status)))
	s.invalidateDetail(ctx, scheduleID)
	return s.reload(ctx, scheduleID)
}

func (s *ScheduleService) resolvePlacement(ctx context.Context, schedule *models.Schedule, offeringID, slotID, classroomID string) (*models.CourseOffering, *models.TimeSlot, string, error) {
	offering, err := s.offerings.FindByID(ctx, offeringID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, "", appErrors.Clone(appErrors.ErrNotFound, "course offering not found")
		}
		return nil, nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course offering")
	}
	if offering.TermID != schedule.TermID {
		return nil, nil, "", appErrors.Clone(appErrors.ErrValidation, "offering belongs to a different term")
	}

	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, "", appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return nil, nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slot")
	}
	if slot.TermID != schedule.TermID {
		return nil, nil, "", appErrors.Clone(appErrors.ErrValidation, "time slot belongs to a different term")
	}

	if classroomID == "" {
		classroomID = offering.ClassroomID
	}
	return offering, slot, classroomID, nil
}

func (s *ScheduleService) reload(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload schedule")
	}
	return schedule, nil
}

func (s *ScheduleService) recordAudit(ctx context.Context, actorID, action, resourceID string, newValues []byte) {
	if s.audits == nil {
		return
	}
	if err := s.audits.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     action,
		Resource:   "schedules",
		ResourceID: &resourceID,
		NewValues:  newValues,
	}); err != nil {
		s.logger.Warn("failed to record schedule audit log", zap.String("action", action), zap.Error(err))
	}
}

func (s *ScheduleService) invalidateDetail(ctx context.Context, scheduleID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, scheduleDetailCacheKey(scheduleID)); err != nil {
		s.logger.Warn("failed to invalidate schedule detail cache", zap.String("schedule_id", scheduleID), zap.Error(err))
	}
}
