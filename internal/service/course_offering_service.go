package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

type courseOfferingRepository interface {
	List(ctx context.Context, filter models.CourseOfferingFilter) ([]models.CourseOffering, int, error)
	FindByID(ctx context.Context, id string) (*models.CourseOffering, error)
	Exists(ctx context.Context, courseID, termID string, groupNo *int, excludeID string) (bool, error)
	Create(ctx context.Context, offering *models.CourseOffering) error
	Update(ctx context.Context, offering *models.CourseOffering) error
	Delete(ctx context.Context, id string) error
}

type offeringCourseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type offeringInstructorRepository interface {
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
}

type offeringClassroomRepository interface {
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
}

// CreateCourseOfferingRequest describes payload for creating offerings.
type CreateCourseOfferingRequest struct {
	CourseID     string `json:"course_id" validate:"required,uuid4"`
	InstructorID string `json:"instructor_id" validate:"required,uuid4"`
	ClassroomID  string `json:"classroom_id" validate:"required,uuid4"`
	GroupNo      *int   `json:"group_no" validate:"omitempty,min=1"`
	StudentCount int    `json:"student_count" validate:"min=0"`
}

// UpdateCourseOfferingRequest updates mutable fields on an offering.
type UpdateCourseOfferingRequest struct {
	InstructorID string `json:"instructor_id" validate:"required,uuid4"`
	ClassroomID  string `json:"classroom_id" validate:"required,uuid4"`
	GroupNo      *int   `json:"group_no" validate:"omitempty,min=1"`
	StudentCount int    `json:"student_count" validate:"min=0"`
}

// CourseOfferingService orchestrates offering workflows.
type CourseOfferingService struct {
	repo        courseOfferingRepository
	courses     offeringCourseRepository
	instructors offeringInstructorRepository
	classrooms  offeringClassroomRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseOfferingService creates a new offering service instance.
func NewCourseOfferingService(repo courseOfferingRepository, courses offeringCourseRepository, instructors offeringInstructorRepository, classrooms offeringClassroomRepository, validate *validator.Validate, logger *zap.Logger) *CourseOfferingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseOfferingService{repo: repo, courses: courses, instructors: instructors, classrooms: classrooms, validator: validate, logger: logger}
}

// List returns paginated offerings.
func (s *CourseOfferingService) List(ctx context.Context, filter models.CourseOfferingFilter) ([]models.CourseOffering, *models.Pagination, error) {
	offerings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course offerings")
	}
	return offerings, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns an offering by ID.
func (s *CourseOfferingService) Get(ctx context.Context, id string) (*models.CourseOffering, error) {
	offering, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course offering not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course offering")
	}
	return offering, nil
}

// Create adds a new offering after resolving its referenced entities. The
// term is inherited from the course so an offering can never point outside
// its course's term.
func (s *CourseOfferingService) Create(ctx context.Context, req CreateCourseOfferingRequest) (*models.CourseOffering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course offering payload")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	instructor, err := s.instructors.FindByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	if !instructor.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "instructor is inactive")
	}

	classroom, err := s.classrooms.FindByID(ctx, req.ClassroomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	if !classroom.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "classroom is inactive")
	}

	exists, err := s.repo.Exists(ctx, course.ID, course.TermID, req.GroupNo, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course offering")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, "offering already exists for this course and group")
	}

	offering := &models.CourseOffering{
		CourseID:     course.ID,
		TermID:       course.TermID,
		InstructorID: instructor.ID,
		ClassroomID:  classroom.ID,
		GroupNo:      req.GroupNo,
		StudentCount: req.StudentCount,
	}
	if err := s.repo.Create(ctx, offering); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course offering")
	}
	return offering, nil
}

// Update modifies mutable offering fields.
func (s *CourseOfferingService) Update(ctx context.Context, id string, req UpdateCourseOfferingRequest) (*models.CourseOffering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course offering payload")
	}

	offering, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course offering not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course offering")
	}

	if _, err := s.instructors.FindByID(ctx, req.InstructorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	if _, err := s.classrooms.FindByID(ctx, req.ClassroomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	exists, err := s.repo.Exists(ctx, offering.CourseID, offering.TermID, req.GroupNo, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course offering")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, "offering already exists for this course and group")
	}

	offering.InstructorID = req.InstructorID
	offering.ClassroomID = req.ClassroomID
	offering.GroupNo = req.GroupNo
	offering.StudentCount = req.StudentCount
	offering.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, offering); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course offering")
	}
	return offering, nil
}

// Delete removes an offering.
func (s *CourseOfferingService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course offering not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course offering")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course offering")
	}
	return nil
}
