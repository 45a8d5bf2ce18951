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

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ExistsByCode(ctx context.Context, termID, code, excludeID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// CreateCourseRequest describes payload for creating courses.
type CreateCourseRequest struct {
	Code         string             `json:"code" validate:"required"`
	Name         string             `json:"name" validate:"required"`
	DepartmentID *string            `json:"department_id"`
	TermID       string             `json:"term_id" validate:"required,uuid4"`
	ClassLevel   models.CourseLevel `json:"class_level" validate:"required,oneof=1.Year 2.Year 3.Year 4.Year"`
	WeeklyHours  int                `json:"weekly_hours" validate:"required,min=1,max=12"`
	CourseType   models.CourseType  `json:"course_type" validate:"required,oneof=theory lab practice"`
	IsMandatory  bool               `json:"is_mandatory"`
}

// UpdateCourseRequest updates mutable fields on a course.
type UpdateCourseRequest struct {
	Name        string             `json:"name" validate:"required"`
	ClassLevel  models.CourseLevel `json:"class_level" validate:"required,oneof=1.Year 2.Year 3.Year 4.Year"`
	WeeklyHours int                `json:"weekly_hours" validate:"required,min=1,max=12"`
	CourseType  models.CourseType  `json:"course_type" validate:"required,oneof=theory lab practice"`
	IsMandatory *bool              `json:"is_mandatory"`
}

// CourseService orchestrates course catalogue workflows.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService creates a new course service instance.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// List returns paginated courses.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns a course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create adds a new course, keeping the code unique within its term.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	exists, err := s.repo.ExistsByCode(ctx, req.TermID, req.Code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, "course code already exists in term")
	}

	course := &models.Course{
		Code:         req.Code,
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
		TermID:       req.TermID,
		ClassLevel:   req.ClassLevel,
		WeeklyHours:  req.WeeklyHours,
		CourseType:   req.CourseType,
		IsMandatory:  req.IsMandatory,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update modifies mutable course fields.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	course.Name = req.Name
	course.ClassLevel = req.ClassLevel
	course.WeeklyHours = req.WeeklyHours
	course.CourseType = req.CourseType
	if req.IsMandatory != nil {
		course.IsMandatory = *req.IsMandatory
	}
	course.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}
