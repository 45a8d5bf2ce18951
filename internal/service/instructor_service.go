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

type instructorRepository interface {
	List(ctx context.Context, filter models.InstructorFilter) ([]models.Instructor, int, error)
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, instructor *models.Instructor) error
	Update(ctx context.Context, instructor *models.Instructor) error
	Deactivate(ctx context.Context, id string) error
}

// CreateInstructorRequest describes payload for creating instructors.
type CreateInstructorRequest struct {
	FullName         string                 `json:"full_name" validate:"required"`
	Title            models.InstructorTitle `json:"title" validate:"required"`
	Email            string                 `json:"email" validate:"required,email"`
	HomeDepartmentID string                 `json:"home_department_id" validate:"required,uuid4"`
}

// UpdateInstructorRequest updates mutable fields on an instructor.
type UpdateInstructorRequest struct {
	FullName         string                 `json:"full_name" validate:"required"`
	Title            models.InstructorTitle `json:"title" validate:"required"`
	HomeDepartmentID string                 `json:"home_department_id" validate:"required,uuid4"`
	Active           *bool                  `json:"is_active"`
}

// InstructorService orchestrates instructor workflows.
type InstructorService struct {
	repo      instructorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService creates a new instructor service instance.
func NewInstructorService(repo instructorRepository, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, validator: validate, logger: logger}
}

var validTitles = map[models.InstructorTitle]bool{
	models.TitleProfessor:          true,
	models.TitleAssociateProfessor: true,
	models.TitleAssistantProfessor: true,
	models.TitleLecturer:           true,
	models.TitleResearchAssistant:  true,
}

// List returns paginated instructors.
func (s *InstructorService) List(ctx context.Context, filter models.InstructorFilter) ([]models.Instructor, *models.Pagination, error) {
	instructors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	return instructors, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns an instructor by ID.
func (s *InstructorService) Get(ctx context.Context, id string) (*models.Instructor, error) {
	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	return instructor, nil
}

// Create adds a new instructor with a unique email.
func (s *InstructorService) Create(ctx context.Context, req CreateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	if !validTitles[req.Title] {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown academic title")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check instructor email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, "instructor email already exists")
	}

	instructor := &models.Instructor{
		FullName:         req.FullName,
		Title:            req.Title,
		Email:            req.Email,
		HomeDepartmentID: req.HomeDepartmentID,
		Active:           true,
	}
	if err := s.repo.Create(ctx, instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create instructor")
	}
	return instructor, nil
}

// Update modifies mutable instructor fields.
func (s *InstructorService) Update(ctx context.Context, id string, req UpdateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	if !validTitles[req.Title] {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown academic title")
	}

	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}

	instructor.FullName = req.FullName
	instructor.Title = req.Title
	instructor.HomeDepartmentID = req.HomeDepartmentID
	if req.Active != nil {
		instructor.Active = *req.Active
	}
	instructor.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update instructor")
	}
	return instructor, nil
}

// Deactivate disables an instructor.
func (s *InstructorService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate instructor")
	}
	return nil
}
