package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/pkg/export"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type exportScheduleRepository interface {
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
}

type exportAssignmentRepository interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleAssignmentDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered timetable ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders schedule timetables as CSV or PDF downloads.
type ExportService struct {
	schedules   exportScheduleRepository
	assignments exportAssignmentRepository
	csv         csvRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(schedules exportScheduleRepository, assignments exportAssignmentRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{schedules: schedules, assignments: assignments, csv: csv, pdf: pdf, logger: logger}
}

var timetableHeaders = []string{"Day", "Start", "End", "Course Code", "Course Name", "Instructor", "Classroom"}

// ExportSchedule renders the schedule's timetable in the requested format.
func (s *ExportService) ExportSchedule(ctx context.Context, scheduleID string, format ExportFormat) (*ExportFile, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	schedule, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	assignments, err := s.assignments.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule assignments")
	}

	dataset := export.Dataset{Headers: timetableHeaders, Rows: make([]map[string]string, 0, len(assignments))}
	for _, a := range assignments {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":         string(a.DayOfWeek),
			"Start":       a.StartTime,
			"End":         a.EndTime,
			"Course Code": a.CourseCode,
			"Course Name": a.CourseName,
			"Instructor":  a.InstructorName,
			"Classroom":   a.ClassroomCode,
		})
	}

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("schedule-%s.csv", schedule.ID),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	default:
		data, err := s.pdf.Render(dataset, "Weekly Schedule")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("schedule-%s.pdf", schedule.ID),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	}
}
