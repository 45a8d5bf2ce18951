package models

import "time"

// ScheduleStatus tracks the approval lifecycle of a schedule.
//
// draft -> pending_approval -> approved | rejected
//
// approved and rejected are terminal; there is no re-submission path.
type ScheduleStatus string

const (
	ScheduleStatusDraft    ScheduleStatus = "draft"
	ScheduleStatusPending  ScheduleStatus = "pending_approval"
	ScheduleStatusApproved ScheduleStatus = "approved"
	ScheduleStatusRejected ScheduleStatus = "rejected"
)

// ConflictKind names the resource an assignment collides on.
type ConflictKind string

const (
	ConflictInstructor ConflictKind = "instructor"
	ConflictClassroom  ConflictKind = "classroom"
)

// Schedule is the per-(term, department) container for a term's class
// assignments and its approval status. At most one schedule exists per
// (term_id, department_id) pair.
type Schedule struct {
	ID           string         `db:"id" json:"id"`
	TermID       string         `db:"term_id" json:"term_id"`
	DepartmentID string         `db:"department_id" json:"department_id"`
	Status       ScheduleStatus `db:"status" json:"status"`
	SubmittedBy  string         `db:"submitted_by" json:"submitted_by"`
	SubmittedAt  *time.Time     `db:"submitted_at" json:"submitted_at,omitempty"`
	EvaluatedBy  *string        `db:"evaluated_by" json:"evaluated_by,omitempty"`
	EvaluatedAt  *time.Time     `db:"evaluated_at" json:"evaluated_at,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// ScheduleAssignment binds one course offering to a time slot and classroom
// within a schedule. Assignments are immutable once created.
type ScheduleAssignment struct {
	ID               string    `db:"id" json:"id"`
	ScheduleID       string    `db:"schedule_id" json:"schedule_id"`
	CourseOfferingID string    `db:"course_offering_id" json:"course_offering_id"`
	TimeSlotID       string    `db:"time_slot_id" json:"time_slot_id"`
	ClassroomID      string    `db:"classroom_id" json:"classroom_id"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// ScheduleAssignmentDetail joins the referenced entities for detail views.
type ScheduleAssignmentDetail struct {
	ScheduleAssignment
	CourseCode     string    `db:"course_code" json:"course_code"`
	CourseName     string    `db:"course_name" json:"course_name"`
	InstructorID   string    `db:"instructor_id" json:"instructor_id"`
	InstructorName string    `db:"instructor_name" json:"instructor_name"`
	ClassroomCode  string    `db:"classroom_code" json:"classroom_code"`
	DayOfWeek      DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime      string    `db:"start_time" json:"start_time"`
	EndTime        string    `db:"end_time" json:"end_time"`
}

// ReviewNoteType categorises review notes on a schedule.
type ReviewNoteType string

const (
	ReviewNoteConflict   ReviewNoteType = "conflict"
	ReviewNoteSuggestion ReviewNoteType = "suggestion"
	ReviewNoteApproval   ReviewNoteType = "approval"
	ReviewNoteRejection  ReviewNoteType = "rejection"
)

// ReviewNote is a free-text note a reviewer attaches to a schedule.
type ReviewNote struct {
	ID         string         `db:"id" json:"id"`
	ScheduleID string         `db:"schedule_id" json:"schedule_id"`
	NoteType   ReviewNoteType `db:"note_type" json:"note_type"`
	Message    string         `db:"message" json:"message"`
	CreatedBy  string         `db:"created_by" json:"created_by"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// ScheduleDetail is a schedule with its assignments and review notes
// eagerly resolved.
type ScheduleDetail struct {
	Schedule
	Assignments []ScheduleAssignmentDetail `json:"assignments"`
	ReviewNotes []ReviewNote               `json:"review_notes"`
}

// ScheduleFilter captures list filters for schedules.
type ScheduleFilter struct {
	TermID       string
	DepartmentID string
	Status       ScheduleStatus
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
