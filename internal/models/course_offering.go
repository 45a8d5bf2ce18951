package models

import "time"

// CourseOffering is one term's instance of a course taught by a specific
// instructor. Schedule assignments reference offerings, never courses.
type CourseOffering struct {
	ID           string    `db:"id" json:"id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	InstructorID string    `db:"instructor_id" json:"instructor_id"`
	ClassroomID  string    `db:"classroom_id" json:"classroom_id"`
	TermID       string    `db:"term_id" json:"term_id"`
	GroupNo      *int      `db:"group_no" json:"group_no,omitempty"`
	StudentCount int       `db:"student_count" json:"student_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CourseOfferingFilter captures list filters for offerings.
type CourseOfferingFilter struct {
	TermID       string
	CourseID     string
	InstructorID string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
