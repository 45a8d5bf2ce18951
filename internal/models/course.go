package models

import "time"

// CourseType distinguishes how a course is delivered.
type CourseType string

const (
	CourseTypeTheory   CourseType = "theory"
	CourseTypeLab      CourseType = "lab"
	CourseTypePractice CourseType = "practice"
)

// CourseLevel is the curriculum year a course belongs to.
type CourseLevel string

const (
	CourseLevelFirst  CourseLevel = "1.Year"
	CourseLevelSecond CourseLevel = "2.Year"
	CourseLevelThird  CourseLevel = "3.Year"
	CourseLevelFourth CourseLevel = "4.Year"
)

// Course is a catalogue entry taught within a term.
type Course struct {
	ID           string      `db:"id" json:"id"`
	Code         string      `db:"code" json:"code"`
	Name         string      `db:"name" json:"name"`
	DepartmentID *string     `db:"department_id" json:"department_id,omitempty"`
	TermID       string      `db:"term_id" json:"term_id"`
	ClassLevel   CourseLevel `db:"class_level" json:"class_level"`
	WeeklyHours  int         `db:"weekly_hours" json:"weekly_hours"`
	CourseType   CourseType  `db:"course_type" json:"course_type"`
	IsMandatory  bool        `db:"is_mandatory" json:"is_mandatory"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// CourseFilter captures list filters for courses.
type CourseFilter struct {
	TermID       string
	DepartmentID string
	ClassLevel   CourseLevel
	CourseType   CourseType
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
