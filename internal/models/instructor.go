package models

import "time"

// InstructorTitle is the academic title of an instructor.
type InstructorTitle string

const (
	TitleProfessor          InstructorTitle = "Prof. Dr."
	TitleAssociateProfessor InstructorTitle = "Doç. Dr."
	TitleAssistantProfessor InstructorTitle = "Dr. Öğr. Üyesi"
	TitleLecturer           InstructorTitle = "Öğr. Gör."
	TitleResearchAssistant  InstructorTitle = "Arş. Gör."
)

// Instructor teaches course offerings; conflicts are detected per instructor.
type Instructor struct {
	ID               string          `db:"id" json:"id"`
	FullName         string          `db:"full_name" json:"full_name"`
	Title            InstructorTitle `db:"title" json:"title"`
	Email            string          `db:"email" json:"email"`
	HomeDepartmentID string          `db:"home_department_id" json:"home_department_id"`
	Active           bool            `db:"is_active" json:"is_active"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// InstructorFilter captures list filters for instructors.
type InstructorFilter struct {
	DepartmentID string
	Active       *bool
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
