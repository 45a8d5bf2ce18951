package models

import (
	"encoding/json"
	"time"
)

// ClassroomType categorises teaching rooms.
type ClassroomType string

const (
	ClassroomTypeStandard ClassroomType = "classroom"
	ClassroomTypeAmphi    ClassroomType = "amphi"
	ClassroomTypeLab      ClassroomType = "lab"
)

// Classroom is a bookable room; assignments pin offerings to one.
type Classroom struct {
	ID           string          `db:"id" json:"id"`
	Code         string          `db:"code" json:"code"`
	Type         ClassroomType   `db:"classroom_type" json:"classroom_type"`
	DepartmentID *string         `db:"department_id" json:"department_id,omitempty"`
	Capacity     int             `db:"capacity" json:"capacity"`
	Features     json.RawMessage `db:"features" json:"features,omitempty"`
	Active       bool            `db:"is_active" json:"is_active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// ClassroomFilter captures list filters for classrooms.
type ClassroomFilter struct {
	Type         ClassroomType
	DepartmentID string
	MinCapacity  int
	Active       *bool
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
