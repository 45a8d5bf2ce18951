package models

import "time"

// Faculty groups the departments of one school.
type Faculty struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Department belongs to a faculty; schedules are built per department.
type Department struct {
	ID        string    `db:"id" json:"id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FacultyFilter captures list filters for faculties.
type FacultyFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// DepartmentFilter captures list filters for departments.
type DepartmentFilter struct {
	FacultyID string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
