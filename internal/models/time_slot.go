package models

import "time"

// DayOfWeek enumerates teaching days.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
)

// TimeSlot is a fixed (day, start, end) teaching period defined per term.
// Start and end are wall-clock times encoded as "15:04".
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	TermID    string    `db:"term_id" json:"term_id"`
	DayOfWeek DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TimeSlotFilter captures list filters for time slots.
type TimeSlotFilter struct {
	TermID    string
	DayOfWeek DayOfWeek
	Page      int
	PageSize  int
}
