package models

import "time"

// Event types. Exam-specific fields are meaningless on general events, and
// only exam events may carry rosters or be targeted by form generation.
const (
	EventTypeGeneral = "general"
	EventTypeExam    = "exam"
)

// Event is a calendar entry. Date and Time are kept as the canonical string
// encodings (YYYY-MM-DD, HH:MM) the storage contract defines.
type Event struct {
	ID        int64     `db:"id" json:"id"`
	Date      string    `db:"date" json:"date"`
	Time      string    `db:"time" json:"time"`
	Title     string    `db:"title" json:"title"`
	Type      string    `db:"type" json:"type"`
	Level     string    `db:"level" json:"level"`
	Place     string    `db:"place" json:"place"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsExam reports whether the event may carry a roster.
func (e Event) IsExam() bool {
	return e.Type == EventTypeExam
}
