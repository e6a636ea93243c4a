package models

import "time"

// ExamInscription links one student to one exam event.
type ExamInscription struct {
	ID        int64     `db:"id" json:"id"`
	EventID   int64     `db:"event_id" json:"event_id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RosterEntry is the student summary returned when reading an exam roster.
type RosterEntry struct {
	StudentID int64  `db:"student_id" json:"student_id"`
	FullName  string `db:"full_name" json:"full_name"`
	LastName  string `db:"last_name" json:"last_name"`
	FirstName string `db:"first_name" json:"first_name"`
	Belt      string `db:"belt" json:"belt"`
}
