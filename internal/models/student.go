package models

import "time"

// Student lifecycle states.
const (
	StudentStatusActive   = "active"
	StudentStatusInactive = "inactive"
)

// Student is a practitioner registered at the school. All string fields except
// FullName are optional intake data; Birthdate is nil when the intake form
// carried no parseable date.
type Student struct {
	ID          int64      `db:"id" json:"id"`
	FullName    string     `db:"full_name" json:"full_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	FirstName   string     `db:"first_name" json:"first_name"`
	DNI         string     `db:"dni" json:"dni"`
	Gender      string     `db:"gender" json:"gender"`
	Birthdate   *time.Time `db:"birthdate" json:"birthdate,omitempty"`
	Blood       string     `db:"blood" json:"blood"`
	Nationality string     `db:"nationality" json:"nationality"`
	Province    string     `db:"province" json:"province"`
	Country     string     `db:"country" json:"country"`
	City        string     `db:"city" json:"city"`
	Address     string     `db:"address" json:"address"`
	Zip         string     `db:"zip" json:"zip"`
	School      string     `db:"school" json:"school"`
	Belt        string     `db:"belt" json:"belt"`
	FatherName  string     `db:"father_name" json:"father_name"`
	MotherName  string     `db:"mother_name" json:"mother_name"`
	FatherPhone string     `db:"father_phone" json:"father_phone"`
	MotherPhone string     `db:"mother_phone" json:"mother_phone"`
	ParentEmail string     `db:"parent_email" json:"parent_email"`
	Notes       string     `db:"notes" json:"notes"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayName renders "Last, First" when both parts exist, a single part when
// only one does, and falls back to the free-form full name.
func (s Student) DisplayName() string {
	switch {
	case s.LastName != "" && s.FirstName != "":
		return s.LastName + ", " + s.FirstName
	case s.LastName != "":
		return s.LastName
	case s.FirstName != "":
		return s.FirstName
	default:
		return s.FullName
	}
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search   string
	Belt     string
	Status   string
	Page     int
	PageSize int
}
