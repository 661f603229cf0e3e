package models

import "time"

// Event — спортивное мероприятие, которое проводит подразделение.
type Event struct {
	ID        int       `json:"id" db:"id"`
	UnitID    int       `json:"unit_id" db:"unit_id"`
	Name      string    `json:"name" db:"name"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Unit        *Unit        `json:"unit,omitempty" db:"-"`
	Tournaments []Tournament `json:"tournaments,omitempty" db:"-"`
}
