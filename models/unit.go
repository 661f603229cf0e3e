package models

import "time"

// Unit — подразделение (кампус/филиал) внутри учебного заведения.
type Unit struct {
	ID            int       `json:"id" db:"id"`
	InstitutionID int       `json:"institution_id" db:"institution_id"`
	Name          string    `json:"name" db:"name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Institution *Institution `json:"institution,omitempty" db:"-"`
	Events      []Event      `json:"events,omitempty" db:"-"`
}
