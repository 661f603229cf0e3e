package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	UnitID    int       `json:"unit_id" db:"unit_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Unit    *Unit    `json:"unit,omitempty" db:"-"`
	Players []Player `json:"players,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
