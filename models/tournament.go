package models

import "time"

// Tournament представляет турнир в рамках мероприятия.
type Tournament struct {
	ID        int       `json:"id" db:"id"`
	EventID   int       `json:"event_id" db:"event_id"`
	Name      string    `json:"name" db:"name"`
	Sport     string    `json:"sport" db:"sport"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Event   *Event  `json:"event,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
