package models

import "time"

// MatchScore — одно очковое событие матча. Для одного участника может быть
// несколько записей (например, по раундам); они суммируются при чтении.
type MatchScore struct {
	ID              int             `json:"id" db:"id"`
	MatchID         int             `json:"match_id" db:"match_id"`
	ParticipantType ParticipantType `json:"participant_type" db:"participant_type"`
	TeamID          *int            `json:"team_id,omitempty" db:"team_id"`
	PlayerID        *int            `json:"player_id,omitempty" db:"player_id"`
	Score           int             `json:"score" db:"score"`
	Details         *string         `json:"details,omitempty" db:"details"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	Team   *Team   `json:"team,omitempty" db:"-"`
	Player *Player `json:"player,omitempty" db:"-"`
}

// ParticipantTotal — агрегированная сумма очков участника в рамках одного матча.
// Вычисляется при каждом чтении, никогда не сохраняется.
type ParticipantTotal struct {
	ID         int     `json:"id"`
	Name       *string `json:"name"`
	TotalScore int64   `json:"total_score"`
}
