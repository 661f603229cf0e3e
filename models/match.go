package models

import "time"

// ParticipantType — дискриминант tagged union "команда или игрок".
type ParticipantType string

const (
	ParticipantTeam   ParticipantType = "team"
	ParticipantPlayer ParticipantType = "player"
)

type Match struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Date         time.Time `json:"date" db:"date"`
	Location     *string   `json:"location,omitempty" db:"location"`
	Finished     bool      `json:"finished" db:"finished"`
	Occurrences  *string   `json:"occurrences,omitempty" db:"occurrences"`
	RoundNumber  *int      `json:"round_number,omitempty" db:"round_number"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Tournament     *Tournament          `json:"tournament,omitempty" db:"-"`
	Participations []MatchParticipation `json:"participations,omitempty" db:"-"`

	// Scores == nil означает "коллекция не загружалась"; пустой срез — загружена, но пуста.
	// TotalScores следует тому же различию: null против [] в ответе.
	Scores      []MatchScore       `json:"scores,omitempty" db:"-"`
	TotalScores []ParticipantTotal `json:"total_scores"`
}

// MatchParticipation фиксирует, что участник (команда или игрок) заявлен на матч.
// Не более одной записи на (match, team) и на (match, player).
type MatchParticipation struct {
	ID              int             `json:"id" db:"id"`
	MatchID         int             `json:"match_id" db:"match_id"`
	ParticipantType ParticipantType `json:"participant_type" db:"participant_type"`
	TeamID          *int            `json:"team_id,omitempty" db:"team_id"`
	PlayerID        *int            `json:"player_id,omitempty" db:"player_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	Team   *Team   `json:"team,omitempty" db:"-"`
	Player *Player `json:"player,omitempty" db:"-"`
}
