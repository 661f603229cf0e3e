package services

import (
	"context"
	"time"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/repositories"
)

// Простые in-memory фейки репозиториев для тестов сервисного слоя.

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match)}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	match.ID = len(r.matches) + 1
	match.CreatedAt = time.Now()
	match.UpdatedAt = match.CreatedAt
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for _, match := range r.matches {
		if match.TournamentID == tournamentID {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, match *models.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) SetFinished(_ context.Context, id int, finished bool) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Finished = finished
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type fakeScoreRepo struct {
	scores  []models.MatchScore
	nextID  int
	listErr error
}

func (r *fakeScoreRepo) Create(_ context.Context, score *models.MatchScore) error {
	r.nextID++
	score.ID = r.nextID
	score.CreatedAt = time.Now()
	score.UpdatedAt = score.CreatedAt
	r.scores = append(r.scores, *score)
	return nil
}

func (r *fakeScoreRepo) GetByID(_ context.Context, id int) (*models.MatchScore, error) {
	for i := range r.scores {
		if r.scores[i].ID == id {
			copied := r.scores[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrScoreNotFound
}

func (r *fakeScoreRepo) ListByMatch(_ context.Context, matchID int, _ bool) ([]models.MatchScore, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	scores := make([]models.MatchScore, 0)
	for _, score := range r.scores {
		if score.MatchID == matchID {
			scores = append(scores, score)
		}
	}
	return scores, nil
}

func (r *fakeScoreRepo) Delete(_ context.Context, id int) error {
	for i := range r.scores {
		if r.scores[i].ID == id {
			r.scores = append(r.scores[:i], r.scores[i+1:]...)
			return nil
		}
	}
	return repositories.ErrScoreNotFound
}

type fakeParticipationRepo struct {
	participations []models.MatchParticipation
	nextID         int
}

func (r *fakeParticipationRepo) Create(_ context.Context, p *models.MatchParticipation) error {
	for _, existing := range r.participations {
		if existing.MatchID != p.MatchID {
			continue
		}
		if p.TeamID != nil && existing.TeamID != nil && *existing.TeamID == *p.TeamID {
			return repositories.ErrParticipationConflict
		}
		if p.PlayerID != nil && existing.PlayerID != nil && *existing.PlayerID == *p.PlayerID {
			return repositories.ErrParticipationConflict
		}
	}
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.participations = append(r.participations, *p)
	return nil
}

func (r *fakeParticipationRepo) GetByID(_ context.Context, id int) (*models.MatchParticipation, error) {
	for i := range r.participations {
		if r.participations[i].ID == id {
			copied := r.participations[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrParticipationNotFound
}

func (r *fakeParticipationRepo) ListByMatch(_ context.Context, matchID int, _ bool) ([]models.MatchParticipation, error) {
	participations := make([]models.MatchParticipation, 0)
	for _, p := range r.participations {
		if p.MatchID == matchID {
			participations = append(participations, p)
		}
	}
	return participations, nil
}

func (r *fakeParticipationRepo) Delete(_ context.Context, id int) error {
	for i := range r.participations {
		if r.participations[i].ID == id {
			r.participations = append(r.participations[:i], r.participations[i+1:]...)
			return nil
		}
	}
	return repositories.ErrParticipationNotFound
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func (r *fakeTournamentRepo) Create(_ context.Context, tournament *models.Tournament) error {
	tournament.ID = len(r.tournaments) + 1
	r.tournaments[tournament.ID] = tournament
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return tournament, nil
}

func (r *fakeTournamentRepo) ListByEvent(_ context.Context, _ int) ([]*models.Tournament, error) {
	return nil, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, _ *models.Tournament) error { return nil }

func (r *fakeTournamentRepo) Delete(_ context.Context, _ int) error { return nil }

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	team.ID = len(r.teams) + 1
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := r.teams[id]
	return ok, nil
}

func (r *fakeTeamRepo) ListByUnit(_ context.Context, _ int) ([]*models.Team, error) {
	return nil, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, _ *models.Team) error { return nil }

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, _ int, _ *string) error { return nil }

func (r *fakeTeamRepo) Delete(_ context.Context, _ int) error { return nil }

type fakePlayerRepo struct {
	players map[int]*models.Player
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	player.ID = len(r.players) + 1
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return player, nil
}

func (r *fakePlayerRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := r.players[id]
	return ok, nil
}

func (r *fakePlayerRepo) List(_ context.Context) ([]*models.Player, error) { return nil, nil }

func (r *fakePlayerRepo) ListByTeam(_ context.Context, _ int) ([]*models.Player, error) {
	return nil, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, _ *models.Player) error { return nil }

func (r *fakePlayerRepo) Delete(_ context.Context, _ int) error { return nil }

type broadcastCall struct {
	matchID int
	msgType string
	payload interface{}
}

type fakeBroadcaster struct {
	calls []broadcastCall
}

func (b *fakeBroadcaster) BroadcastToMatch(matchID int, msgType string, payload interface{}) {
	b.calls = append(b.calls, broadcastCall{matchID: matchID, msgType: msgType, payload: payload})
}
