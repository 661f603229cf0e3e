package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/scoring"
)

func newMatchServiceFixture(t *testing.T) (MatchService, *fakeScoreRepo, *fakeParticipationRepo, *fakeMatchRepo) {
	t.Helper()
	matchRepo := newFakeMatchRepo(&models.Match{ID: 1, TournamentID: 1, Date: time.Now()})
	tournamentRepo := &fakeTournamentRepo{tournaments: map[int]*models.Tournament{
		1: {ID: 1, Name: "Sub-15 Regional"},
	}}
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		10: {ID: 10, Name: "Falcons"},
		11: {ID: 11, Name: "Owls"},
	}}
	playerRepo := &fakePlayerRepo{players: map[int]*models.Player{
		7: {ID: 7, Name: "Evelyn Reed"},
	}}
	scoreRepo := &fakeScoreRepo{}
	participationRepo := &fakeParticipationRepo{}
	svc := NewMatchService(matchRepo, tournamentRepo, participationRepo, scoreRepo, teamRepo, playerRepo)
	return svc, scoreRepo, participationRepo, matchRepo
}

func TestGetMatchDetailsWithoutScores(t *testing.T) {
	svc, scoreRepo, _, _ := newMatchServiceFixture(t)
	scoreRepo.scores = []models.MatchScore{
		{ID: 1, MatchID: 1, ParticipantType: models.ParticipantTeam, TeamID: intPtr(10), Score: 5},
	}

	match, err := svc.GetMatchDetails(context.Background(), 1, false)
	require.NoError(t, err)

	assert.Nil(t, match.Scores)
	assert.Nil(t, match.TotalScores)
	assert.NotNil(t, match.Participations)

	// Без запрошенных очков total_scores сериализуется как null.
	body, err := json.Marshal(match)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"total_scores":null`)
}

func TestGetMatchDetailsWithScoresEmpty(t *testing.T) {
	svc, _, _, _ := newMatchServiceFixture(t)

	match, err := svc.GetMatchDetails(context.Background(), 1, true)
	require.NoError(t, err)

	require.NotNil(t, match.TotalScores)
	assert.Empty(t, match.TotalScores)

	body, err := json.Marshal(match)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"total_scores":[]`)
}

func TestGetMatchDetailsAggregatesScores(t *testing.T) {
	svc, scoreRepo, _, _ := newMatchServiceFixture(t)
	scoreRepo.scores = []models.MatchScore{
		{ID: 1, MatchID: 1, ParticipantType: models.ParticipantTeam, TeamID: intPtr(10), Score: 10},
		{ID: 2, MatchID: 1, ParticipantType: models.ParticipantPlayer, PlayerID: intPtr(7), Score: 3},
		{ID: 3, MatchID: 1, ParticipantType: models.ParticipantTeam, TeamID: intPtr(10), Score: 5},
	}

	match, err := svc.GetMatchDetails(context.Background(), 1, true)
	require.NoError(t, err)

	require.Len(t, match.Scores, 3)
	require.Len(t, match.TotalScores, 2)
	assert.Equal(t, 10, match.TotalScores[0].ID)
	assert.Equal(t, int64(15), match.TotalScores[0].TotalScore)
	assert.Equal(t, 7, match.TotalScores[1].ID)
	assert.Equal(t, int64(3), match.TotalScores[1].TotalScore)
}

func TestGetMatchDetailsNotFound(t *testing.T) {
	svc, _, _, _ := newMatchServiceFixture(t)

	_, err := svc.GetMatchDetails(context.Background(), 42, true)
	assert.True(t, errors.Is(err, ErrMatchNotFound))
}

func TestRegisterParticipantTeam(t *testing.T) {
	svc, _, participationRepo, _ := newMatchServiceFixture(t)

	participation, err := svc.RegisterParticipant(context.Background(), 1, ParticipationInput{
		ParticipantType: models.ParticipantTeam,
		TeamID:          intPtr(10),
	})
	require.NoError(t, err)
	require.NotNil(t, participation.TeamID)
	assert.Equal(t, 10, *participation.TeamID)
	assert.Nil(t, participation.PlayerID)
	assert.Len(t, participationRepo.participations, 1)
}

func TestRegisterParticipantMalformedUnion(t *testing.T) {
	svc, _, participationRepo, _ := newMatchServiceFixture(t)

	_, err := svc.RegisterParticipant(context.Background(), 1, ParticipationInput{
		ParticipantType: models.ParticipantPlayer,
		TeamID:          intPtr(10),
	})

	var verr *scoring.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, scoring.KindMismatchedIDs, verr.Kind)
	assert.Empty(t, participationRepo.participations)
}

func TestRegisterParticipantDuplicate(t *testing.T) {
	svc, _, _, _ := newMatchServiceFixture(t)
	ctx := context.Background()

	input := ParticipationInput{ParticipantType: models.ParticipantTeam, TeamID: intPtr(10)}
	_, err := svc.RegisterParticipant(ctx, 1, input)
	require.NoError(t, err)

	_, err = svc.RegisterParticipant(ctx, 1, input)
	assert.True(t, errors.Is(err, ErrRegistrationConflict))
}

func TestRegisterParticipantUnknownTeam(t *testing.T) {
	svc, _, _, _ := newMatchServiceFixture(t)

	_, err := svc.RegisterParticipant(context.Background(), 1, ParticipationInput{
		ParticipantType: models.ParticipantTeam,
		TeamID:          intPtr(9999),
	})

	var verr *scoring.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, scoring.KindUnknownParticipant, verr.Kind)
}

func TestFinishMatch(t *testing.T) {
	svc, _, _, matchRepo := newMatchServiceFixture(t)

	match, err := svc.Finish(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, match.Finished)
	assert.True(t, matchRepo.matches[1].Finished)

	_, err = svc.Finish(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrMatchAlreadyFinished))
}

func TestCreateMatchUnknownTournament(t *testing.T) {
	svc, _, _, _ := newMatchServiceFixture(t)

	_, err := svc.Create(context.Background(), &models.Match{TournamentID: 99, Date: time.Now()})
	assert.True(t, errors.Is(err, ErrTournamentNotFound))
}
