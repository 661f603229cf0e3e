package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/scoring"
)

func intPtr(v int) *int { return &v }

func newScoreServiceFixture(t *testing.T) (ScoreService, *fakeScoreRepo, *fakeMatchRepo, *fakeBroadcaster) {
	t.Helper()
	matchRepo := newFakeMatchRepo(&models.Match{ID: 1, TournamentID: 1, Date: time.Now()})
	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		10: {ID: 10, Name: "Falcons"},
	}}
	playerRepo := &fakePlayerRepo{players: map[int]*models.Player{
		7: {ID: 7, Name: "Evelyn Reed"},
	}}
	scoreRepo := &fakeScoreRepo{}
	hub := &fakeBroadcaster{}
	svc := NewScoreService(scoreRepo, matchRepo, teamRepo, playerRepo, hub)
	return svc, scoreRepo, matchRepo, hub
}

func TestAddScorePersistsResolvedParticipant(t *testing.T) {
	svc, scoreRepo, _, _ := newScoreServiceFixture(t)

	score, err := svc.AddScore(context.Background(), 1, ScoreInput{
		ParticipantType: models.ParticipantTeam,
		TeamID:          intPtr(10),
		Score:           25,
	})
	require.NoError(t, err)
	require.NotNil(t, score.TeamID)
	assert.Equal(t, 10, *score.TeamID)
	assert.Nil(t, score.PlayerID)
	assert.Equal(t, models.ParticipantTeam, score.ParticipantType)
	assert.Len(t, scoreRepo.scores, 1)
}

func TestAddScoreBroadcastsRecomputedTotals(t *testing.T) {
	svc, _, _, hub := newScoreServiceFixture(t)
	ctx := context.Background()

	_, err := svc.AddScore(ctx, 1, ScoreInput{
		ParticipantType: models.ParticipantTeam,
		TeamID:          intPtr(10),
		Score:           10,
	})
	require.NoError(t, err)
	_, err = svc.AddScore(ctx, 1, ScoreInput{
		ParticipantType: models.ParticipantTeam,
		TeamID:          intPtr(10),
		Score:           5,
	})
	require.NoError(t, err)

	require.Len(t, hub.calls, 2)
	last := hub.calls[1]
	assert.Equal(t, 1, last.matchID)
	assert.Equal(t, "SCORE_ADDED", last.msgType)

	payload, ok := last.payload.(ScoreUpdatePayload)
	require.True(t, ok)
	require.Len(t, payload.TotalScores, 1)
	assert.Equal(t, 10, payload.TotalScores[0].ID)
	assert.Equal(t, int64(15), payload.TotalScores[0].TotalScore)
}

func TestAddScoreRejectsMalformedParticipant(t *testing.T) {
	svc, scoreRepo, _, hub := newScoreServiceFixture(t)

	// participant_type говорит team, а заполнен player_id.
	_, err := svc.AddScore(context.Background(), 1, ScoreInput{
		ParticipantType: models.ParticipantTeam,
		PlayerID:        intPtr(7),
		Score:           3,
	})

	var verr *scoring.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, scoring.KindMismatchedIDs, verr.Kind)
	assert.Empty(t, scoreRepo.scores)
	assert.Empty(t, hub.calls)
}

func TestAddScoreRejectsUnknownParticipant(t *testing.T) {
	svc, scoreRepo, _, _ := newScoreServiceFixture(t)

	_, err := svc.AddScore(context.Background(), 1, ScoreInput{
		ParticipantType: models.ParticipantPlayer,
		PlayerID:        intPtr(9999),
		Score:           3,
	})

	var verr *scoring.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, scoring.KindUnknownParticipant, verr.Kind)
	assert.Empty(t, scoreRepo.scores)
}

func TestAddScoreFinishedMatch(t *testing.T) {
	svc, scoreRepo, matchRepo, _ := newScoreServiceFixture(t)
	matchRepo.matches[1].Finished = true

	_, err := svc.AddScore(context.Background(), 1, ScoreInput{
		ParticipantType: models.ParticipantTeam,
		TeamID:          intPtr(10),
		Score:           1,
	})

	assert.True(t, errors.Is(err, ErrScoreForFinishedMatch))
	assert.Empty(t, scoreRepo.scores)
}

func TestAddScoreMatchNotFound(t *testing.T) {
	svc, _, _, _ := newScoreServiceFixture(t)

	_, err := svc.AddScore(context.Background(), 42, ScoreInput{
		ParticipantType: models.ParticipantTeam,
		TeamID:          intPtr(10),
		Score:           1,
	})

	assert.True(t, errors.Is(err, ErrMatchNotFound))
}

func TestAddScoreBroadcastFailureKeepsScore(t *testing.T) {
	svc, scoreRepo, _, hub := newScoreServiceFixture(t)
	scoreRepo.listErr = errors.New("connection reset")

	score, err := svc.AddScore(context.Background(), 1, ScoreInput{
		ParticipantType: models.ParticipantPlayer,
		PlayerID:        intPtr(7),
		Score:           4,
	})

	// Очко сохранено, рассылка просто не состоялась.
	require.NoError(t, err)
	assert.NotZero(t, score.ID)
	assert.Len(t, scoreRepo.scores, 1)
	assert.Empty(t, hub.calls)
}
