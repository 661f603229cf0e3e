package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
)

func teamScore(teamID, score int, team *models.Team) models.MatchScore {
	return models.MatchScore{
		MatchID:         1,
		ParticipantType: models.ParticipantTeam,
		TeamID:          &teamID,
		Score:           score,
		Team:            team,
	}
}

func playerScore(playerID, score int, player *models.Player) models.MatchScore {
	return models.MatchScore{
		MatchID:         1,
		ParticipantType: models.ParticipantPlayer,
		PlayerID:        &playerID,
		Score:           score,
		Player:          player,
	}
}

func TestAggregateScores(t *testing.T) {
	t.Run("sums multiple entries per participant in first occurrence order", func(t *testing.T) {
		scores := []models.MatchScore{
			teamScore(1, 10, &models.Team{ID: 1, Name: "Falcons"}),
			teamScore(1, 5, &models.Team{ID: 1, Name: "Falcons"}),
			playerScore(9, 3, &models.Player{ID: 9, Name: "Ana"}),
		}

		totals := AggregateScores(scores)

		require.Len(t, totals, 2)
		assert.Equal(t, 1, totals[0].ID)
		assert.Equal(t, int64(15), totals[0].TotalScore)
		require.NotNil(t, totals[0].Name)
		assert.Equal(t, "Falcons", *totals[0].Name)

		assert.Equal(t, 9, totals[1].ID)
		assert.Equal(t, int64(3), totals[1].TotalScore)
		require.NotNil(t, totals[1].Name)
		assert.Equal(t, "Ana", *totals[1].Name)
	})

	t.Run("negative scores are allowed", func(t *testing.T) {
		totals := AggregateScores([]models.MatchScore{
			playerScore(9, -2, nil),
		})

		require.Len(t, totals, 1)
		assert.Equal(t, 9, totals[0].ID)
		assert.Equal(t, int64(-2), totals[0].TotalScore)
	})

	t.Run("empty input yields empty non-nil slice", func(t *testing.T) {
		totals := AggregateScores([]models.MatchScore{})
		require.NotNil(t, totals)
		assert.Empty(t, totals)
	})

	t.Run("name is nil when related entity is not loaded", func(t *testing.T) {
		totals := AggregateScores([]models.MatchScore{
			teamScore(3, 7, nil),
		})

		require.Len(t, totals, 1)
		assert.Nil(t, totals[0].Name)
		assert.Equal(t, int64(7), totals[0].TotalScore)
	})

	t.Run("name comes from any group member that has it loaded", func(t *testing.T) {
		totals := AggregateScores([]models.MatchScore{
			teamScore(3, 7, nil),
			teamScore(3, 2, &models.Team{ID: 3, Name: "Owls"}),
		})

		require.Len(t, totals, 1)
		require.NotNil(t, totals[0].Name)
		assert.Equal(t, "Owls", *totals[0].Name)
		assert.Equal(t, int64(9), totals[0].TotalScore)
	})

	t.Run("team and player sharing a numeric id stay separate groups", func(t *testing.T) {
		totals := AggregateScores([]models.MatchScore{
			teamScore(7, 4, nil),
			playerScore(7, 6, nil),
		})

		require.Len(t, totals, 2)
		assert.Equal(t, int64(4), totals[0].TotalScore)
		assert.Equal(t, int64(6), totals[1].TotalScore)
	})

	t.Run("zero score entries still contribute a group", func(t *testing.T) {
		totals := AggregateScores([]models.MatchScore{
			teamScore(2, 0, nil),
		})

		require.Len(t, totals, 1)
		assert.Equal(t, int64(0), totals[0].TotalScore)
	})

	t.Run("differing details and timestamps do not split a group", func(t *testing.T) {
		d1, d2 := "first half", "second half"
		s1 := teamScore(4, 1, nil)
		s1.Details = &d1
		s2 := teamScore(4, 2, nil)
		s2.Details = &d2

		totals := AggregateScores([]models.MatchScore{s1, s2})

		require.Len(t, totals, 1)
		assert.Equal(t, int64(3), totals[0].TotalScore)
	})

	t.Run("malformed rows are skipped, not fatal", func(t *testing.T) {
		bad := models.MatchScore{
			MatchID:         1,
			ParticipantType: models.ParticipantTeam, // team без team_id
			Score:           100,
		}
		totals := AggregateScores([]models.MatchScore{
			bad,
			playerScore(9, 3, nil),
		})

		require.Len(t, totals, 1)
		assert.Equal(t, 9, totals[0].ID)
	})
}

func TestAggregateScoresOrderIndependentTotals(t *testing.T) {
	base := []models.MatchScore{
		teamScore(1, 10, nil),
		teamScore(1, 5, nil),
		teamScore(2, -3, nil),
		playerScore(9, 3, nil),
		playerScore(9, 4, nil),
		playerScore(5, 8, nil),
	}

	want := totalsByRef(t, AggregateScores(base))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]models.MatchScore, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := totalsByRef(t, AggregateScores(shuffled))
		assert.Equal(t, want, got, "totals must not depend on input order")
	}
}

func TestAggregateScoresIdempotent(t *testing.T) {
	scores := []models.MatchScore{
		teamScore(1, 10, &models.Team{ID: 1, Name: "Falcons"}),
		playerScore(9, 3, nil),
		teamScore(1, 5, nil),
	}

	first := AggregateScores(scores)
	second := AggregateScores(scores)
	assert.Equal(t, first, second)
}

// totalsByRef переводит упорядоченный результат в множество пар (ключ, сумма)
// для сравнения без учёта порядка.
func totalsByRef(t *testing.T, totals []models.ParticipantTotal) map[int]int64 {
	t.Helper()
	m := make(map[int]int64, len(totals))
	for _, total := range totals {
		m[total.ID] += total.TotalScore
	}
	return m
}
