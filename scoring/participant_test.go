package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
)

func intPtr(v int) *int { return &v }

func TestResolveRef(t *testing.T) {
	tests := []struct {
		name     string
		pType    models.ParticipantType
		teamID   *int
		playerID *int
		wantRef  ParticipantRef
		wantKind ValidationErrorKind
	}{
		{
			name:    "team with team id only",
			pType:   models.ParticipantTeam,
			teamID:  intPtr(1),
			wantRef: ParticipantRef{Kind: models.ParticipantTeam, ID: 1},
		},
		{
			name:     "player with player id only",
			pType:    models.ParticipantPlayer,
			playerID: intPtr(9),
			wantRef:  ParticipantRef{Kind: models.ParticipantPlayer, ID: 9},
		},
		{
			name:     "team type with player id instead of team id",
			pType:    models.ParticipantTeam,
			playerID: intPtr(5),
			wantKind: KindMismatchedIDs,
		},
		{
			name:     "team type with both ids set",
			pType:    models.ParticipantTeam,
			teamID:   intPtr(1),
			playerID: intPtr(5),
			wantKind: KindMismatchedIDs,
		},
		{
			name:     "player type with team id set",
			pType:    models.ParticipantPlayer,
			teamID:   intPtr(1),
			playerID: intPtr(9),
			wantKind: KindMismatchedIDs,
		},
		{
			name:     "player type with no ids",
			pType:    models.ParticipantPlayer,
			wantKind: KindMismatchedIDs,
		},
		{
			name:     "unknown participant type",
			pType:    "referee",
			teamID:   intPtr(1),
			wantKind: KindInvalidType,
		},
		{
			name:     "empty participant type",
			pType:    "",
			wantKind: KindInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ResolveRef(tt.pType, tt.teamID, tt.playerID)

			if tt.wantKind != "" {
				var vErr *ValidationError
				require.Error(t, err)
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.wantKind, vErr.Kind)
				assert.NotEmpty(t, vErr.Reason)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRef, ref)
		})
	}
}

func TestResolveRefGroupingKeyEquality(t *testing.T) {
	// Одинаковые (type, id) дают равный ключ независимо от остальных полей строки.
	a, err := ResolveRef(models.ParticipantTeam, intPtr(7), nil)
	require.NoError(t, err)
	b, err := ResolveRef(models.ParticipantTeam, intPtr(7), nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Команда и игрок с одинаковым числовым id — разные ключи, не коллизия.
	p, err := ResolveRef(models.ParticipantPlayer, nil, intPtr(7))
	require.NoError(t, err)
	assert.NotEqual(t, a, p)
}

type fakeLookup struct {
	teams   map[int]bool
	players map[int]bool
	err     error
}

func (f *fakeLookup) TeamExists(_ context.Context, id int) (bool, error) {
	return f.teams[id], f.err
}

func (f *fakeLookup) PlayerExists(_ context.Context, id int) (bool, error) {
	return f.players[id], f.err
}

func TestResolveParticipant(t *testing.T) {
	lookup := &fakeLookup{
		teams:   map[int]bool{1: true},
		players: map[int]bool{9: true},
	}

	t.Run("existing team resolves", func(t *testing.T) {
		ref, err := ResolveParticipant(context.Background(), lookup, models.ParticipantTeam, intPtr(1), nil)
		require.NoError(t, err)
		assert.Equal(t, ParticipantRef{Kind: models.ParticipantTeam, ID: 1}, ref)
	})

	t.Run("existing player resolves", func(t *testing.T) {
		ref, err := ResolveParticipant(context.Background(), lookup, models.ParticipantPlayer, nil, intPtr(9))
		require.NoError(t, err)
		assert.Equal(t, ParticipantRef{Kind: models.ParticipantPlayer, ID: 9}, ref)
	})

	t.Run("dangling team reference is a distinct not-found kind", func(t *testing.T) {
		_, err := ResolveParticipant(context.Background(), lookup, models.ParticipantTeam, intPtr(9999), nil)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, KindUnknownParticipant, vErr.Kind)
		assert.Contains(t, vErr.Reason, "not found")
	})

	t.Run("malformed union fails before lookup", func(t *testing.T) {
		// team type + player id: отклоняется резолвером, до запроса существования.
		_, err := ResolveParticipant(context.Background(), lookup, models.ParticipantTeam, nil, intPtr(5))
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, KindMismatchedIDs, vErr.Kind)
	})

	t.Run("lookup failure is not a validation error", func(t *testing.T) {
		broken := &fakeLookup{err: errors.New("connection reset")}
		_, err := ResolveParticipant(context.Background(), broken, models.ParticipantTeam, intPtr(1), nil)
		require.Error(t, err)
		var vErr *ValidationError
		assert.False(t, errors.As(err, &vErr))
	})
}
