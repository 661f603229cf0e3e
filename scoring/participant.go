package scoring

import (
	"context"
	"fmt"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
)

// ValidationErrorKind различает причины отклонения записи участника.
type ValidationErrorKind string

const (
	// KindInvalidType — participant_type не равен "team" или "player".
	KindInvalidType ValidationErrorKind = "invalid_participant_type"
	// KindMismatchedIDs — набор заполненных id не соответствует participant_type
	// (оба заполнены, оба пусты, либо заполнен id другого типа).
	KindMismatchedIDs ValidationErrorKind = "mismatched_id_fields"
	// KindUnknownParticipant — id корректен по форме, но команда/игрок не существует.
	KindUnknownParticipant ValidationErrorKind = "unknown_participant"
)

// ValidationError возвращается резолвером при нарушении инварианта tagged union
// или при ссылке на несуществующего участника. Запись отклоняется целиком,
// частичного успеха не бывает.
type ValidationError struct {
	Kind   ValidationErrorKind
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func newValidationError(kind ValidationErrorKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// ParticipantRef — нормализованная ссылка на участника: ровно один из двух
// вариантов {Team(id), Player(id)}. Сравнимая структура, поэтому служит и
// ключом группировки при агрегации (структурный кортеж, не склеенная строка).
type ParticipantRef struct {
	Kind models.ParticipantType
	ID   int
}

// ResolveRef проверяет инвариант "ровно один из team_id/player_id заполнен и
// соответствует participant_type" и нормализует запись в ParticipantRef.
// Чистая функция: существование команды/игрока здесь не проверяется.
func ResolveRef(participantType models.ParticipantType, teamID, playerID *int) (ParticipantRef, error) {
	switch participantType {
	case models.ParticipantTeam:
		if teamID == nil {
			return ParticipantRef{}, newValidationError(KindMismatchedIDs,
				"participant_type is %q but team_id is not set", participantType)
		}
		if playerID != nil {
			return ParticipantRef{}, newValidationError(KindMismatchedIDs,
				"participant_type is %q but player_id is set", participantType)
		}
		return ParticipantRef{Kind: models.ParticipantTeam, ID: *teamID}, nil

	case models.ParticipantPlayer:
		if playerID == nil {
			return ParticipantRef{}, newValidationError(KindMismatchedIDs,
				"participant_type is %q but player_id is not set", participantType)
		}
		if teamID != nil {
			return ParticipantRef{}, newValidationError(KindMismatchedIDs,
				"participant_type is %q but team_id is set", participantType)
		}
		return ParticipantRef{Kind: models.ParticipantPlayer, ID: *playerID}, nil

	default:
		return ParticipantRef{}, newValidationError(KindInvalidType,
			"invalid participant_type %q: must be %q or %q",
			participantType, models.ParticipantTeam, models.ParticipantPlayer)
	}
}

// RefLookup отвечает на вопрос "существует ли участник с таким id".
// Сервисный слой адаптирует под этот интерфейс свои репозитории.
type RefLookup interface {
	TeamExists(ctx context.Context, id int) (bool, error)
	PlayerExists(ctx context.Context, id int) (bool, error)
}

// ResolveParticipant — ResolveRef плюс проверка существования по RefLookup.
// Вызывается на пути записи, до того как строка попадёт в базу.
func ResolveParticipant(ctx context.Context, lookup RefLookup, participantType models.ParticipantType, teamID, playerID *int) (ParticipantRef, error) {
	ref, err := ResolveRef(participantType, teamID, playerID)
	if err != nil {
		return ParticipantRef{}, err
	}

	var exists bool
	switch ref.Kind {
	case models.ParticipantTeam:
		exists, err = lookup.TeamExists(ctx, ref.ID)
	case models.ParticipantPlayer:
		exists, err = lookup.PlayerExists(ctx, ref.ID)
	}
	if err != nil {
		return ParticipantRef{}, fmt.Errorf("failed to check %s %d existence: %w", ref.Kind, ref.ID, err)
	}
	if !exists {
		return ParticipantRef{}, newValidationError(KindUnknownParticipant,
			"%s with id %d not found", ref.Kind, ref.ID)
	}
	return ref, nil
}
