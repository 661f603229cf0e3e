package scoring

import "github.com/rgomide/gerenciador-torneio-sub001/models"

// accumulator накапливает сумму очков одной группы и первое найденное имя.
type accumulator struct {
	total int64
	name  *string
}

// AggregateScores сворачивает сырые очковые записи одного матча в итоги по
// участникам. Группировка идёт по ParticipantRef с сохранением порядка первого
// появления ключа; сумма коммутативна, поэтому итог не зависит от порядка строк.
// Пустой вход даёт пустой (не nil) срез — различие "не запрашивали" против
// "очков нет" решается выше, на уровне сервиса (nil-коллекция против пустой).
//
// Записи уже прошли резолвер на пути записи; строка с нарушенным инвариантом
// (возможна только при импорте данных мимо этого кода) молча пропускается.
func AggregateScores(scores []models.MatchScore) []models.ParticipantTotal {
	byRef := make(map[ParticipantRef]*accumulator)
	order := make([]ParticipantRef, 0, len(scores))

	for i := range scores {
		s := &scores[i]
		ref, err := ResolveRef(s.ParticipantType, s.TeamID, s.PlayerID)
		if err != nil {
			continue
		}

		acc, seen := byRef[ref]
		if !seen {
			acc = &accumulator{}
			byRef[ref] = acc
			order = append(order, ref)
		}
		acc.total += int64(s.Score)
		if acc.name == nil {
			acc.name = displayName(s, ref.Kind)
		}
	}

	totals := make([]models.ParticipantTotal, 0, len(order))
	for _, ref := range order {
		acc := byRef[ref]
		totals = append(totals, models.ParticipantTotal{
			ID:         ref.ID,
			Name:       acc.name,
			TotalScore: acc.total,
		})
	}
	return totals
}

// displayName берёт имя из предзагруженной команды или игрока записи.
// Если связанная сущность не загружена, имя остаётся nil — это допустимый
// деградированный результат, не ошибка.
func displayName(s *models.MatchScore, kind models.ParticipantType) *string {
	switch kind {
	case models.ParticipantTeam:
		if s.Team != nil {
			return &s.Team.Name
		}
	case models.ParticipantPlayer:
		if s.Player != nil {
			return &s.Player.Name
		}
	}
	return nil
}
