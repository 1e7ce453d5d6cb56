package leaderboard

import (
	"slices"
	"strings"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/utils"
)

// StageSchedule отбирает матчи раунда. Если у обоих матчей задано время,
// сортировка по времени, иначе по match_id с учётом чисел.
func StageSchedule(matches []models.Match, stage models.Stage) []models.Match {
	out := make([]models.Match, 0)
	for _, m := range matches {
		if strings.EqualFold(string(m.Stage), string(stage)) {
			out = append(out, m)
		}
	}

	slices.SortStableFunc(out, func(a, b models.Match) int {
		if a.Time != "" && b.Time != "" {
			if c := strings.Compare(a.Time, b.Time); c != 0 {
				return c
			}
		}
		return utils.CompareNatural(a.ID, b.ID)
	})
	return out
}

// Upcoming - запланированные матчи по порядку match_id.
func Upcoming(matches []models.Match) []models.Match {
	out := make([]models.Match, 0)
	for _, m := range matches {
		if m.Status == models.StatusScheduled {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Match) int {
		return utils.CompareNatural(a.ID, b.ID)
	})
	return out
}

// Open - матчи, которые судья ещё может менять.
func Open(matches []models.Match) []models.Match {
	out := make([]models.Match, 0)
	for _, m := range matches {
		if !m.IsCompleted() {
			out = append(out, m)
		}
	}
	return out
}
