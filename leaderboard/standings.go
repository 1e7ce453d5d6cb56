// Package leaderboard считает таблицы турнира из плоского списка матчей.
// Все функции чистые: вход не меняется, повторный вызов на тех же данных
// даёт тот же результат.
package leaderboard

import (
	"slices"
	"strings"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/utils"
)

const (
	priorityFinal         = 4
	priorityThirdPlace    = 3
	prioritySemifinals    = 2
	priorityQuarterfinals = 1
)

// Completed возвращает завершённые матчи в исходном порядке.
func Completed(matches []models.Match) []models.Match {
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsCompleted() {
			out = append(out, m)
		}
	}
	return out
}

// TeamStandings строит командную таблицу.
//
// Очки не суммируются: для каждой метки альянса остаётся значение из последнего
// по порядку завершённого матча.
func TeamStandings(matches []models.Match) models.TeamTable {
	byTeam := make(map[string]models.TeamStanding)
	completed := Completed(matches)

	for _, m := range completed {
		name := MatchName(m.ID)
		byTeam[m.Alliance1] = models.TeamStanding{
			Team:      m.Alliance1,
			MP:        utils.SanitizeScore(m.Score1),
			Side:      models.SideBlack.Label(),
			MatchName: name,
		}
		byTeam[m.Alliance2] = models.TeamStanding{
			Team:      m.Alliance2,
			MP:        utils.SanitizeScore(m.Score2),
			Side:      models.SideWhite.Label(),
			MatchName: name,
		}
	}

	rows := make([]models.TeamStanding, 0, len(byTeam))
	for _, row := range byTeam {
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b models.TeamStanding) int {
		if a.MP != b.MP {
			return b.MP - a.MP
		}
		return compareLabels(a.Team, b.Team)
	})

	return models.TeamTable{Rows: rows, CompletedCount: len(completed)}
}

// IndividualStandings строит таблицу игроков. Как и у команд, значение
// игрока перезаписывается последним матчем, а не суммируется.
func IndividualStandings(matches []models.Match) []models.PlayerStanding {
	byPlayer := make(map[string]int)

	for _, m := range Completed(matches) {
		black1, black2 := utils.SplitAllianceLabel(m.Alliance1, utils.TeamDefaults)
		white1, white2 := utils.SplitAllianceLabel(m.Alliance2, utils.TeamDefaults)

		byPlayer[black1] = utils.SanitizeScore(m.BlackTeam1Score)
		byPlayer[black2] = utils.SanitizeScore(m.BlackTeam2Score)
		byPlayer[white1] = utils.SanitizeScore(m.WhiteTeam1Score)
		byPlayer[white2] = utils.SanitizeScore(m.WhiteTeam2Score)
	}

	rows := make([]models.PlayerStanding, 0, len(byPlayer))
	for name, total := range byPlayer {
		rows = append(rows, models.PlayerStanding{Name: name, Total: total})
	}
	slices.SortFunc(rows, func(a, b models.PlayerStanding) int {
		if a.Total != b.Total {
			return b.Total - a.Total
		}
		return compareLabels(a.Name, b.Name)
	})
	return rows
}

// KnockoutRanking: строки финала всегда выше строк матча за 3-е место,
// те выше полуфиналов, полуфиналы выше четвертьфиналов.
func KnockoutRanking(matches []models.Match) []models.KnockoutStanding {
	var rows []models.KnockoutStanding

	for _, m := range Completed(matches) {
		priority, label, ok := knockoutRound(m)
		if !ok {
			continue
		}
		name := label + " (" + m.ID + ")"
		rows = append(rows,
			models.KnockoutStanding{
				Team:      m.Alliance1,
				MP:        utils.SanitizeScore(m.Score1),
				Side:      models.SideBlack.Label(),
				MatchName: name,
				Priority:  priority,
			},
			models.KnockoutStanding{
				Team:      m.Alliance2,
				MP:        utils.SanitizeScore(m.Score2),
				Side:      models.SideWhite.Label(),
				MatchName: name,
				Priority:  priority,
			},
		)
	}

	slices.SortStableFunc(rows, func(a, b models.KnockoutStanding) int {
		if a.Priority != b.Priority {
			return b.Priority - a.Priority
		}
		if a.MP != b.MP {
			return b.MP - a.MP
		}
		return compareLabels(a.Team, b.Team)
	})
	if rows == nil {
		rows = []models.KnockoutStanding{}
	}
	return rows
}

func knockoutRound(m models.Match) (int, string, bool) {
	switch {
	case strings.EqualFold(m.ID, "F"):
		return priorityFinal, "Final", true
	case strings.EqualFold(m.ID, "TP"):
		return priorityThirdPlace, "3rd Place Match", true
	case m.Stage == models.StageSemifinals:
		return prioritySemifinals, string(models.StageSemifinals), true
	case m.Stage == models.StageQuarterfinals:
		return priorityQuarterfinals, string(models.StageQuarterfinals), true
	}
	return 0, "", false
}

func compareLabels(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
