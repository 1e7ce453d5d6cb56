package leaderboard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/utils"
)

// MatchName переводит match_id в читаемое название: "QF2" -> "Quarterfinal 2".
func MatchName(id string) string {
	id = strings.TrimSpace(id)
	lower := strings.ToLower(id)

	switch {
	case lower == "":
		return "Match"
	case lower == "f":
		return "Final"
	case lower == "tp":
		return "3rd Position Match"
	case strings.HasPrefix(lower, "qf"):
		return strings.TrimSpace("Quarterfinal " + id[2:])
	case strings.HasPrefix(lower, "sf"):
		return strings.TrimSpace("Semifinal " + id[2:])
	case strings.HasPrefix(lower, "q"):
		return strings.TrimSpace("Qualifier " + id[1:])
	}
	return id
}

// ResolveWinner: поле winner главнее счёта. Без него победитель
// определяется сравнением score1 и score2.
func ResolveWinner(m models.Match) models.Side {
	if m.Winner != models.SideNone {
		return m.Winner
	}

	s1 := utils.SanitizeScore(m.Score1)
	s2 := utils.SanitizeScore(m.Score2)
	switch {
	case s1 > s2:
		return models.SideBlack
	case s2 > s1:
		return models.SideWhite
	default:
		return models.SideDraw
	}
}

// WinnerAlliance возвращает метку альянса-победителя или "Draw".
func WinnerAlliance(m models.Match) string {
	switch ResolveWinner(m) {
	case models.SideBlack:
		return m.Alliance1
	case models.SideWhite:
		return m.Alliance2
	default:
		return models.SideDraw.Label()
	}
}

func scoreDisplay(m models.Match, side models.Side) string {
	s1 := utils.SanitizeScore(m.Score1)
	s2 := utils.SanitizeScore(m.Score2)
	switch side {
	case models.SideBlack:
		return fmt.Sprint(s1)
	case models.SideWhite:
		return fmt.Sprint(s2)
	default:
		return fmt.Sprintf("%d - %d", s1, s2)
	}
}

// WinnerHistory - по строке на каждый завершённый матч, в исходном порядке.
func WinnerHistory(matches []models.Match) []models.WinnerRecord {
	completed := Completed(matches)
	records := make([]models.WinnerRecord, 0, len(completed))

	for _, m := range completed {
		side := ResolveWinner(m)
		b1, b2 := utils.SplitAllianceLabel(m.Alliance1, utils.PlayerDefaults)
		w1, w2 := utils.SplitAllianceLabel(m.Alliance2, utils.PlayerDefaults)

		records = append(records, models.WinnerRecord{
			MatchID:        m.ID,
			MatchName:      MatchName(m.ID),
			Stage:          m.Stage,
			Winner:         side,
			WinnerAlliance: WinnerAlliance(m),
			Score:          scoreDisplay(m, side),
			BlackPlayers: []models.PlayerLine{
				{Name: b1, Score: utils.SanitizeScore(m.BlackTeam1Score)},
				{Name: b2, Score: utils.SanitizeScore(m.BlackTeam2Score)},
			},
			WhitePlayers: []models.PlayerLine{
				{Name: w1, Score: utils.SanitizeScore(m.WhiteTeam1Score)},
				{Name: w2, Score: utils.SanitizeScore(m.WhiteTeam2Score)},
			},
		})
	}
	return records
}

// ComputePodium берёт чемпиона и финалиста из финала (F), третье место из матча TP.
// Ничья или незавершённый матч оставляют место пустым.
func ComputePodium(matches []models.Match) models.Podium {
	var podium models.Podium

	for _, m := range matches {
		if !m.IsCompleted() {
			continue
		}
		switch {
		case strings.EqualFold(m.ID, "F"):
			switch ResolveWinner(m) {
			case models.SideBlack:
				podium.Champion, podium.RunnerUp = m.Alliance1, m.Alliance2
			case models.SideWhite:
				podium.Champion, podium.RunnerUp = m.Alliance2, m.Alliance1
			}
		case strings.EqualFold(m.ID, "TP"):
			switch ResolveWinner(m) {
			case models.SideBlack:
				podium.ThirdPlace = m.Alliance1
			case models.SideWhite:
				podium.ThirdPlace = m.Alliance2
			}
		}
	}
	return podium
}

var knockoutStages = map[models.Stage]int{
	models.StageQuarterfinals: 0,
	models.StageSemifinals:    1,
	models.StageFinals:        2,
}

// KnockoutCards - завершённые матчи плей-офф с победителями, по раундам.
func KnockoutCards(matches []models.Match) []models.KnockoutCard {
	cards := make([]models.KnockoutCard, 0)
	for _, m := range Completed(matches) {
		if _, ok := knockoutStages[m.Stage]; !ok {
			continue
		}
		cards = append(cards, models.KnockoutCard{
			Match:          m,
			MatchName:      MatchName(m.ID),
			Winner:         ResolveWinner(m),
			WinnerAlliance: WinnerAlliance(m),
			Score1:         utils.SanitizeScore(m.Score1),
			Score2:         utils.SanitizeScore(m.Score2),
		})
	}

	slices.SortStableFunc(cards, func(a, b models.KnockoutCard) int {
		if sa, sb := knockoutStages[a.Match.Stage], knockoutStages[b.Match.Stage]; sa != sb {
			return sa - sb
		}
		return utils.CompareNatural(a.Match.ID, b.Match.ID)
	})
	return cards
}
