package leaderboard

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-dashboard/models"
)

func completed(id string, stage models.Stage, a1, a2, s1, s2 string) models.Match {
	return models.Match{
		ID:        id,
		Stage:     stage,
		Status:    models.StatusCompleted,
		Alliance1: a1,
		Alliance2: a2,
		Score1:    s1,
		Score2:    s2,
	}
}

func TestTeamStandings(t *testing.T) {
	matches := []models.Match{
		completed("Q1", models.StageQualifiers, "A", "B", "10", "7"),
		{ID: "Q2", Stage: models.StageQualifiers, Status: models.StatusLive, Alliance1: "C", Alliance2: "D", Score1: "50", Score2: "60"},
	}

	table := TeamStandings(matches)

	assert.Equal(t, 1, table.CompletedCount)
	assert.Equal(t, []models.TeamStanding{
		{Team: "A", MP: 10, Side: "Team Black", MatchName: "Qualifier 1"},
		{Team: "B", MP: 7, Side: "Team White", MatchName: "Qualifier 1"},
	}, table.Rows)
}

func TestTeamStandingsTieBrokenAlphabetically(t *testing.T) {
	matches := []models.Match{
		completed("Q1", models.StageQualifiers, "B", "A", "5", "5"),
	}

	table := TeamStandings(matches)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "A", table.Rows[0].Team)
	assert.Equal(t, "B", table.Rows[1].Team)
}

func TestTeamStandingsLastWriteWins(t *testing.T) {
	matches := []models.Match{
		completed("Q1", models.StageQualifiers, "A", "B", "10", "7"),
		completed("Q2", models.StageQualifiers, "C", "A", "4", "3"),
	}

	table := TeamStandings(matches)

	var a models.TeamStanding
	for _, row := range table.Rows {
		if row.Team == "A" {
			a = row
		}
	}
	// последнее значение, не сумма 13
	assert.Equal(t, 3, a.MP)
	assert.Equal(t, "Team White", a.Side)
	assert.Equal(t, "Qualifier 2", a.MatchName)
	assert.Equal(t, 2, table.CompletedCount)
}

func TestTeamStandingsSanitizesScores(t *testing.T) {
	matches := []models.Match{
		completed("Q1", models.StageQualifiers, "A", "B", "#NUM!", "abc"),
	}

	table := TeamStandings(matches)

	require.Len(t, table.Rows, 2)
	for _, row := range table.Rows {
		assert.Zero(t, row.MP)
	}
}

func TestTeamStandingsEmpty(t *testing.T) {
	table := TeamStandings(nil)
	assert.Empty(t, table.Rows)
	assert.NotNil(t, table.Rows)
	assert.Zero(t, table.CompletedCount)
}

func TestIndividualStandings(t *testing.T) {
	m := completed("Q1", models.StageQualifiers, "Ann + Bob", "Solo", "10", "7")
	m.BlackTeam1Score = "6"
	m.BlackTeam2Score = "4"
	m.WhiteTeam1Score = "7"
	m.WhiteTeam2Score = ""

	rows := IndividualStandings([]models.Match{m})

	assert.Equal(t, []models.PlayerStanding{
		{Name: "Solo", Total: 7},
		{Name: "Ann", Total: 6},
		{Name: "Bob", Total: 4},
		{Name: "Team 2", Total: 0},
	}, rows)
}

func TestIndividualStandingsLastWriteWins(t *testing.T) {
	first := completed("Q1", models.StageQualifiers, "Ann + Bob", "Cy + Di", "0", "0")
	first.BlackTeam1Score = "9"
	second := completed("Q2", models.StageQualifiers, "Cy + Ann", "Ed + Fo", "0", "0")
	second.BlackTeam2Score = "2"

	rows := IndividualStandings([]models.Match{first, second})

	for _, row := range rows {
		if row.Name == "Ann" {
			assert.Equal(t, 2, row.Total)
			return
		}
	}
	t.Fatal("Ann not found")
}

func TestKnockoutRankingPriority(t *testing.T) {
	matches := []models.Match{
		completed("QF1", models.StageQuarterfinals, "Q-A", "Q-B", "100", "90"),
		completed("SF1", models.StageSemifinals, "S-A", "S-B", "50", "40"),
		completed("TP", models.StageThirdPlace, "T-A", "T-B", "20", "30"),
		completed("F", models.StageFinals, "F-A", "F-B", "1", "2"),
		completed("Q1", models.StageQualifiers, "X", "Y", "500", "400"),
	}

	rows := KnockoutRanking(matches)

	require.Len(t, rows, 8)
	teams := make([]string, 0, len(rows))
	for _, r := range rows {
		teams = append(teams, r.Team)
	}
	assert.Equal(t, []string{"F-B", "F-A", "T-B", "T-A", "S-A", "S-B", "Q-A", "Q-B"}, teams)

	assert.Equal(t, "Final (F)", rows[0].MatchName)
	assert.Equal(t, 4, rows[0].Priority)
	assert.Equal(t, "3rd Place Match (TP)", rows[2].MatchName)
	assert.Equal(t, "Semifinals (SF1)", rows[4].MatchName)
	assert.Equal(t, "Quarterfinals (QF1)", rows[6].MatchName)
	assert.Equal(t, 1, rows[6].Priority)
}

func TestKnockoutRankingIgnoresOpenMatches(t *testing.T) {
	m := completed("F", models.StageFinals, "A", "B", "1", "2")
	m.Status = models.StatusLive

	assert.Empty(t, KnockoutRanking([]models.Match{m}))
}

func TestMatchName(t *testing.T) {
	tests := map[string]string{
		"F":    "Final",
		"f":    "Final",
		"TP":   "3rd Position Match",
		"QF3":  "Quarterfinal 3",
		"SF1":  "Semifinal 1",
		"Q12":  "Qualifier 12",
		"":     "Match",
		"X9":   "X9",
		"Demo": "Demo",
	}

	for id, want := range tests {
		assert.Equal(t, want, MatchName(id), "id %q", id)
	}
}

func TestResolveWinner(t *testing.T) {
	m := completed("Q1", models.StageQualifiers, "A", "B", "3", "5")
	m.Winner = models.SideBlack
	assert.Equal(t, models.SideBlack, ResolveWinner(m), "winner field overrides scores")
	assert.Equal(t, "A", WinnerAlliance(m))

	m.Winner = models.SideNone
	assert.Equal(t, models.SideWhite, ResolveWinner(m))
	assert.Equal(t, "B", WinnerAlliance(m))

	m.Score2 = "3"
	assert.Equal(t, models.SideDraw, ResolveWinner(m))
	assert.Equal(t, "Draw", WinnerAlliance(m))
}

func TestWinnerHistory(t *testing.T) {
	win := completed("Q1", models.StageQualifiers, "Ann + Bob", "Cy", "12", "8")
	win.BlackTeam1Score = "7"
	win.BlackTeam2Score = "5"
	draw := completed("Q2", models.StageQualifiers, "A", "B", "4", "4")
	open := models.Match{ID: "Q3", Stage: models.StageQualifiers, Status: models.StatusScheduled}

	records := WinnerHistory([]models.Match{win, open, draw})

	require.Len(t, records, 2)
	assert.Equal(t, "Q1", records[0].MatchID)
	assert.Equal(t, models.SideBlack, records[0].Winner)
	assert.Equal(t, "Ann + Bob", records[0].WinnerAlliance)
	assert.Equal(t, "12", records[0].Score)
	assert.Equal(t, []models.PlayerLine{{Name: "Ann", Score: 7}, {Name: "Bob", Score: 5}}, records[0].BlackPlayers)
	assert.Equal(t, []models.PlayerLine{{Name: "Cy", Score: 0}, {Name: "Player 2", Score: 0}}, records[0].WhitePlayers)

	assert.Equal(t, models.SideDraw, records[1].Winner)
	assert.Equal(t, "Draw", records[1].WinnerAlliance)
	assert.Equal(t, "4 - 4", records[1].Score)
}

func TestComputePodium(t *testing.T) {
	final := completed("F", models.StageFinals, "Gold", "Silver", "2", "9")
	final.Winner = models.SideWhite
	third := completed("TP", models.StageThirdPlace, "Bronze", "Fourth", "6", "1")

	podium := ComputePodium([]models.Match{final, third})

	assert.Equal(t, models.Podium{Champion: "Silver", RunnerUp: "Gold", ThirdPlace: "Bronze"}, podium)
}

func TestComputePodiumUndecided(t *testing.T) {
	drawnFinal := completed("F", models.StageFinals, "A", "B", "3", "3")
	openThird := models.Match{ID: "TP", Stage: models.StageThirdPlace, Status: models.StatusLive, Alliance1: "C", Alliance2: "D"}

	assert.Equal(t, models.Podium{}, ComputePodium([]models.Match{drawnFinal, openThird}))
}

func TestKnockoutCards(t *testing.T) {
	matches := []models.Match{
		completed("F", models.StageFinals, "A", "B", "1", "0"),
		completed("QF2", models.StageQuarterfinals, "C", "D", "0", "1"),
		completed("QF10", models.StageQuarterfinals, "E", "F", "1", "0"),
		completed("Q1", models.StageQualifiers, "G", "H", "1", "0"),
		completed("SF1", models.StageSemifinals, "I", "J", "2", "2"),
	}

	cards := KnockoutCards(matches)

	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.Match.ID)
	}
	assert.Equal(t, []string{"QF2", "QF10", "SF1", "F"}, ids)
	assert.Equal(t, "D", cards[0].WinnerAlliance)
	assert.Equal(t, models.SideDraw, cards[2].Winner)
}

func TestStageSchedule(t *testing.T) {
	matches := []models.Match{
		{ID: "Q10", Stage: models.StageQualifiers},
		{ID: "Q2", Stage: models.StageQualifiers},
		{ID: "QF1", Stage: models.StageQuarterfinals},
		{ID: "Q1", Stage: models.StageQualifiers},
	}

	got := StageSchedule(matches, models.StageQualifiers)

	ids := make([]string, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"Q1", "Q2", "Q10"}, ids)
}

func TestStageScheduleByTime(t *testing.T) {
	matches := []models.Match{
		{ID: "Q1", Stage: models.StageQualifiers, Time: "11:00"},
		{ID: "Q2", Stage: models.StageQualifiers, Time: "09:30"},
	}

	got := StageSchedule(matches, models.StageQualifiers)

	require.Len(t, got, 2)
	assert.Equal(t, "Q2", got[0].ID)
}

func TestUpcoming(t *testing.T) {
	matches := []models.Match{
		{ID: "Q3", Status: models.StatusScheduled},
		{ID: "Q1", Status: models.StatusCompleted},
		{ID: "Q2", Status: models.StatusScheduled},
		{ID: "Q4", Status: models.StatusTBD},
	}

	got := Upcoming(matches)

	require.Len(t, got, 2)
	assert.Equal(t, "Q2", got[0].ID)
	assert.Equal(t, "Q3", got[1].ID)
}

func TestAggregationIsPureAndIdempotent(t *testing.T) {
	matches := []models.Match{
		completed("Q2", models.StageQualifiers, "C + D", "A + B", "3", "8"),
		completed("Q1", models.StageQualifiers, "A + B", "E + F", "10", "7"),
		completed("SF1", models.StageSemifinals, "A + B", "C + D", "5", "6"),
	}
	original := slices.Clone(matches)

	assert.Equal(t, TeamStandings(matches), TeamStandings(matches))
	assert.Equal(t, IndividualStandings(matches), IndividualStandings(matches))
	assert.Equal(t, KnockoutRanking(matches), KnockoutRanking(matches))
	assert.Equal(t, WinnerHistory(matches), WinnerHistory(matches))
	StageSchedule(matches, models.StageQualifiers)
	Upcoming(matches)

	assert.Equal(t, original, matches)
}
