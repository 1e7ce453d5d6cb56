package models

type TeamStanding struct {
	Team      string `json:"team"`
	MP        int    `json:"mp"`
	Side      string `json:"side"`
	MatchName string `json:"match_name"`
}

type TeamTable struct {
	Rows           []TeamStanding `json:"rows"`
	CompletedCount int            `json:"completed_count"`
}

type PlayerStanding struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type KnockoutStanding struct {
	Team      string `json:"team"`
	MP        int    `json:"mp"`
	Side      string `json:"side"`
	MatchName string `json:"match_name"`
	Priority  int    `json:"priority"`
}

type PlayerLine struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// WinnerRecord - строка истории победителей для одного завершённого матча.
type WinnerRecord struct {
	MatchID        string       `json:"match_id"`
	MatchName      string       `json:"match_name"`
	Stage          Stage        `json:"stage"`
	Winner         Side         `json:"winner"`
	WinnerAlliance string       `json:"winner_alliance"`
	Score          string       `json:"score"`
	BlackPlayers   []PlayerLine `json:"black_players"`
	WhitePlayers   []PlayerLine `json:"white_players"`
}

// KnockoutCard - завершённый матч плей-офф с определённым победителем.
type KnockoutCard struct {
	Match          Match  `json:"match"`
	MatchName      string `json:"match_name"`
	Winner         Side   `json:"winner"`
	WinnerAlliance string `json:"winner_alliance"`
	Score1         int    `json:"score1"`
	Score2         int    `json:"score2"`
}

// Podium - итоговые места. Пустая строка означает, что место ещё не определено.
type Podium struct {
	Champion   string `json:"champion"`
	RunnerUp   string `json:"runner_up"`
	ThirdPlace string `json:"third_place"`
}

// RefereeForm - предзаполненная форма судьи для одного матча.
type RefereeForm struct {
	MatchID      string      `json:"match_id"`
	MatchName    string      `json:"match_name"`
	Stage        Stage       `json:"stage"`
	Status       MatchStatus `json:"status"`
	StatusLabel  string      `json:"status_label"`
	BlackPlayers [2]string   `json:"black_players"`
	WhitePlayers [2]string   `json:"white_players"`
	Scores       ScoreSet    `json:"scores"`
}

// MatchResult - объявление результата после успешной отправки судьёй.
type MatchResult struct {
	MatchID        string `json:"match_id"`
	Message        string `json:"message"`
	Status         string `json:"status"`
	Winner         Side   `json:"winner,omitempty"`
	WinnerAlliance string `json:"winner_alliance,omitempty"`
	Announcement   string `json:"announcement,omitempty"`
}
