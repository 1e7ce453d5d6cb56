package models

// Stage - раунд турнира. Набор закрыт, строки приходят из таблицы.
type Stage string

const (
	StageQualifiers    Stage = "Qualifiers"
	StageQuarterfinals Stage = "Quarterfinals"
	StageSemifinals    Stage = "Semifinals"
	StageThirdPlace    Stage = "Third Place"
	StageFinals        Stage = "Finals"
)

// Stages в порядке проведения турнира.
var Stages = []Stage{
	StageQualifiers,
	StageQuarterfinals,
	StageSemifinals,
	StageThirdPlace,
	StageFinals,
}

func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusCompleted MatchStatus = "completed"
	StatusTBD       MatchStatus = "tbd"
)

// Label - значение статуса в том виде, в каком его ждёт таблица.
func (s MatchStatus) Label() string {
	switch s {
	case StatusScheduled:
		return "Scheduled"
	case StatusLive:
		return "Live"
	case StatusCompleted:
		return "Completed"
	default:
		return "TBD"
	}
}

// Side - сторона матча. Alliance1 играет за чёрных, Alliance2 за белых.
type Side string

const (
	SideNone  Side = ""
	SideBlack Side = "black"
	SideWhite Side = "white"
	SideDraw  Side = "draw"
)

func (s Side) Label() string {
	switch s {
	case SideBlack:
		return "Team Black"
	case SideWhite:
		return "Team White"
	case SideDraw:
		return "Draw"
	default:
		return ""
	}
}

// Match - копия строки из удалённой таблицы. Очки хранятся как сырой текст ячейки
// и приводятся к числу только при расчётах.
type Match struct {
	ID        string      `json:"match_id"`
	Stage     Stage       `json:"stage"`
	Status    MatchStatus `json:"status"`
	Time      string      `json:"time,omitempty"`
	Alliance1 string      `json:"alliance1"`
	Alliance2 string      `json:"alliance2"`

	Score1          string `json:"score1"`
	Score2          string `json:"score2"`
	BlackTeam1Score string `json:"black_team1_score"`
	BlackTeam2Score string `json:"black_team2_score"`
	WhiteTeam1Score string `json:"white_team1_score"`
	WhiteTeam2Score string `json:"white_team2_score"`

	Winner    Side   `json:"winner,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

// ScoreSet - необязательные очки для отправки. nil означает "не передавать".
type ScoreSet struct {
	Score1          *int `json:"score1,omitempty"`
	Score2          *int `json:"score2,omitempty"`
	BlackTeam1Score *int `json:"black_team1_score,omitempty"`
	BlackTeam2Score *int `json:"black_team2_score,omitempty"`
	WhiteTeam1Score *int `json:"white_team1_score,omitempty"`
	WhiteTeam2Score *int `json:"white_team2_score,omitempty"`
}

// MatchUpdate - запрос судьи на изменение матча.
type MatchUpdate struct {
	Pin     string
	MatchID string
	Status  MatchStatus
	Scores  ScoreSet
}

// AdminAction - удалённая операция генерации сетки.
type AdminAction string

const (
	ActionGenerateQuarterfinals AdminAction = "generateQuarterfinals"
	ActionGenerateSemifinals    AdminAction = "generateSemifinals"
	ActionGenerateFinals        AdminAction = "generateFinals"
)

var AdminActions = []AdminAction{
	ActionGenerateQuarterfinals,
	ActionGenerateSemifinals,
	ActionGenerateFinals,
}

func (a AdminAction) Valid() bool {
	for _, known := range AdminActions {
		if a == known {
			return true
		}
	}
	return false
}
