package gateway

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/utils"
)

// cell - значение ячейки таблицы. Таблица может отдать строку, число, bool или null,
// всё приводится к тексту. Объекты и массивы дают пустую строку.
type cell string

func (c *cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*c = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = cell(s)
	case 'n', '{', '[':
		*c = ""
	default:
		// числа и true/false - как есть
		*c = cell(data)
	}
	return nil
}

type wireMatch struct {
	MatchID         cell `json:"match_id"`
	Stage           cell `json:"stage"`
	Status          cell `json:"status"`
	Time            cell `json:"time"`
	Alliance1       cell `json:"alliance1"`
	Alliance2       cell `json:"alliance2"`
	Score1          cell `json:"score1"`
	Score2          cell `json:"score2"`
	BlackTeam1Score cell `json:"black_team1_score"`
	BlackTeam2Score cell `json:"black_team2_score"`
	WhiteTeam1Score cell `json:"white_team1_score"`
	WhiteTeam2Score cell `json:"white_team2_score"`
	Winner          cell `json:"winner"`
	UpdatedAt       cell `json:"updated_at"`
}

type listEnvelope struct {
	OK      bool              `json:"ok"`
	Error   cell              `json:"error"`
	Matches []json.RawMessage `json:"matches"`
}

type writeEnvelope struct {
	OK      bool `json:"ok"`
	Message cell `json:"message"`
	Error   cell `json:"error"`
}

// decodeMatches разбирает записи по одной: битая запись отбрасывается,
// остальные остаются.
func decodeMatches(raw []json.RawMessage, logger *slog.Logger) []models.Match {
	matches := make([]models.Match, 0, len(raw))
	for i, item := range raw {
		var w wireMatch
		if err := json.Unmarshal(item, &w); err != nil {
			logger.Debug("dropping malformed match record", slog.Int("index", i), slog.Any("error", err))
			continue
		}
		m, ok := w.toModel()
		if !ok {
			logger.Debug("dropping match record without id or known stage",
				slog.Int("index", i),
				slog.String("match_id", string(w.MatchID)),
				slog.String("stage", string(w.Stage)),
			)
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

func (w wireMatch) toModel() (models.Match, bool) {
	id := utils.NormalizeSpaces(string(w.MatchID))
	if id == "" {
		return models.Match{}, false
	}
	stage, ok := utils.NormalizeStage(string(w.Stage))
	if !ok {
		return models.Match{}, false
	}

	return models.Match{
		ID:              id,
		Stage:           stage,
		Status:          utils.NormalizeStatus(string(w.Status)),
		Time:            utils.NormalizeSpaces(string(w.Time)),
		Alliance1:       utils.NormalizeSpaces(string(w.Alliance1)),
		Alliance2:       utils.NormalizeSpaces(string(w.Alliance2)),
		Score1:          string(w.Score1),
		Score2:          string(w.Score2),
		BlackTeam1Score: string(w.BlackTeam1Score),
		BlackTeam2Score: string(w.BlackTeam2Score),
		WhiteTeam1Score: string(w.WhiteTeam1Score),
		WhiteTeam2Score: string(w.WhiteTeam2Score),
		Winner:          utils.NormalizeWinner(string(w.Winner)),
		UpdatedAt:       string(w.UpdatedAt),
	}, true
}
