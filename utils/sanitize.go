package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Dosada05/tournament-dashboard/models"
)

// Значения ошибок, которые таблица пишет в ячейку вместо числа.
var sheetErrorValues = map[string]struct{}{
	"#NUM!":   {},
	"#VALUE!": {},
	"#REF!":   {},
	"#DIV/0!": {},
}

// SanitizeScore возвращает число для отображения и подсчёта.
// Пустые, ошибочные и нечисловые значения дают 0.
func SanitizeScore(raw string) int {
	n, ok := parseScore(raw)
	if !ok {
		return 0
	}
	return n
}

// SanitizeEditScore используется для формы редактирования: вместо 0
// для пустых и ошибочных значений возвращается признак "не задано".
func SanitizeEditScore(raw string) (int, bool) {
	return parseScore(raw)
}

func parseScore(raw string) (int, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, nbsp, " "))
	if s == "" {
		return 0, false
	}
	if _, bad := sheetErrorValues[strings.ToUpper(s)]; bad {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	switch {
	case err == nil:
		if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
			return 0, false
		}
		return int(math.Trunc(f)), true
	case errors.Is(err, strconv.ErrRange):
		// "1e400" - число, но за пределами float64
		return 0, false
	}

	var b strings.Builder
	for i, r := range s {
		if r == '-' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return n, true
}

// NormalizeStatus: неизвестный или пустой статус считается TBD.
func NormalizeStatus(raw string) models.MatchStatus {
	switch NormalizeText(raw) {
	case "scheduled":
		return models.StatusScheduled
	case "live":
		return models.StatusLive
	case "completed":
		return models.StatusCompleted
	default:
		return models.StatusTBD
	}
}

func NormalizeWinner(raw string) models.Side {
	switch NormalizeText(raw) {
	case "team black":
		return models.SideBlack
	case "team white":
		return models.SideWhite
	case "draw":
		return models.SideDraw
	default:
		return models.SideNone
	}
}

// NormalizeStage ищет раунд без учёта регистра и лишних пробелов.
func NormalizeStage(raw string) (models.Stage, bool) {
	key := NormalizeText(raw)
	if key == "" {
		return "", false
	}
	for _, stage := range models.Stages {
		if NormalizeText(string(stage)) == key {
			return stage, true
		}
	}
	return "", false
}
