// Package gateway - клиент удалённого API таблицы (Apps Script), через который
// читаются и меняются матчи турнира.
package gateway

import (
	"context"

	"github.com/Dosada05/tournament-dashboard/models"
)

// Result - успешный ответ операции записи.
type Result struct {
	Message string `json:"message"`
}

type MatchReader interface {
	// ListMatches возвращает матчи раунда. Пустой stage - все матчи.
	ListMatches(ctx context.Context, stage models.Stage) ([]models.Match, error)
}

type MatchWriter interface {
	UpdateMatch(ctx context.Context, update models.MatchUpdate) (*Result, error)
}

// AdminInvoker запускает генерацию сетки на стороне таблицы.
type AdminInvoker interface {
	Invoke(ctx context.Context, action models.AdminAction) (*Result, error)
}

type MatchGateway interface {
	MatchReader
	MatchWriter
	AdminInvoker
}
