package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-dashboard/gateway"
	"github.com/Dosada05/tournament-dashboard/models"
)

type AdminService interface {
	Actions() []models.AdminAction
	Run(ctx context.Context, action string) (*gateway.Result, error)
}

type adminService struct {
	invoker gateway.AdminInvoker
	// после генерации сетки матчи появляются в таблице, кэш стоит обновить
	onSuccess func()
	logger    *slog.Logger
}

func NewAdminService(invoker gateway.AdminInvoker, onSuccess func(), logger *slog.Logger) AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &adminService{
		invoker:   invoker,
		onSuccess: onSuccess,
		logger:    logger,
	}
}

func (s *adminService) Actions() []models.AdminAction {
	out := make([]models.AdminAction, len(models.AdminActions))
	copy(out, models.AdminActions)
	return out
}

func (s *adminService) Run(ctx context.Context, action string) (*gateway.Result, error) {
	a := models.AdminAction(action)
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAdminAction, action)
	}

	s.logger.Info("running admin action", slog.String("action", action))
	res, err := s.invoker.Invoke(ctx, a)
	if err != nil {
		return nil, err
	}

	if s.onSuccess != nil {
		s.onSuccess()
	}
	return res, nil
}
