package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Dosada05/tournament-dashboard/gateway"
	"github.com/Dosada05/tournament-dashboard/leaderboard"
	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/utils"
)

const (
	messageUpdateDone = "Update done"
	announceDraw      = "Match Drawn"
	announceWinner    = "Winner: %s"
)

// RefereeSubmission - то, что судья отправляет из формы.
type RefereeSubmission struct {
	Pin     string
	MatchID string
	Status  string
	Scores  models.ScoreSet
}

type RefereeService interface {
	// OpenMatches читает раунд напрямую из таблицы, минуя кэш поллера.
	OpenMatches(ctx context.Context, stage string) ([]models.RefereeForm, error)
	Submit(ctx context.Context, in RefereeSubmission) (*models.MatchResult, error)
}

type refereeService struct {
	gateway gateway.MatchGateway
	finder  MatchFinder
	logger  *slog.Logger
}

func NewRefereeService(gw gateway.MatchGateway, finder MatchFinder, logger *slog.Logger) RefereeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &refereeService{
		gateway: gw,
		finder:  finder,
		logger:  logger,
	}
}

func (s *refereeService) OpenMatches(ctx context.Context, stage string) ([]models.RefereeForm, error) {
	parsed, ok := utils.NormalizeStage(stage)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, strings.TrimSpace(stage))
	}

	matches, err := s.gateway.ListMatches(ctx, parsed)
	if err != nil {
		return nil, err
	}

	open := leaderboard.Open(matches)
	slices.SortStableFunc(open, func(a, b models.Match) int {
		return utils.CompareNatural(a.ID, b.ID)
	})

	forms := make([]models.RefereeForm, 0, len(open))
	for _, m := range open {
		forms = append(forms, prefillForm(m))
	}
	return forms, nil
}

func prefillForm(m models.Match) models.RefereeForm {
	status := m.Status
	if status == models.StatusTBD {
		status = models.StatusScheduled
	}

	b1, b2 := utils.SplitAllianceLabel(m.Alliance1, utils.TeamDefaults)
	w1, w2 := utils.SplitAllianceLabel(m.Alliance2, utils.TeamDefaults)

	return models.RefereeForm{
		MatchID:      m.ID,
		MatchName:    leaderboard.MatchName(m.ID),
		Stage:        m.Stage,
		Status:       status,
		StatusLabel:  status.Label(),
		BlackPlayers: [2]string{b1, b2},
		WhitePlayers: [2]string{w1, w2},
		Scores: models.ScoreSet{
			Score1:          editScore(m.Score1),
			Score2:          editScore(m.Score2),
			BlackTeam1Score: editScore(m.BlackTeam1Score),
			BlackTeam2Score: editScore(m.BlackTeam2Score),
			WhiteTeam1Score: editScore(m.WhiteTeam1Score),
			WhiteTeam2Score: editScore(m.WhiteTeam2Score),
		},
	}
}

func editScore(raw string) *int {
	n, ok := utils.SanitizeEditScore(raw)
	if !ok {
		return nil
	}
	return &n
}

func (s *refereeService) Submit(ctx context.Context, in RefereeSubmission) (*models.MatchResult, error) {
	pin := strings.TrimSpace(in.Pin)
	if pin == "" {
		return nil, ErrPinRequired
	}
	matchID := strings.TrimSpace(in.MatchID)
	if matchID == "" {
		return nil, ErrMatchIDRequired
	}
	status := utils.NormalizeStatus(in.Status)
	if status == models.StatusTBD {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidStatus, in.Status)
	}

	update := models.MatchUpdate{
		Pin:     pin,
		MatchID: matchID,
		Status:  status,
	}
	// Очки уходят в таблицу только для завершённого матча.
	if status == models.StatusCompleted {
		update.Scores = withAllianceTotals(in.Scores)
	}

	res, err := s.gateway.UpdateMatch(ctx, update)
	if err != nil {
		return nil, err
	}

	message := messageUpdateDone
	if res != nil && res.Message != "" {
		message = res.Message
	}
	result := &models.MatchResult{
		MatchID: matchID,
		Message: message,
		Status:  status.Label(),
	}
	if status == models.StatusCompleted {
		s.announce(result, update.Scores)
	}

	s.logger.Info("referee update submitted",
		slog.String("match_id", matchID),
		slog.String("status", string(status)),
		slog.String("winner", string(result.Winner)),
	)
	return result, nil
}

// announce считает победителя по отправленным итогам, не перечитывая таблицу.
func (s *refereeService) announce(result *models.MatchResult, scores models.ScoreSet) {
	tb, tw := valueOrZero(scores.Score1), valueOrZero(scores.Score2)

	switch {
	case tb == tw:
		result.Winner = models.SideDraw
		result.Announcement = announceDraw
	case tb > tw:
		result.Winner = models.SideBlack
		result.Announcement = fmt.Sprintf(announceWinner, models.SideBlack.Label())
	default:
		result.Winner = models.SideWhite
		result.Announcement = fmt.Sprintf(announceWinner, models.SideWhite.Label())
	}

	if s.finder == nil {
		return
	}
	m, ok := s.finder.FindMatch(result.MatchID)
	if !ok {
		return
	}
	switch result.Winner {
	case models.SideBlack:
		result.WinnerAlliance = m.Alliance1
	case models.SideWhite:
		result.WinnerAlliance = m.Alliance2
	default:
		result.WinnerAlliance = models.SideDraw.Label()
	}
}

// withAllianceTotals дописывает итог альянса как сумму очков двух игроков,
// если итог не задан, а хотя бы одно очко игрока есть.
func withAllianceTotals(in models.ScoreSet) models.ScoreSet {
	out := in
	if out.Score1 == nil && (in.BlackTeam1Score != nil || in.BlackTeam2Score != nil) {
		sum := valueOrZero(in.BlackTeam1Score) + valueOrZero(in.BlackTeam2Score)
		out.Score1 = &sum
	}
	if out.Score2 == nil && (in.WhiteTeam1Score != nil || in.WhiteTeam2Score != nil) {
		sum := valueOrZero(in.WhiteTeam1Score) + valueOrZero(in.WhiteTeam2Score)
		out.Score2 = &sum
	}
	return out
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
