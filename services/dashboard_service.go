package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-dashboard/leaderboard"
	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/poller"
	"github.com/Dosada05/tournament-dashboard/utils"
)

// Feed - кэш матчей, который обновляется в фоне (*poller.Poller).
type Feed interface {
	Snapshot() poller.Snapshot
	Status() poller.Status
	Reload()
}

// MatchFinder ищет матч в уже загруженных данных, без похода в таблицу.
type MatchFinder interface {
	FindMatch(matchID string) (models.Match, bool)
}

type DashboardService interface {
	Schedule(stage string) ([]models.Match, poller.Status, error)
	Upcoming() ([]models.Match, poller.Status)
	TeamStandings() (models.TeamTable, poller.Status)
	IndividualStandings() ([]models.PlayerStanding, poller.Status)
	KnockoutRanking() ([]models.KnockoutStanding, poller.Status)
	KnockoutCards() ([]models.KnockoutCard, poller.Status)
	WinnerHistory() ([]models.WinnerRecord, poller.Status)
	Podium() (models.Podium, poller.Status)
	// FeedStatus - состояние обеих лент без копирования матчей.
	FeedStatus() (schedule, leaderboard poller.Status)
	Refresh()
	MatchFinder
}

type dashboardService struct {
	scheduleFeed    Feed
	leaderboardFeed Feed
}

// NewDashboardService: расписание и таблицы читают разные кэши и могут
// видеть хранилище в разные моменты времени.
func NewDashboardService(scheduleFeed, leaderboardFeed Feed) DashboardService {
	return &dashboardService{
		scheduleFeed:    scheduleFeed,
		leaderboardFeed: leaderboardFeed,
	}
}

func (s *dashboardService) Schedule(stage string) ([]models.Match, poller.Status, error) {
	parsed, ok := utils.NormalizeStage(stage)
	if !ok {
		return nil, poller.Status{}, fmt.Errorf("%w: %q", ErrInvalidStage, strings.TrimSpace(stage))
	}
	snap := s.scheduleFeed.Snapshot()
	return leaderboard.StageSchedule(snap.Matches, parsed), snap.Status, nil
}

func (s *dashboardService) Upcoming() ([]models.Match, poller.Status) {
	snap := s.scheduleFeed.Snapshot()
	return leaderboard.Upcoming(snap.Matches), snap.Status
}

func (s *dashboardService) TeamStandings() (models.TeamTable, poller.Status) {
	snap := s.leaderboardFeed.Snapshot()
	return leaderboard.TeamStandings(snap.Matches), snap.Status
}

func (s *dashboardService) IndividualStandings() ([]models.PlayerStanding, poller.Status) {
	snap := s.leaderboardFeed.Snapshot()
	return leaderboard.IndividualStandings(snap.Matches), snap.Status
}

func (s *dashboardService) KnockoutRanking() ([]models.KnockoutStanding, poller.Status) {
	snap := s.leaderboardFeed.Snapshot()
	return leaderboard.KnockoutRanking(snap.Matches), snap.Status
}

func (s *dashboardService) KnockoutCards() ([]models.KnockoutCard, poller.Status) {
	snap := s.leaderboardFeed.Snapshot()
	return leaderboard.KnockoutCards(snap.Matches), snap.Status
}

func (s *dashboardService) WinnerHistory() ([]models.WinnerRecord, poller.Status) {
	snap := s.leaderboardFeed.Snapshot()
	return leaderboard.WinnerHistory(snap.Matches), snap.Status
}

func (s *dashboardService) Podium() (models.Podium, poller.Status) {
	snap := s.leaderboardFeed.Snapshot()
	return leaderboard.ComputePodium(snap.Matches), snap.Status
}

func (s *dashboardService) FeedStatus() (poller.Status, poller.Status) {
	return s.scheduleFeed.Status(), s.leaderboardFeed.Status()
}

func (s *dashboardService) Refresh() {
	s.scheduleFeed.Reload()
	s.leaderboardFeed.Reload()
}

func (s *dashboardService) FindMatch(matchID string) (models.Match, bool) {
	for _, feed := range []Feed{s.leaderboardFeed, s.scheduleFeed} {
		for _, m := range feed.Snapshot().Matches {
			if strings.EqualFold(m.ID, matchID) {
				return m, true
			}
		}
	}
	return models.Match{}, false
}
