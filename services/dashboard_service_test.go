package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-dashboard/gateway"
	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/poller"
)

func TestDashboardUsesSeparateFeeds(t *testing.T) {
	schedule := readyFeed(
		models.Match{ID: "Q2", Stage: models.StageQualifiers, Status: models.StatusScheduled},
		models.Match{ID: "Q1", Stage: models.StageQualifiers, Status: models.StatusScheduled},
	)
	board := readyFeed(
		models.Match{ID: "Q1", Stage: models.StageQualifiers, Status: models.StatusCompleted, Alliance1: "A", Alliance2: "B", Score1: "3", Score2: "1"},
	)
	board.snapshot.State = poller.StateError
	board.snapshot.Error = "Failed to fetch matches"

	svc := NewDashboardService(schedule, board)

	matches, status, err := svc.Schedule("QUALIFIERS")
	require.NoError(t, err)
	assert.Equal(t, poller.StateReady, status.State)
	require.Len(t, matches, 2)
	assert.Equal(t, "Q1", matches[0].ID)

	upcoming, _ := svc.Upcoming()
	assert.Len(t, upcoming, 2)

	table, boardStatus := svc.TeamStandings()
	assert.Equal(t, poller.StateError, boardStatus.State)
	assert.Equal(t, "Failed to fetch matches", boardStatus.Error)
	assert.Equal(t, 1, table.CompletedCount, "stale data is still served on error")

	podium, _ := svc.Podium()
	assert.Equal(t, models.Podium{}, podium)
}

func TestDashboardScheduleInvalidStage(t *testing.T) {
	svc := NewDashboardService(readyFeed(), readyFeed())

	_, _, err := svc.Schedule("")
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestDashboardRefreshReloadsBothFeeds(t *testing.T) {
	schedule, board := readyFeed(), readyFeed()
	svc := NewDashboardService(schedule, board)

	svc.Refresh()

	assert.Equal(t, 1, schedule.reloads)
	assert.Equal(t, 1, board.reloads)
}

func TestDashboardFindMatch(t *testing.T) {
	svc := NewDashboardService(
		readyFeed(models.Match{ID: "Q9", Alliance1: "from schedule"}),
		readyFeed(models.Match{ID: "QF1", Alliance1: "from board"}),
	)

	m, ok := svc.FindMatch("qf1")
	require.True(t, ok)
	assert.Equal(t, "from board", m.Alliance1)

	m, ok = svc.FindMatch("Q9")
	require.True(t, ok)
	assert.Equal(t, "from schedule", m.Alliance1)

	_, ok = svc.FindMatch("F")
	assert.False(t, ok)
}

func TestAdminServiceRun(t *testing.T) {
	gw := &fakeGateway{}
	refreshed := 0
	svc := NewAdminService(gw, func() { refreshed++ }, discardLogger())

	res, err := svc.Run(context.Background(), "generateQuarterfinals")
	require.NoError(t, err)
	assert.Equal(t, "Success!", res.Message)
	assert.Equal(t, []models.AdminAction{models.ActionGenerateQuarterfinals}, gw.actions)
	assert.Equal(t, 1, refreshed)

	_, err = svc.Run(context.Background(), "deleteEverything")
	assert.ErrorIs(t, err, ErrUnknownAdminAction)
	assert.Len(t, gw.actions, 1)

	gw.invokeErr = &gateway.InvokeError{Action: models.ActionGenerateFinals, Reason: "Semifinals not complete", Err: gateway.ErrRemoteRejection}
	_, err = svc.Run(context.Background(), "generateFinals")
	assert.ErrorIs(t, err, gateway.ErrRemoteRejection)
	assert.Equal(t, 1, refreshed, "no refresh on failure")

	assert.Equal(t, models.AdminActions, svc.Actions())
}

func TestDashboardFeedStatus(t *testing.T) {
	schedule := readyFeed()
	board := &fakeFeed{snapshot: poller.Snapshot{Status: poller.Status{State: poller.StateLoading, FirstLoad: true}}}
	svc := NewDashboardService(schedule, board)

	scheduleStatus, boardStatus := svc.FeedStatus()
	assert.Equal(t, poller.StateReady, scheduleStatus.State)
	assert.Equal(t, poller.StateLoading, boardStatus.State)
	assert.True(t, boardStatus.FirstLoad)
}
