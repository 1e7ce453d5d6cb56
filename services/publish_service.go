package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/poller"
	"github.com/Dosada05/tournament-dashboard/storage"
)

const (
	publishPrefix      = "leaderboards"
	latestObjectName   = "latest.json"
	publishContentType = "application/json"
	publishJobName     = "publish-leaderboard"

	// сколько архивных копий, выложенных этим процессом, держать в бакете
	defaultArchiveRetention = 48
)

// PublishedLeaderboard - JSON-файл, который кладётся в бакет для статичных табло.
type PublishedLeaderboard struct {
	Tournament  string                    `json:"tournament"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Feed        poller.Status             `json:"feed"`
	Team        models.TeamTable          `json:"team"`
	Individual  []models.PlayerStanding   `json:"individual"`
	Knockout    []models.KnockoutStanding `json:"knockout"`
	Podium      models.Podium             `json:"podium"`
}

type PublishResult struct {
	LatestURL  string `json:"latest_url"`
	ArchiveKey string `json:"archive_key"`
	ETag       string `json:"etag,omitempty"`
}

type PublishService interface {
	Publish(ctx context.Context) (*PublishResult, error)
	Start(ctx context.Context, interval time.Duration) error
	Shutdown() error
}

type publishService struct {
	dashboard  DashboardService
	uploader   storage.FileUploader
	tournament string
	prefix     string
	clock      clockwork.Clock
	logger     *slog.Logger
	scheduler  gocron.Scheduler

	keepArchives int
	mu           sync.Mutex
	archives     []string
}

// NewPublishService: uploader может быть nil, тогда публикация выключена.
func NewPublishService(
	dashboard DashboardService,
	uploader storage.FileUploader,
	tournamentName string,
	clock clockwork.Clock,
	logger *slog.Logger,
) PublishService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	tournamentSlug := slug.Make(tournamentName)
	if tournamentSlug == "" {
		tournamentSlug = "tournament"
	}
	return &publishService{
		dashboard:  dashboard,
		uploader:   uploader,
		tournament: tournamentName,
		prefix:     path.Join(publishPrefix, tournamentSlug),
		clock:      clock,
		logger:     logger.With(slog.String("component", "publisher")),

		keepArchives: defaultArchiveRetention,
	}
}

func (s *publishService) Publish(ctx context.Context) (*PublishResult, error) {
	if s.uploader == nil {
		return nil, ErrPublishingDisabled
	}

	doc := s.build()
	body, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrPublishFailed, err)
	}

	archiveKey := path.Join(s.prefix, "archive", uuid.NewString()+".json")
	if _, err := s.uploader.Upload(ctx, archiveKey, publishContentType, bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("%w: archive: %w", ErrPublishFailed, err)
	}

	latestKey := path.Join(s.prefix, latestObjectName)
	uploaded, err := s.uploader.Upload(ctx, latestKey, publishContentType, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: latest: %w", ErrPublishFailed, err)
	}

	s.pruneArchives(ctx, archiveKey)

	s.logger.Info("leaderboard published",
		slog.String("key", uploaded.Key),
		slog.String("archive_key", archiveKey),
		slog.Int("teams", len(doc.Team.Rows)),
	)
	return &PublishResult{
		LatestURL:  uploaded.Location,
		ArchiveKey: archiveKey,
		ETag:       uploaded.ETag,
	}, nil
}

// pruneArchives удаляет самые старые архивные копии сверх лимита.
// Учитываются только копии, выложенные этим процессом. Ошибка удаления
// не ломает публикацию.
func (s *publishService) pruneArchives(ctx context.Context, archiveKey string) {
	s.mu.Lock()
	s.archives = append(s.archives, archiveKey)
	var stale []string
	if extra := len(s.archives) - s.keepArchives; extra > 0 {
		stale = append(stale, s.archives[:extra]...)
		s.archives = append([]string(nil), s.archives[extra:]...)
	}
	s.mu.Unlock()

	for _, key := range stale {
		if err := s.uploader.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete old archive", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func (s *publishService) build() PublishedLeaderboard {
	team, status := s.dashboard.TeamStandings()
	individual, _ := s.dashboard.IndividualStandings()
	knockout, _ := s.dashboard.KnockoutRanking()
	podium, _ := s.dashboard.Podium()

	return PublishedLeaderboard{
		Tournament:  s.tournament,
		GeneratedAt: s.clock.Now().UTC(),
		Feed:        status,
		Team:        team,
		Individual:  individual,
		Knockout:    knockout,
		Podium:      podium,
	}
}

// Start запускает периодическую публикацию. Пока лента ни разу не загрузилась,
// публиковать нечего и запуск пропускается.
func (s *publishService) Start(ctx context.Context, interval time.Duration) error {
	if s.uploader == nil {
		return ErrPublishingDisabled
	}

	sched, err := gocron.NewScheduler(gocron.WithClock(s.clock), gocron.WithLogger(gocron.NewLogger(gocron.LogLevelWarn)))
	if err != nil {
		return fmt.Errorf("failed to create publish scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, st := s.dashboard.FeedStatus(); st.FirstLoad {
				s.logger.Debug("skipping publish, leaderboard not loaded yet")
				return
			}
			if _, err := s.Publish(ctx); err != nil {
				s.logger.Error("scheduled publish failed", slog.Any("error", err))
			}
		}),
		gocron.WithName(publishJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("failed to schedule publish job: %w", err)
	}

	sched.Start()
	s.scheduler = sched
	s.logger.Info("publish scheduler started", slog.Duration("interval", interval))
	return nil
}

func (s *publishService) Shutdown() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}
