package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-dashboard/config"
	"github.com/Dosada05/tournament-dashboard/gateway"
	"github.com/Dosada05/tournament-dashboard/handlers"
	"github.com/Dosada05/tournament-dashboard/poller"
	"github.com/Dosada05/tournament-dashboard/routes"
	"github.com/Dosada05/tournament-dashboard/services"
	"github.com/Dosada05/tournament-dashboard/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Duration("poll_interval", cfg.PollInterval),
		slog.Bool("publishing", cfg.PublishingEnabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Клиент таблицы
	gw, err := gateway.NewClient(gateway.Config{
		BaseURL: cfg.GatewayURL,
		Timeout: cfg.GatewayTimeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize gateway client: %w", err)
	}

	// Ленты: расписание и таблицы держат отдельные кэши
	scheduleFeed, err := poller.New(poller.Config{
		Name:     "schedule",
		Source:   poller.StageSource(gw, ""),
		Interval: cfg.PollInterval,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create schedule poller: %w", err)
	}
	leaderboardFeed, err := poller.New(poller.Config{
		Name:     "leaderboard",
		Source:   poller.StageSource(gw, ""),
		Interval: cfg.PollInterval,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create leaderboard poller: %w", err)
	}

	// Загрузчик в Cloudflare R2, только если заданы ключи
	var uploader storage.FileUploader
	if cfg.PublishingEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
			Logger:          logger,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	// Инициализация сервисов
	dashboardService := services.NewDashboardService(scheduleFeed, leaderboardFeed)
	refereeService := services.NewRefereeService(gw, dashboardService, logger)
	adminService := services.NewAdminService(gw, dashboardService.Refresh, logger)
	publishService := services.NewPublishService(dashboardService, uploader, cfg.TournamentName, nil, logger)
	logger.Info("services initialized")

	// Настройка маршрутизатора
	router := routes.SetupRoutes(routes.Handlers{
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Referee:   handlers.NewRefereeHandler(refereeService),
		Admin:     handlers.NewAdminHandler(adminService, publishService),
	}, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// Запуск лент; при выходе Stop дожидается завершения циклов
	for _, feed := range []*poller.Poller{scheduleFeed, leaderboardFeed} {
		if err := feed.Start(ctx); err != nil {
			return fmt.Errorf("failed to start poller: %w", err)
		}
		defer feed.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)

	if uploader != nil {
		if err := publishService.Start(gctx, cfg.PublishInterval); err != nil {
			return fmt.Errorf("failed to start publish scheduler: %w", err)
		}
		defer func() {
			if err := publishService.Shutdown(); err != nil {
				logger.Error("publish scheduler shutdown failed", slog.Any("error", err))
			}
		}()
	}

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Ожидание сигнала завершения
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}
