package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hopon-app/hopon/config"
	"github.com/hopon-app/hopon/db"
	"github.com/hopon-app/hopon/handlers"
	"github.com/hopon-app/hopon/realtime"
	"github.com/hopon-app/hopon/repositories"
	api "github.com/hopon-app/hopon/routes"
	"github.com/hopon-app/hopon/services"
	"github.com/hopon-app/hopon/storage"
	"github.com/hopon-app/hopon/views"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	if err := run(cfg, logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище: postgres, если задан DATABASE_URL, иначе память процесса
	var (
		eventRepo       repositories.EventRepository
		participantRepo repositories.ParticipantRepository
	)
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer closeDB(dbConn, logger)
		logger.Info("database connection established")

		if err := db.EnsureSchema(ctx, dbConn); err != nil {
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}

		eventRepo = repositories.NewPostgresEventRepository(dbConn)
		participantRepo = repositories.NewPostgresParticipantRepository(dbConn)
	} else {
		store := repositories.NewMemoryStore()
		eventRepo = store.Events()
		participantRepo = store.Participants()
		logger.Warn("DATABASE_URL is not set, drop-in events are kept in memory")
	}

	// Логотип в R2, если хранилище настроено
	viewOpts := views.Options{}
	if cfg.R2Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}

		urls, err := services.NewAssetService(uploader, views.StaticFS(), logger).Publish(ctx, views.LogoAsset)
		if err != nil {
			// Без R2 логотип всё равно доступен из бинарника.
			logger.Error("failed to publish static assets, serving embedded logo", slog.Any("error", err))
		} else {
			viewOpts.LogoURL = urls[views.LogoAsset]
		}
	}

	renderer, err := views.NewRenderer(viewOpts)
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}

	wsHub := realtime.NewHub(logger)

	// Инициализация сервисов
	sportService := services.NewSportService()
	eventService := services.NewEventService(eventRepo, participantRepo, wsHub, logger)

	// Инициализация обработчиков HTTP и маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Pages:     handlers.NewPageHandler(sportService, renderer),
		Sports:    handlers.NewSportHandler(sportService),
		Events:    handlers.NewEventHandler(eventService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, nil),
		Static:    views.StaticFS(),
	}, api.Options{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		wsHub.Run(gCtx)
		logger.Info("WebSocket hub stopped")
		return nil
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Ожидание сигнала завершения (или падения одной из горутин)
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			// If shutdown fails, force close.
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

func closeDB(dbConn *sql.DB, logger *slog.Logger) {
	if err := dbConn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.Any("error", err))
	} else {
		logger.Info("database connection closed")
	}
}
