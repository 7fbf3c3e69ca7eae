package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/app"
	"github.com/Freeeeeet/clinic_bot/internal/clinicapi"
	"github.com/Freeeeeet/clinic_bot/internal/config"
	"github.com/Freeeeeet/clinic_bot/internal/controller"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/repository"
	"github.com/Freeeeeet/clinic_bot/internal/service"
	"github.com/Freeeeeet/clinic_bot/migrations"
)

const noticeSweepInterval = time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting clinic bot",
		zap.String("environment", cfg.Environment),
		zap.String("clinic_api", cfg.ClinicAPIURL),
		zap.String("timezone", cfg.Location.String()),
		zap.Int("dentists", len(cfg.Dentists)))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// База: только привязки чатов к сессиям клиники
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	migrator, err := app.NewMigrator(pool, migrationsFS(cfg.MigrationsPath, logger), logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return err
	}

	sessionRepo := repository.NewChatSessionRepository(pool)
	if counts, err := sessionRepo.CountByRole(ctx); err != nil {
		logger.Warn("Failed to count linked chats", zap.Error(err))
	} else {
		logger.Info("Linked chats",
			zap.Int("staff", counts[model.ChatRoleStaff]),
			zap.Int("patients", counts[model.ChatRolePatient]))
	}

	// API клиники: один HTTP-клиент и лимитер, сессия подставляется на чат
	api, err := clinicapi.New(clinicapi.Config{
		BaseURL:    cfg.ClinicAPIURL,
		CookieName: cfg.SessionCookie,
		Timeout:    cfg.APITimeout,
		RPS:        cfg.APIRPS,
		Location:   cfg.Location,
	}, logger.Named("clinicapi"))
	if err != nil {
		return fmt.Errorf("create clinic api client: %w", err)
	}
	clinic := func(cookie string) service.ClinicAPI {
		return api.WithSession(cookie)
	}
	now := func() time.Time {
		return time.Now().In(cfg.Location)
	}

	sessions := service.NewChatSessionService(sessionRepo, logger)
	calendars := service.NewCalendarService(clinic, cfg.Dentists, now, logger.Named("calendar"))
	odontograms := service.NewOdontogramService(clinic, logger.Named("odontogram"))
	sessions.OnReset(calendars.Reset)
	sessions.OnReset(odontograms.Close)

	b, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram API error", zap.Error(err))
		}),
	)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	notices := service.NewNoticeService(controller.NewMessageDeleter(b), cfg.NoticeTTL, logger.Named("notices"))

	ctrl := controller.NewBotController(b, sessions, calendars, odontograms, notices, logger)
	if err := ctrl.RegisterHandlers(ctx); err != nil {
		// Меню команд необязательно, бот работает и без него
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	scheduler := app.NewScheduler(notices, noticeSweepInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	return ctrl.Start(ctx)
}

// migrationsFS берёт миграции с диска, если каталог есть, иначе встроенные в бинарник
func migrationsFS(path string, logger *zap.Logger) fs.FS {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		logger.Info("Using migrations from disk", zap.String("path", path))
		return os.DirFS(path)
	}
	logger.Info("Using embedded migrations")
	return migrations.FS
}
