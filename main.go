package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/sirupsen/logrus"

	"admissions_backend/internals/configs"
	database "admissions_backend/internals/databases"
	authRepo "admissions_backend/internals/features/admins/auth/repository"
	scheduler "admissions_backend/internals/features/admins/auth/scheduler"
	authService "admissions_backend/internals/features/admins/auth/service"
	appRepo "admissions_backend/internals/features/applications/repository"
	appService "admissions_backend/internals/features/applications/service"
	helper "admissions_backend/internals/helpers"
	"admissions_backend/internals/helpers/metrics"
	"admissions_backend/internals/helpers/storage"
	middlewares "admissions_backend/internals/middlewares"
	accessLog "admissions_backend/internals/middlewares/logger"
	routes "admissions_backend/internals/route"
	"admissions_backend/internals/seeds"
)

func main() {
	cfg := configs.LoadEnv(logrus.StandardLogger())
	log := configs.NewLogger(cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	// 🔌 DB connect + pool + schema
	db, err := database.ConnectDB(cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	if err := database.TunePool(db); err != nil {
		log.WithError(err).Warn("could not tune pool")
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seeds.RunAllSeeds(bootCtx, db, cfg, log); err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	cancelBoot()

	// 📦 Stores: uploaded attachments and generated letters live apart
	documents, err := storage.NewFromConfig(cfg, cfg.UploadDir, log)
	if err != nil {
		log.WithError(err).Fatal("document store unavailable")
	}
	letters, err := storage.NewFromConfig(cfg, cfg.LetterDir, log)
	if err != nil {
		log.WithError(err).Fatal("letter store unavailable")
	}

	lifecycle := appService.NewLifecycleService(appService.Deps{
		Repo:      appRepo.NewApplicationRepository(db),
		Documents: documents,
		Letters:   letters,
		Renderer: appService.NewPDFLetterRenderer(letters, appService.LetterOptions{
			UniversityName: cfg.UniversityName,
			ReportDays:     cfg.LetterReportDays,
		}),
		Log: log,
	})

	blacklist := authRepo.NewTokenBlacklistRepository(db)
	sessions := authService.NewSessionService(
		authRepo.NewAdminRepository(db), blacklist, cfg.JWTSecret, cfg.SessionTTL, log,
	)

	// ⏱ scheduler after the DB is ready
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(cfg.BlacklistCleanupSpec, blacklist, log)
	if err != nil {
		log.WithError(err).Fatal("invalid TOKEN_BLACKLIST_CLEANUP schedule")
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             cfg.MaxBodyBytes,
		ErrorHandler:          helper.ErrorHandler(log),
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.RequestID())
	app.Use(accessLog.LoggerMiddleware(log))
	app.Use(middlewares.CorsMiddleware(cfg.CORSAllowOrigins))
	app.Use(middlewares.GlobalRateLimiter())
	app.Use(metrics.Middleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	routes.SetupRoutes(app, routes.Deps{
		DB:           db,
		Lifecycle:    lifecycle,
		Sessions:     sessions,
		SecureCookie: cfg.Env == "production",
		Env:          cfg.Env,
		Log:          log,
	})

	go func() {
		log.WithField("port", cfg.Port).Info("listening")
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.WithError(err).Fatal("server error")
		}
	}()

	// graceful shutdown: stop intake, let cron finish, close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-cleanup.Stop().Done()
	database.Close(db)
}
