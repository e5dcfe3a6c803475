package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arizona-prime/community-api/internal/config"
	"github.com/arizona-prime/community-api/internal/database"
	"github.com/arizona-prime/community-api/internal/handler"
	"github.com/arizona-prime/community-api/internal/middleware"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
	"github.com/arizona-prime/community-api/internal/router"
	"github.com/arizona-prime/community-api/internal/service"
	"github.com/arizona-prime/community-api/pkg/storage"
	"github.com/arizona-prime/community-api/pkg/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.Punishment{},
		&models.InactiveRequest{},
		&models.ActivityLog{},
		&models.Application{},
		&models.Leadership{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var fileStore storage.FileStorage
	switch cfg.StorageBackend {
	case config.StorageCloudinary:
		fileStore, err = storage.NewCloudinary(storage.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
	default:
		fileStore, err = storage.NewLocal(cfg.UploadDir, logger)
	}
	if err != nil {
		log.Fatalf("failed to initialize file storage: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	punishmentRepo := repository.NewPunishmentRepository(db)
	inactiveRepo := repository.NewInactiveRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	leadershipRepo := repository.NewLeadershipRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, validate, activityService, cfg.BcryptCost, logger)
	userService := service.NewUserService(userRepo, staffRepo, punishmentRepo, validate, activityService, logger)
	staffService := service.NewStaffService(staffRepo, userRepo, validate, activityService, redisClient, cfg.RosterCacheTTL, logger)
	punishmentService := service.NewPunishmentService(punishmentRepo, staffRepo, validate, activityService, logger)
	inactiveService := service.NewInactiveService(inactiveRepo, staffRepo, validate, activityService, logger)
	applicationService := service.NewApplicationService(applicationRepo, validate, logger)
	leadershipService := service.NewLeadershipService(leadershipRepo, validate, logger)
	avatarService := service.NewAvatarService(fileStore, cfg.MaxUploadMB, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.MaxUploadMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		UserHandler:        handler.NewUserHandler(userService, avatarService, logger),
		StaffHandler:       handler.NewStaffHandler(staffService, logger),
		PunishmentHandler:  handler.NewPunishmentHandler(punishmentService, logger),
		InactiveHandler:    handler.NewInactiveHandler(inactiveService, logger),
		ActivityLogHandler: handler.NewActivityLogHandler(activityService, logger),
		ApplicationHandler: handler.NewApplicationHandler(applicationService, logger),
		LeadershipHandler:  handler.NewLeadershipHandler(leadershipService, avatarService, logger),
		Authenticate:       middleware.Authenticate(tokens, userRepo),
		LoginRateLimit:     middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
