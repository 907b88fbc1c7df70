package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	"poliza-service/internal/auth"
	"poliza-service/internal/azure"
	"poliza-service/internal/config"
	"poliza-service/internal/database/minio"
	"poliza-service/internal/database/postgres"
	"poliza-service/internal/database/redis"
	"poliza-service/internal/event"
	"poliza-service/internal/handlers"
	"poliza-service/internal/repository"
	"poliza-service/internal/services"
	"poliza-service/internal/velneo"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/var", "log", "poliza_service")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	slog.SetDefault(slog.New(slog.NewTextHandler(file, nil)))

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	redisClient, err := redis.Connect(cfg.RedisCfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	tokenSource := func() string { return cfg.APIToken }
	velneoClient := velneo.NewClient(cfg.VelneoCfg, tokenSource)
	azureClient := azure.NewClient(cfg.AzureCfg, tokenSource)
	authClient := auth.NewClient(cfg.AuthCfg)

	sessionRepo := repository.NewSessionRepository(redisClient, cfg.SessionTTL)

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	polizaRepo := repository.NewPolizaRepository(db)
	if err != nil {
		log.Printf("error connecting to database: %s", err)
		// The repository rejects writes while its handle is nil; hand it the
		// live connection once the retry loop lands one.
		go func() {
			postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
			polizaRepo.SetDB(db)
			if err := polizaRepo.EnsureSchema(); err != nil {
				log.Printf("error ensuring history schema: %s", err)
			}
		}()
	} else if err := polizaRepo.EnsureSchema(); err != nil {
		log.Printf("error ensuring history schema: %s", err)
	}

	// Document archive and notifications are best-effort; the wizard keeps
	// working without them.
	var archive services.DocumentArchive
	if minioClient, err := minio.NewMinioClient(cfg.MinioCfg); err != nil {
		log.Printf("MinIO unavailable, uploads will not be archived: %s", err)
	} else {
		if err := minioClient.EnsureBuckets(context.Background()); err != nil {
			log.Printf("error ensuring MinIO buckets: %s", err)
		}
		archive = minioClient
	}

	var notifier services.Notifier
	if rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg); err != nil {
		log.Printf("RabbitMQ unavailable, creation events will not be published: %s", err)
	} else {
		defer rabbitConn.Close()
		publisher, err := event.NewNotificationPublisher(rabbitConn)
		if err != nil {
			log.Printf("error preparing notification publisher: %s", err)
		} else {
			notifier = publisher
		}
	}

	wizardService := services.NewWizardService(
		sessionRepo,
		velneoClient,
		azureClient,
		services.NewMasterDataService(velneoClient),
		services.NewPDFService(),
		archive,
		polizaRepo,
		notifier,
	)

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // scanned policy PDFs
	})

	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Poliza service is healthy")
	})

	authMiddleware := handlers.AuthMiddleware(authClient)
	handlers.NewWizardHandler(wizardService).Register(app, authMiddleware)
	handlers.NewHistoryHandler(polizaRepo).Register(app, authMiddleware)

	slog.Info("Starting poliza service", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
