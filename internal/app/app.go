package app

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"wastetrack/internal/auth"
	"wastetrack/internal/config"
	"wastetrack/internal/detect"
	"wastetrack/internal/events"
	"wastetrack/internal/hub"
	"wastetrack/internal/logger"
	"wastetrack/internal/repository/sqlite"
	"wastetrack/internal/routes"
)

type App struct {
	config    *config.Config
	logger    *logger.Logger
	db        *sqlite.DB
	hub       *hub.Hub
	publisher *events.Publisher
	router    http.Handler
}

func New() (*App, error) {
	// Missing .env is fine, the config falls back to defaults.
	godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	for _, dir := range []string{cfg.UploadDirectory, cfg.ProcessedDirectory} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	users := sqlite.NewUserRepository(db)
	detections := sqlite.NewDetectionRepository(db)

	normalizer := detect.NewNormalizer(log)
	var processor *detect.Processor
	var video *detect.VideoProcessor

	switch cfg.OracleMode {
	case "net":
		oracle, err := detect.NewNetOracle(cfg.ModelPath, cfg.ConfigPath, cfg.DetectionThreshold, log)
		if err != nil {
			// Detection endpoints answer 503 until a model is available.
			log.Warning("Detection model unavailable, detection endpoints disabled: %v", err)
		} else {
			processor = detect.NewProcessor(oracle, normalizer, log)
			video = detect.NewVideoProcessor(oracle, normalizer, log)
		}
	default:
		oracle := detect.NewStubOracle(time.Now().UnixNano())
		processor = detect.NewProcessor(oracle, normalizer, log)
		video = detect.NewVideoProcessor(oracle, normalizer, log)
	}

	viewers := hub.New(log)
	publisher := events.NewPublisher(cfg.KafkaBroker, cfg.KafkaTopic, log)
	sessions := auth.NewSessionStore()

	router := routes.Setup(routes.Deps{
		Config:     cfg,
		Logger:     log,
		Sessions:   sessions,
		Users:      users,
		Detections: detections,
		Processor:  processor,
		Video:      video,
		Hub:        viewers,
		Events:     publisher,
	})

	return &App{
		config:    cfg,
		logger:    log,
		db:        db,
		hub:       viewers,
		publisher: publisher,
		router:    router,
	}, nil
}

func (a *App) Run() error {
	go a.hub.Run()

	fmt.Printf("Trash Detection Server\n")
	fmt.Printf("URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("Database: %s\n", a.config.DatabasePath)
	fmt.Printf("Uploads: %s\n", a.config.UploadDirectory)
	fmt.Printf("Oracle mode: %s\n", a.config.OracleMode)

	a.logger.Info("Server listening on port %d", a.config.Port)
	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), a.router)
}
