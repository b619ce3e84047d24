package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/eventpix/backend/archive"
	"github.com/eventpix/backend/config"
	"github.com/eventpix/backend/database"
	"github.com/eventpix/backend/handlers"
	"github.com/eventpix/backend/logging"
	"github.com/eventpix/backend/media"
	"github.com/eventpix/backend/repository"
	"github.com/eventpix/backend/services"
	"github.com/eventpix/backend/storage"
	"github.com/eventpix/backend/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// a .env file is optional; real deployments use environment variables
	}

	logger, err := logging.NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.Init(cfg.DatabasePath)
	if err != nil {
		zap.L().Fatal("failed to initialize database", zap.Error(err))
	}

	eventRepo := repository.NewEventRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	ctx := context.Background()

	var store storage.Store
	switch cfg.StorageKind {
	case config.StorageS3:
		store, err = storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			zap.L().Fatal("failed to initialize object storage", zap.Error(err))
		}
	default:
		store, err = storage.NewLocalStore(cfg.PublicDir)
		if err != nil {
			zap.L().Fatal("failed to initialize local storage", zap.Error(err))
		}
	}
	zap.L().Info("storage backend selected", zap.String("kind", cfg.StorageKind.String()))

	var archiver services.Archiver = services.NopArchiver{}
	if cfg.Drive.Enabled() {
		driveArchiver, err := archive.NewDriveArchiver(ctx, cfg.Drive, photoRepo)
		if err != nil {
			zap.L().Warn("archival mirror disabled: drive client failed", zap.Error(err))
		} else {
			archiver = driveArchiver
		}
	} else {
		zap.L().Info("archival mirror disabled: no drive credentials")
	}

	assets := media.NewAssetLoader(cfg.PublicDir)
	ingestSvc := services.NewIngestService(eventRepo, photoRepo, settingsRepo, store, assets, archiver)
	reprocessSvc := services.NewReprocessService(eventRepo, photoRepo, settingsRepo, store, assets)
	photoSvc := services.NewPhotoService(photoRepo, store, archiver)

	watcher := workers.NewIntakeWatcher(cfg.IntakeRoot, cfg.ProcessedRoot, eventRepo, ingestSvc)
	if err := watcher.Start(); err != nil {
		zap.L().Fatal("failed to start intake watcher", zap.Error(err))
	}
	defer watcher.Stop()

	if cfg.FTPEnabled {
		ftpSrv, err := workers.NewFTPServer(cfg.IntakeRoot, cfg.FTPPort)
		if err != nil {
			zap.L().Fatal("failed to build ftp server", zap.Error(err))
		}
		go func() {
			zap.L().Info("ftp front door listening", zap.Int("port", cfg.FTPPort))
			if err := ftpSrv.ListenAndServe(); err != nil {
				zap.L().Error("ftp server stopped", zap.Error(err))
			}
		}()
		defer ftpSrv.Shutdown()
	}

	photoHandler := handlers.NewPhotoHandler(ingestSvc, photoSvc)
	reprocessHandler := handlers.NewReprocessHandler(reprocessSvc)
	statsHandler := handlers.NewStatsHandler(db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/photos/upload", photoHandler.Upload)
		r.Get("/photos/{photoID}", photoHandler.Get)
		r.Delete("/photos/{photoID}", photoHandler.Delete)
		r.Post("/photos/{photoID}/reprocess", reprocessHandler.ReprocessPhoto)
		r.Post("/events/{eventID}/reprocess", reprocessHandler.ReprocessEvent)
		r.Get("/events/{eventID}/reprocess-targets", reprocessHandler.ListTargets)
		r.Get("/stats/storage", statsHandler.StorageStats)
	})

	// serve stored variants directly when running on the local backend
	if cfg.StorageKind == config.StorageLocal {
		fileServer := http.FileServer(http.Dir(cfg.PublicDir))
		r.Handle("/originals/*", fileServer)
		r.Handle("/previews/*", fileServer)
		r.Handle("/thumbnails/*", fileServer)
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		zap.L().Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	_ = srv.Shutdown(context.Background())
}
