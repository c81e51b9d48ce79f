package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"

	"github.com/brandkit/asset-pipeline-go/internal/cache"
	"github.com/brandkit/asset-pipeline-go/internal/config"
	"github.com/brandkit/asset-pipeline-go/internal/db"
	workerHandler "github.com/brandkit/asset-pipeline-go/internal/handler/worker"
	"github.com/brandkit/asset-pipeline-go/internal/logger"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/repository/mariadb"
	"github.com/brandkit/asset-pipeline-go/internal/storage"
	"github.com/brandkit/asset-pipeline-go/internal/tagger"
	"github.com/brandkit/asset-pipeline-go/internal/task"
	"github.com/brandkit/asset-pipeline-go/internal/thumbnailer"
	pipelineSvc "github.com/brandkit/asset-pipeline-go/internal/usecase/pipeline"
)

func main() {
	ctx := context.Background()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}
	logger.Infof(ctx, "thumbnail sizes configured: %s", strings.Join(cfg.SizeNames(), ", "))

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	assetRepo := mariadb.NewAssetRepository(database.DB)
	brandRepo := mariadb.NewBrandModelRepository(database.DB)
	scoreRepo := mariadb.NewComplianceScoreRepository(database.DB)
	incidents := mariadb.NewIncidentRepository(database.DB)

	renderer := thumbnailer.NewRenderer(thumbnailer.NewWebPEncoder(), thumbnailer.NewPDFCoverExtractor())
	palette := thumbnailer.NewPaletteExtractor()
	labeller := tagger.NewHTTPTagger(cfg.TaggerEndpoint, cfg.TaggerAPIKey)
	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)

	generateSvc := pipelineSvc.NewThumbnailGenerator(assetRepo, renderer, strg, dispatcher, ca, cfg.StuckThumbnailAfter)
	extractSvc := pipelineSvc.NewMetadataExtractor(assetRepo, palette, strg, dispatcher, incidents, ca, pipelineSvc.RetryPolicy{
		MaxAttempts: cfg.GateRetryMaxAttempts,
		Delay:       cfg.GateRetryDelay,
	})
	tagSvc := pipelineSvc.NewAssetTagger(assetRepo, labeller, strg, ca)
	scoreSvc := pipelineSvc.NewComplianceScorer(assetRepo, brandRepo, scoreRepo, incidents, ca)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeGenerateThumbnails, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseGenerateThumbnailsPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.GenerateThumbnailsHandler(ctx, p, cfg.ThumbnailSizes, generateSvc)
	})
	mux.HandleFunc(task.TypeExtractMetadata, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseExtractMetadataPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ExtractMetadataHandler(ctx, p, extractSvc)
	})
	mux.HandleFunc(task.TypeTagAsset, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseTagAssetPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.TagAssetHandler(ctx, p, tagSvc)
	})
	mux.HandleFunc(task.TypeScoreCompliance, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseScoreCompliancePayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ScoreComplianceHandler(ctx, p, scoreSvc)
	})

	go serveHealth(cfg, database)

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func serveHealth(cfg *config.Settings, database *db.Database) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := database.PingContext(req.Context()); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Infof(context.Background(), "health endpoint listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Warnf(context.Background(), "health endpoint stopped: %v", err)
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
