package main

import (
	"context"
	"log"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/config"
	"github.com/brandkit/asset-pipeline-go/internal/db"
	"github.com/brandkit/asset-pipeline-go/internal/port"
	"github.com/brandkit/asset-pipeline-go/internal/repository/mariadb"
	"github.com/brandkit/asset-pipeline-go/internal/task"
	pipelineSvc "github.com/brandkit/asset-pipeline-go/internal/usecase/pipeline"
)

// pendingAfter is how old an unstarted asset must be before the sweeper
// redispatches it; young ones are presumed to have a task in flight already.
const pendingAfter = 1 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(cfg)
	repo := mariadb.NewAssetRepository(database.DB)

	sweeper := pipelineSvc.NewBacklogSweeper(repo, dispatcher, cfg.StuckThumbnailAfter, pendingAfter)
	if err := sweeper.SweepBacklog(context.Background()); err != nil {
		log.Fatalf("❌  Backlog sweep failed: %v", err)
	}
	log.Println("✅  Backlog sweep completed")
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	dbCfg := db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	database, err := db.NewFromConfig(dbCfg)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
