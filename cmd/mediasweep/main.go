package main

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/database"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/repository"
	"context"
	"flag"
	log "log/slog"
)

// 独立运行的孤儿媒体清扫工具。默认只预览，--exec 执行删除。
func main() {
	execute := flag.Bool("exec", false, "删除无主对象，缺省仅预览")
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	logger.InitLogger()

	db, err := database.NewGormDB(&config.Cfg.DB)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}
	defer database.Close(db)

	if err = minio.Init(); err != nil {
		log.Error("Fatal error: failed to initialize MinIO", "err", err)
		panic(err)
	}

	sweeper := job.NewMediaSweeper(repository.NewMediaRefRepo(db))
	result, err := sweeper.Sweep(context.Background(), *execute)
	if err != nil {
		log.Error("media sweep failed", "err", err)
		panic(err)
	}

	log.Info("media sweep done",
		"scanned", result.Scanned,
		"orphans", len(result.Orphans),
		"deleted", result.Deleted,
		"executed", *execute,
	)
}
