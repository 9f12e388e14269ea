package job

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
)

// SweepResult 一次清扫的结果
type SweepResult struct {
	Scanned    int
	Referenced int
	Orphans    []string
	Deleted    int
}

// MediaSweeper 扫描对象存储中未被任何记录引用的图片，
// 预览模式只统计，执行模式批量删除。尽力而为，不保证与写入事务一致。
type MediaSweeper struct {
	mediaRefRepo repository.MediaRefRepo
	listKeys     func(ctx context.Context, prefix string) ([]string, error)
	removeKeys   func(ctx context.Context, keys []string) error
}

func NewMediaSweeper(mediaRefRepo repository.MediaRefRepo) *MediaSweeper {
	return &MediaSweeper{
		mediaRefRepo: mediaRefRepo,
		listKeys:     minio.ListKeys,
		removeKeys:   minio.RemoveKeys,
	}
}

// FindOrphans 对比桶内对象与数据库引用，返回无主对象
func (s *MediaSweeper) FindOrphans(ctx context.Context) (*SweepResult, error) {
	prefix := config.Cfg.Server.EnvPrefix() + "/uploads/images/"
	keys, err := s.listKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}

	urls, err := s.mediaRefRepo.ListReferencedURLs(ctx)
	if err != nil {
		return nil, err
	}

	bucket := config.Cfg.MinIO.Bucket
	referenced := make(map[string]bool, len(urls))
	for _, rawURL := range urls {
		if key := util.ExtractObjectKey(rawURL, bucket); key != "" {
			referenced[key] = true
		}
	}

	orphans := make([]string, 0)
	for _, key := range keys {
		if !referenced[key] {
			orphans = append(orphans, key)
		}
	}

	return &SweepResult{
		Scanned:    len(keys),
		Referenced: len(referenced),
		Orphans:    orphans,
	}, nil
}

// Sweep 预览或执行一次清扫
func (s *MediaSweeper) Sweep(ctx context.Context, execute bool) (*SweepResult, error) {
	result, err := s.FindOrphans(ctx)
	if err != nil {
		return nil, err
	}

	if !execute {
		sample := result.Orphans
		if len(sample) > 10 {
			sample = sample[:10]
		}
		log.Info("media sweep preview",
			"scanned", result.Scanned,
			"referenced", result.Referenced,
			"orphans", len(result.Orphans),
			"sample", sample,
		)
		return result, nil
	}

	if len(result.Orphans) > 0 {
		if err = s.removeKeys(ctx, result.Orphans); err != nil {
			return nil, err
		}
		result.Deleted = len(result.Orphans)
	}
	log.Info("media sweep executed",
		"scanned", result.Scanned,
		"orphans", len(result.Orphans),
		"deleted", result.Deleted,
	)
	return result, nil
}

// Run 实现 cron.Job，执行模式由配置决定
func (s *MediaSweeper) Run() {
	ctx := context.Background()
	execute := config.Cfg != nil && config.Cfg.Sweep.Execute
	if _, err := s.Sweep(ctx, execute); err != nil {
		log.Error("media sweep job failed", "err", err)
	}
}
