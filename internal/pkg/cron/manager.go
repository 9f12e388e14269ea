package cron

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	mediaSweeper *job.MediaSweeper
}

func NewCronManager(mediaSweeper *job.MediaSweeper) *Manager {
	return &Manager{
		engine:       cron.New(cron.WithSeconds()),
		mediaSweeper: mediaSweeper,
	}
}

// RegisterJobs 注册定时任务，清扫任务可通过配置关闭
func (s *Manager) RegisterJobs() error {
	if config.Cfg != nil && config.Cfg.Sweep.Enable {
		if _, err := s.engine.AddJob("@daily", s.mediaSweeper); err != nil {
			return err
		}
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
