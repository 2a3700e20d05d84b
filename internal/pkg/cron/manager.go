package cron

import (
	"Spotlight/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	videoStatsJob *job.VideoStatsJob
	refreshSpec   string
}

func NewCronManager(videoStatsJob *job.VideoStatsJob, refreshSpec string) *Manager {
	return &Manager{
		engine:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		videoStatsJob: videoStatsJob,
		refreshSpec:   refreshSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.refreshSpec, s.videoStatsJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "jobs", len(s.engine.Entries()))
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
