package cron

import log "log/slog"

// InitCron enable 为 false 时不启动，多实例部署只需一个实例开启
func InitCron(mgr *Manager, enable bool) error {
	if !enable {
		log.Info("Cron Jobs disabled")
		return nil
	}
	log.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
