package worker

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fixpoint-labs/repair-shop-service/internal/config"
	"github.com/fixpoint-labs/repair-shop-service/internal/service"
)

// StartReminderWorker schedules the stale-ticket sweep. The returned cron is
// already running; callers stop it during shutdown. Returns nil when the
// sweep is disabled.
func StartReminderWorker(cfg config.ReminderConfig, reminders *service.ReminderService, logger *zap.Logger) (*cron.Cron, error) {
	if !cfg.Enabled || reminders == nil {
		return nil, nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.CronSpec, func() {
		queued, err := reminders.SweepStale(context.Background())
		if err != nil {
			logger.Error("stale ticket sweep failed", zap.Error(err))
			return
		}
		logger.Debug("stale ticket sweep ran", zap.Int("reminders", queued))
	})
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	logger.Info("reminder worker scheduled", zap.String("cron", cfg.CronSpec))
	return scheduler, nil
}
