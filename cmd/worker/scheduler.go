package main

import (
	"os"

	"pvadb-backend/internal/infrastructure/queue"
	"pvadb-backend/pkg/container"
	"pvadb-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler so shutdown can be driven from main
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates and configures the cron scheduler
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(c.Config.Redis.Host, c.Config.Moderation)

	if err := scheduler.RegisterJobs(); err != nil {
		logger.Error("Failed to register scheduled jobs", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("Scheduler starting", map[string]interface{}{})
		if err := scheduler.Start(); err != nil {
			logger.Error("Scheduler failed", err)
			os.Exit(1)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	s.Scheduler.Shutdown()
}
