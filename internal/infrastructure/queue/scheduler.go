package queue

import (
	"encoding/json"
	"time"

	"pvadb-backend/internal/config"
	"pvadb-backend/internal/shared"
	"pvadb-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type Scheduler struct {
	scheduler  *asynq.Scheduler
	moderation config.ModerationConfig
}

func NewScheduler(redisAddress string, moderation config.ModerationConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:  scheduler,
		moderation: moderation,
	}
}

// RegisterJobs registers all scheduled jobs
func (s *Scheduler) RegisterJobs() error {
	return s.registerModerationDigestJob()
}

// Moderation digest: summary of the pending queue mailed to the admin inbox.
// Default schedule is daily at 7 AM so the queue gets looked at every morning.
func (s *Scheduler) registerModerationDigestJob() error {
	if s.moderation.DigestRecipient == "" {
		logger.Info("Moderation digest disabled (no recipient configured)", map[string]interface{}{})
		return nil
	}

	payload, err := json.Marshal(shared.ModerationDigestPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSendModerationDigest, payload)

	_, err = s.scheduler.Register(
		s.moderation.DigestSchedule,
		task,
		asynq.Queue(shared.QueueModeration),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ModerationDigest job", err)
		return err
	}

	logger.Info("Registered ModerationDigest job", map[string]interface{}{
		"schedule": s.moderation.DigestSchedule,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
