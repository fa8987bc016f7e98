package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/infrastructure/email"
)

// DigestHandler mails the daily pending-queue summary to the moderation
// inbox. Scheduled by the worker's cron entry.
type DigestHandler struct {
	repo         product.Repository
	emailService email.EmailService
	recipient    string
}

func NewDigestHandler(repo product.Repository, emailService email.EmailService, recipient string) *DigestHandler {
	return &DigestHandler{
		repo:         repo,
		emailService: emailService,
		recipient:    recipient,
	}
}

func (h *DigestHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	stats, err := h.repo.PendingStats(ctx)
	if err != nil {
		return fmt.Errorf("read pending stats: %w", err)
	}

	if stats.PendingCount == 0 {
		log.Info().Msg("Moderation queue empty, skipping digest")
		return nil
	}

	oldestAge := "unknown"
	if stats.OldestAt != nil {
		oldestAge = formatAge(time.Since(*stats.OldestAt))
	}

	log.Info().
		Int("pending_count", stats.PendingCount).
		Str("oldest_age", oldestAge).
		Msg("Sending moderation digest")

	err = h.emailService.SendModerationDigestEmail(ctx, email.ModerationDigestData{
		Email:        h.recipient,
		PendingCount: stats.PendingCount,
		OldestAge:    oldestAge,
	})
	if err != nil {
		return fmt.Errorf("send digest email: %w", err)
	}

	return nil
}

func formatAge(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%d day(s)", int(d.Hours()/24))
	case d >= time.Hour:
		return fmt.Sprintf("%d hour(s)", int(d.Hours()))
	default:
		return fmt.Sprintf("%d minute(s)", int(d.Minutes()))
	}
}
