package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"pvadb-backend/internal/infrastructure/email"
	"pvadb-backend/internal/shared"
)

// ModerationEmailHandler delivers the approve/reject outcome email to the
// submitter.
type ModerationEmailHandler struct {
	emailService email.EmailService
}

func NewModerationEmailHandler(emailService email.EmailService) *ModerationEmailHandler {
	return &ModerationEmailHandler{
		emailService: emailService,
	}
}

func (h *ModerationEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ModerationOutcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal moderation outcome payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("product_id", payload.ProductID).
		Bool("approved", payload.Approved).
		Msg("Sending moderation outcome email")

	err := h.emailService.SendModerationOutcomeEmail(ctx, email.ModerationOutcomeData{
		Email:       payload.Email,
		ProductName: payload.ProductName,
		Approved:    payload.Approved,
		Reason:      payload.Reason,
	})
	if err != nil {
		// Returning the error lets asynq retry with backoff
		return fmt.Errorf("send outcome email: %w", err)
	}

	return nil
}
