package main

import (
	"github.com/hibiken/asynq"

	productJob "pvadb-backend/internal/domains/product/job"
	"pvadb-backend/internal/infrastructure/email"
	"pvadb-backend/internal/shared"
	"pvadb-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	moderationOutcome *productJob.ModerationEmailHandler
	moderationDigest  *productJob.DigestHandler
	processImage      *productJob.ProcessImageHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	cfg := c.Config
	emailSvc := email.NewDevEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	return &HandlerRegistry{
		moderationOutcome: productJob.NewModerationEmailHandler(emailSvc),
		moderationDigest:  productJob.NewDigestHandler(c.ProductRepo, emailSvc, cfg.Moderation.DigestRecipient),
		processImage:      productJob.NewProcessImageHandler(c.MinIOStorage, c.ImageProcessor),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendModerationOutcome, h.moderationOutcome.ProcessTask)
	mux.HandleFunc(shared.TypeSendModerationDigest, h.moderationDigest.ProcessTask)
	mux.HandleFunc(shared.TypeProcessProductImage, h.processImage.ProcessTask)
}
