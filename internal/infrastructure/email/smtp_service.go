package email

import (
	"context"
	"fmt"
	"net/smtp"

	"pvadb-backend/pkg/logger"
)

type ModerationOutcomeData struct {
	Email       string
	ProductName string
	Approved    bool
	Reason      string
}

type ModerationDigestData struct {
	Email        string
	PendingCount int
	OldestAge    string
}

type EmailService interface {
	SendModerationOutcomeEmail(ctx context.Context, data ModerationOutcomeData) error
	SendModerationDigestEmail(ctx context.Context, data ModerationDigestData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewDevEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendModerationOutcomeEmail(ctx context.Context, data ModerationOutcomeData) error {
	var subject, body string
	if data.Approved {
		subject = "Your product submission was approved"
		body = fmt.Sprintf(`Hi,

Your submission "%s" has been reviewed and is now live in the PVA product database.

Thanks for contributing!`, data.ProductName)
	} else {
		subject = "Your product submission was not approved"
		body = fmt.Sprintf(`Hi,

Your submission "%s" was reviewed but could not be accepted.

Reason: %s

You are welcome to resubmit with corrections.`, data.ProductName, data.Reason)
	}

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendModerationDigestEmail(ctx context.Context, data ModerationDigestData) error {
	subject := fmt.Sprintf("Moderation queue: %d submission(s) pending", data.PendingCount)
	body := fmt.Sprintf(`Hi,

There are %d product submission(s) waiting for review.
Oldest pending submission: %s.

Please review the moderation queue.`, data.PendingCount, data.OldestAge)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
