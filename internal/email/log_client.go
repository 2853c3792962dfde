// Package email contains EmailClient implementations.
package email

import (
	"context"

	"github.com/dtroode/auth-service/internal/logger"
	"github.com/dtroode/auth-service/internal/model"
)

var _ model.EmailClient = (*LogClient)(nil)

// LogClient writes messages to the logger instead of delivering them. Message
// bodies are logged at debug level only.
type LogClient struct {
	logger *logger.Logger
}

func NewLogClient(logger *logger.Logger) *LogClient {
	return &LogClient{logger: logger}
}

func (c *LogClient) SendEmail(ctx context.Context, recipient model.Email, subject, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.logger.Info("Email client: sending email",
		"recipient", recipient.String(),
		"subject", subject)
	c.logger.Debug("Email client: email content",
		"recipient", recipient.String(),
		"content", content)

	return nil
}
