package model

import "context"

// EmailClient delivers 2FA codes to users.
type EmailClient interface {
	SendEmail(ctx context.Context, recipient Email, subject, content string) error
}
