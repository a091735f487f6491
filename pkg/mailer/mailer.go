// Package mailer is the outbound mail collaborator contract. Delivery is
// fire-and-forget; the core only hands over the reset link.
package mailer

import (
	"safetrack/pkg/logger"
)

type Mailer interface {
	SendPasswordReset(toAddress, recipientName, resetURL string)
}

// logMailer writes the reset link to the log instead of sending mail.
// Stands in until a real delivery backend is wired.
type logMailer struct {
	log logger.ILogger
}

func NewLogMailer(log logger.ILogger) Mailer {
	return &logMailer{log: log}
}

func (m *logMailer) SendPasswordReset(toAddress, recipientName, resetURL string) {
	m.log.Info("password reset requested",
		logger.String("to", toAddress),
		logger.String("recipient", recipientName),
		logger.String("reset_url", resetURL),
	)
}
