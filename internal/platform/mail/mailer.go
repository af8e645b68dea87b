// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
Package mail provides the outbound email channel for the platform.

The only mail the core sends today is the signup confirmation code. Delivery
is fire-and-forget from the caller's perspective: a send failure is logged
but never propagated, so it can never roll back the user-creation write that
preceded it.
*/
package mail

import (
	"fmt"
	"log/slog"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages to an email address. Implementations must be safe
// for concurrent use.
type Sender interface {
	// Send delivers the message synchronously. Callers that must not block
	// on delivery should invoke it from a goroutine.
	Send(msg Message) error
}

// SMTPConfig holds the connection settings for the SMTP relay.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPSender implements [Sender] over an authenticated SMTP relay.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender creates a new SMTP-backed sender.
func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send delivers a single message through the configured relay.
//
// When the relay is not configured (empty host), the message is logged and
// dropped — local development works without a mail server.
func (sender *SMTPSender) Send(msg Message) error {
	if sender.cfg.Host == "" || sender.cfg.From == "" {
		sender.logger.Warn("smtp config missing, skip delivery",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
		)
		return nil
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("mail: empty recipient")
	}

	message := gomail.NewMessage()
	message.SetHeader("From", sender.cfg.From)
	message.SetHeader("To", msg.To)
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/plain", msg.Body)

	dialer := gomail.NewDialer(sender.cfg.Host, sender.cfg.Port, sender.cfg.User, sender.cfg.Pass)
	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("mail: send failed: %w", err)
	}

	sender.logger.Info("email_sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
