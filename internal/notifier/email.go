// Package notifier sends best-effort outbound email. Failures are logged and
// never returned: a missed notification must not fail the operation that
// triggered it.
package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/config"
	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
)

type EmailNotifier struct {
	cfg config.SMTPConfig
}

func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) SendInvitation(ctx context.Context, toEmail, projectName, invitedBy, inviteLink string) {
	subject := "You've been invited to project: " + projectName
	body := fmt.Sprintf(`Hello,

You have been invited by %s to join the project "%s".

To accept this invitation, please click the following link:
%s

If you did not expect this invitation, you can ignore this email.

Best regards,
PMT Team
`, invitedBy, projectName, n.cfg.BaseURL+inviteLink)

	n.send(toEmail, subject, body)
}

func (n *EmailNotifier) SendTaskAssignment(ctx context.Context, toEmail, taskName, projectName string) {
	subject := "New task assigned: " + taskName
	body := fmt.Sprintf(`Hello,

A new task has been assigned to you:

Task: %s
Project: %s

Please log in to PMT to view the task details.

Best regards,
PMT Team
`, taskName, projectName)

	n.send(toEmail, subject, body)
}

func (n *EmailNotifier) send(to, subject, body string) {
	if !n.cfg.Enabled || n.cfg.Host == "" {
		logger.Info("Notifier: SMTP not configured, skipping mail",
			zap.String("to", to),
			zap.String("subject", subject))
		return
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.cfg.From, to, subject, body))

	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{to}, msg); err != nil {
		logger.Error("Notifier: sending mail failed", err,
			zap.String("to", to),
			zap.String("subject", subject))
		return
	}

	logger.Info("Notifier: mail sent",
		zap.String("to", to),
		zap.String("subject", subject))
}

// Noop discards every notification. Used by tests and the in-memory profile.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) SendInvitation(ctx context.Context, toEmail, projectName, invitedBy, inviteLink string) {
}

func (*Noop) SendTaskAssignment(ctx context.Context, toEmail, taskName, projectName string) {}
