package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/shared/config"
)

// SMTPNotifier sends ticket notification email over SMTP.
type SMTPNotifier struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPNotifier(cfg config.EmailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

func (s *SMTPNotifier) SendStatusChanged(ctx context.Context, recipient string, oldStatus, newStatus string, meta usecases.NotificationMeta) error {
	subject := fmt.Sprintf("[%s] Ticket status updated", meta.TicketNumber)
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.cfg.BaseURL, meta.TicketNumber)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Your ticket status has changed</h2>
			<p>Ticket <strong>%s</strong> (%s) moved from <strong>%s</strong> to <strong>%s</strong>.</p>
			<p><a href="%s">View your ticket</a></p>
		</body>
		</html>
	`, meta.TicketNumber, html.EscapeString(meta.Subject), oldStatus, newStatus, ticketURL)

	plainBody := fmt.Sprintf(`Your ticket status has changed.

Ticket %s (%s) moved from %s to %s.

View your ticket: %s
`, meta.TicketNumber, meta.Subject, oldStatus, newStatus, ticketURL)

	return s.send(ctx, recipient, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendReply(ctx context.Context, recipient string, message string, attachmentNames []string, meta usecases.NotificationMeta) error {
	subject := fmt.Sprintf("[%s] New reply from support", meta.TicketNumber)
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.cfg.BaseURL, meta.TicketNumber)

	attachmentNote := ""
	attachmentNotePlain := ""
	if len(attachmentNames) > 0 {
		attachmentNote = fmt.Sprintf("<p>Attachments: %s</p>", html.EscapeString(strings.Join(attachmentNames, ", ")))
		attachmentNotePlain = fmt.Sprintf("Attachments: %s\n\n", strings.Join(attachmentNames, ", "))
	}

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Support replied to your ticket</h2>
			<p>Ticket <strong>%s</strong> (%s) has a new reply:</p>
			<blockquote>%s</blockquote>
			%s
			<p><a href="%s">View your ticket</a></p>
		</body>
		</html>
	`, meta.TicketNumber, html.EscapeString(meta.Subject), html.EscapeString(message), attachmentNote, ticketURL)

	plainBody := fmt.Sprintf(`Support replied to your ticket %s (%s):

%s

%sView your ticket: %s
`, meta.TicketNumber, meta.Subject, message, attachmentNotePlain, ticketURL)

	return s.send(ctx, recipient, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) send(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromAddress, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
