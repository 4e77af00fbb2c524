package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the outbound notification operations. All sends are
// best-effort: callers log failures and never propagate them.
type EmailService interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendApplicationStatusEmail(toEmail, toName, status, remarks string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPEmailService implements EmailService over plain SMTP
type SMTPEmailService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &SMTPEmailService{
		config: config,
		logger: logger,
	}
}

// SendWelcomeEmail sends the post-registration welcome email
func (s *SMTPEmailService) SendWelcomeEmail(toEmail, toName string) error {
	subject := "Welcome to the College Admission Portal"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2>Welcome %s!</h2>
				<p>Thank you for registering with our College Admission Portal.</p>
				<p>You can now log in and start your admission process.</p>
				<p>Best regards,<br>The Admissions Team</p>
			</div>
		</body>
		</html>
	`, toName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendApplicationStatusEmail notifies a student that their application was reviewed
func (s *SMTPEmailService) SendApplicationStatusEmail(toEmail, toName, status, remarks string) error {
	subject := fmt.Sprintf("Your Admission Application Has Been %s", capitalize(status))

	remarksBlock := ""
	if remarks != "" {
		remarksBlock = fmt.Sprintf("<p><strong>Remarks:</strong> %s</p>", remarks)
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2>Application Update</h2>
				<p>Hello %s,</p>
				<p>Your admission application status has been updated to: <strong>%s</strong>.</p>
				%s
				<p>Log in to the portal to view the full details of your application.</p>
				<p>Best regards,<br>The Admissions Team</p>
			</div>
		</body>
		</html>
	`, toName, status, remarksBlock)

	return s.sendHTMLEmail(toEmail, subject, body)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sendHTMLEmail delivers an HTML message over SMTP. Without configured
// credentials it logs the message instead, which keeps local development
// working without a mail server.
func (s *SMTPEmailService) sendHTMLEmail(toEmail, subject, body string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	from := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers := map[string]string{
		"From":         from,
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": `text/html; charset="UTF-8"`,
	}

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n" + body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
