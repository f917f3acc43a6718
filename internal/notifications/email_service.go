package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"villa/internal/shared/config"
	"villa/pkg/logger"
)

// EmailService delivers a rendered notification to its recipient
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

func NewSMTPConfig(cfg config.EmailConfig) *SMTPConfig {
	return &SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
		UseTLS:    cfg.UseTLS,
		Timeout:   cfg.Timeout,
	}
}

func validateSMTPConfig(cfg *SMTPConfig) error {
	if cfg == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if cfg.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if cfg.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

type SMTPEmailService struct {
	config *SMTPConfig
	logger *logger.Logger
}

func NewSMTPEmailService(cfg *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPEmailService{config: cfg, logger: logger.GetDefault()}, nil
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	htmlBody, textBody, err := renderNotification(notification)
	if err != nil {
		return fmt.Errorf("failed to generate email content: %w", err)
	}
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := buildMessage(s.config.FromName, s.config.FromEmail, to, subject, htmlBody, textBody, time.Now())

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	if err := s.send(ctx, addr, auth, to, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.InfoContext(ctx, "Email sent", "to", to, "subject", subject)
	return nil
}

// send dials with the configured timeout and upgrades with STARTTLS when enabled
func (s *SMTPEmailService) send(ctx context.Context, addr string, auth smtp.Auth, to string, message []byte) error {
	dialer := &net.Dialer{Timeout: s.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	_ = conn.SetDeadline(time.Now().Add(s.config.Timeout))

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if s.config.UseTLS {
		tlsConfig := &tls.Config{ServerName: s.config.Host, MinVersion: tls.VersionTLS12}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

// buildMessage creates a multipart/alternative message with a stable header order
func buildMessage(fromName, fromEmail, to, subject, htmlBody, textBody string, date time.Time) []byte {
	boundary := "villa_" + strconv.FormatInt(date.UnixNano(), 36)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", fromName), fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	if textBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(textBody + "\r\n")
	}
	if htmlBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		b.WriteString(htmlBody + "\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

// LogEmailService writes emails to the log instead of sending them. Used when no SMTP host is configured.
type LogEmailService struct {
	logger *logger.Logger
}

func NewLogEmailService() *LogEmailService {
	return &LogEmailService{logger: logger.GetDefault()}
}

func (s *LogEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	htmlBody, textBody, err := renderNotification(notification)
	if err != nil {
		return fmt.Errorf("failed to generate email content: %w", err)
	}
	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

func (s *LogEmailService) SendHTML(ctx context.Context, to, subject, _, textBody string) error {
	s.logger.InfoContext(ctx, "Email not sent, SMTP disabled",
		"to", to,
		"subject", subject,
		"body", strings.TrimSpace(textBody),
	)
	return nil
}
