// Package email delivers transactional mail over SMTP. With no SMTP
// host configured the sender degrades to logging the message, which
// keeps local development working without a mail server.
package email

import (
	"fmt"
	"net/smtp"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/infrastructure/config"
)

// Sender delivers account emails
type Sender interface {
	SendVerification(to, token string) error
	SendPasswordReset(to, token string) error
}

// SMTPSender implements Sender using net/smtp
type SMTPSender struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// NewSender creates an SMTP sender
func NewSender(cfg config.EmailConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// SendVerification sends the email verification link
func (s *SMTPSender) SendVerification(to, token string) error {
	link := s.link("/verify-email", token)
	body := fmt.Sprintf(
		"Welcome to %s!\r\n\r\nPlease confirm your email address by opening the link below:\r\n\r\n%s\r\n\r\nIf you did not create an account, you can ignore this message.\r\n",
		s.fromName(), link,
	)
	return s.send(to, "Confirm your email address", body)
}

// SendPasswordReset sends the password reset link
func (s *SMTPSender) SendPasswordReset(to, token string) error {
	link := s.link("/reset-password", token)
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\nOpen the link below to choose a new password:\r\n\r\n%s\r\n\r\nIf you did not request this, you can ignore this message.\r\n",
		link,
	)
	return s.send(to, "Reset your password", body)
}

func (s *SMTPSender) link(path, token string) string {
	base := strings.TrimRight(s.cfg.FrontendBaseURL, "/")
	return fmt.Sprintf("%s%s?token=%s", base, path, url.QueryEscape(token))
}

func (s *SMTPSender) fromName() string {
	if s.cfg.FromName != "" {
		return s.cfg.FromName
	}
	return "Life Curriculum"
}

func (s *SMTPSender) send(to, subject, body string) error {
	if s.cfg.SMTPHost == "" {
		s.logger.Info("Email delivery disabled, logging message instead",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	from := s.cfg.FromAddress
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", s.fromName(), from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
