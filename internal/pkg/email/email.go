package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendVerificationEmail(toEmail, toName, token string) error
	SendBookingConfirmation(toEmail, toName, topic string, amount int64) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string // Base URL of the application, used in links
}

// EmailServiceImpl implements EmailService over plain SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendVerificationEmail sends an email with a verification link
func (s *EmailServiceImpl) SendVerificationEmail(toEmail, toName, token string) error {
	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", s.config.BaseURL, token)

	// Without SMTP credentials log the link instead, for local development
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("verificationURL", verificationURL).
			Msg("SMTP credentials not configured - verification email not sent. Use the URL above for testing.")
		return nil
	}

	subject := "Verify Your Email Address - GradLink"
	body := fmt.Sprintf("Hi %s,\r\n\r\nWelcome to GradLink. Please verify your email address by visiting:\r\n%s\r\n\r\nIf you did not sign up, you can ignore this message.\r\n", toName, verificationURL)

	return s.send(toEmail, subject, body)
}

// SendBookingConfirmation notifies a student that a mentoring session is confirmed
func (s *EmailServiceImpl) SendBookingConfirmation(toEmail, toName, topic string, amount int64) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("topic", topic).
			Msg("SMTP credentials not configured - booking confirmation not sent")
		return nil
	}

	subject := "Your Mentoring Session is Confirmed - GradLink"
	body := fmt.Sprintf("Hi %s,\r\n\r\nYour payment of Rs. %d was received and your mentoring session on %q is confirmed.\r\n\r\nSee you there,\r\nThe GradLink Team\r\n", toName, amount, topic)

	return s.send(toEmail, subject, body)
}

func (s *EmailServiceImpl) send(toEmail, subject, body string) error {
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.config.FromName, s.config.FromEmail, toEmail, subject, body))

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Str("subject", subject).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
