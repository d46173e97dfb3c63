package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/configs"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	conf   configs.Mail
	logger *zap.Logger
	send   sendFunc
}

func NewSMTPMailer(conf configs.Mail, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{conf: conf, logger: logger, send: smtp.SendMail}
}

func (s *SMTPMailer) Send(_ context.Context, to string, subject string, body string) error {
	var auth smtp.Auth
	if s.conf.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.conf.SMTPUser, s.conf.SMTPPassword, s.conf.SMTPHost)
	}

	addr := net.JoinHostPort(s.conf.SMTPHost, strconv.Itoa(s.conf.SMTPPort))

	err := s.send(addr, auth, s.conf.From, []string{to}, buildMessage(s.conf.From, to, subject, body))
	if err != nil {
		s.logger.Error("error sending mail", zap.String("to", to), zap.String("server", addr), zap.Error(err))

		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	s.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))

	return nil
}

func buildMessage(from string, to string, subject string, body string) []byte {
	var msg strings.Builder

	msg.WriteString("MIME-version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n\r\n")
	msg.WriteString(body)

	return []byte(msg.String())
}
