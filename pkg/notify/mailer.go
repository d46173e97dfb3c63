// Package notify delivers account mail: password reset links.
package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"droscher.com/BeerCritic/configs"
)

var ErrDelivery = errors.New("mail delivery failed")

type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

func NewMailer(conf configs.Mail, logger *zap.Logger) (Mailer, error) {
	switch conf.Provider {
	case "smtp":
		return NewSMTPMailer(conf, logger), nil
	case "sendgrid":
		return NewSendGridMailer(conf, logger), nil
	case "log":
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown mail provider %q", configs.ErrConfiguration, conf.Provider)
	}
}

// LogMailer writes mail to the log instead of sending it.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (l *LogMailer) Send(_ context.Context, to string, subject string, body string) error {
	l.logger.Info("mail not sent, log provider configured", zap.String("to", to), zap.String("subject", subject), zap.String("body", body))

	return nil
}
