package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"droscher.com/BeerCritic/configs"
)

type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *zap.Logger
}

func NewSendGridMailer(conf configs.Mail, logger *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(conf.SendGridKey),
		from:   mail.NewEmail("BeerCritic", conf.From),
		logger: logger,
	}
}

func (s *SendGridMailer) Send(ctx context.Context, to string, subject string, body string) error {
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), body, "")

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("error sending mail through sendgrid", zap.String("to", to), zap.Error(err))

		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		s.logger.Error("sendgrid rejected mail", zap.String("to", to), zap.Int("status", response.StatusCode), zap.String("body", response.Body))

		return fmt.Errorf("%w: sendgrid status %d", ErrDelivery, response.StatusCode)
	}

	return nil
}
