package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"medibook/config"
	"medibook/infras/otel"
	"medibook/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const otelAttrRecipient = "recipient"

// Mailer delivers plain-text notification mail. Callers treat delivery as
// best effort and must not fail their own operation on a send error.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sendgridMailer struct {
	client *sendgrid.Client
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Mailer {
	return &sendgridMailer{
		client: sendgrid.NewSendClient(cfg.Mail.SendGridKey),
		config: cfg,
		otel:   otl,
	}
}

func (m *sendgridMailer) Send(ctx context.Context, to, subject, body string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, to)

	if !m.config.Mail.Enable {
		log.Debug().Str("to", to).Str("subject", subject).Msg("mail disabled, skipping send")

		return nil
	}

	from := mail.NewEmail(m.config.Mail.FromName, m.config.Mail.FromAddress)
	message := mail.NewSingleEmailPlainText(from, subject, mail.NewEmail("", to), body)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mail provider rejected message: status %d", resp.StatusCode)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("mail sent")

	return nil
}
