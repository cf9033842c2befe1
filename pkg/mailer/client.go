package mailer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	log "github.com/hamjambo/hare-report-mailer/pkg/logger"
)

const (
	clientName = "smtp-client"
	spanName   = "hare.mailer.send"
	kindAttr   = "mail_kind"
)

// transport is the part of the go-mail client the Client depends on.
type transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// Client sends report mails over an authenticated implicit-TLS SMTP connection.
// Every Send dials a fresh connection.
type Client struct {
	Config *Config
	Logger *zap.SugaredLogger

	transport transport
}

var _ Sender = &Client{}

func NewClient(config *Config, logger *zap.SugaredLogger) (*Client, error) {
	smtpClient, err := gomail.NewClient(config.Host,
		gomail.WithPort(config.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(config.Username),
		gomail.WithPassword(config.Password),
		gomail.WithTimeout(config.Timeout),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create SMTP client for %s:%d", config.Host, config.Port)
	}

	return &Client{
		Config:    config,
		Logger:    logger,
		transport: smtpClient,
	}, nil
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	ctx, span := otel.Tracer("").Start(ctx, spanName, trace.WithAttributes(attribute.String(kindAttr, string(msg.Kind))))
	defer span.End()

	m, err := newMsg(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return errors.Wrapf(err, "failed to build %s mail", msg.Kind)
	}

	start := time.Now()
	err = c.transport.DialAndSendWithContext(ctx, m)
	duration := time.Since(start)

	recordSend(msg.Kind, err == nil, duration)

	if err != nil {
		c.namedLogger().With(log.KeyKind, msg.Kind).With(log.KeyResult, log.ValueFail).
			With(log.KeyError, err.Error()).Warn("send mail")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return errors.Wrapf(err, "failed to send %s mail", msg.Kind)
	}

	c.namedLogger().With(log.KeyKind, msg.Kind).With(log.KeyResult, log.ValueSuccess).
		With(log.KeyDuration, duration).Debugf("sent mail to '%s'", msg.To)

	return nil
}

func newMsg(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()

	if err := m.FromFormat(msg.FromName, msg.FromAddress); err != nil {
		return nil, errors.Wrapf(err, "invalid sender %q", msg.FromAddress)
	}

	if err := m.To(msg.To); err != nil {
		return nil, errors.Wrapf(err, "invalid recipient %q", msg.To)
	}

	m.Subject(msg.Subject)
	m.SetDate()

	if msg.MessageID != "" {
		m.SetMessageIDWithValue(msg.MessageID)
	}

	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	return m, nil
}

func (c *Client) namedLogger() *zap.SugaredLogger {
	return c.Logger.Named(clientName).With("component", "SMTP")
}
