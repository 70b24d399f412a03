package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
	"github.com/urocareerz/urocareerz-api/pkg/retry"
	"github.com/urocareerz/urocareerz-api/pkg/tracing"
)

const sendTimeout = 10 * time.Second

// Message is a rendered email ready for delivery.
type Message struct {
	To       string
	Subject  string
	Text     string
	HTML     string
	Template string // metrics label only
}

// Sender delivers rendered messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// MailgunSender delivers through the Mailgun HTTP API.
type MailgunSender struct {
	client *mg.MailgunImpl
	sender string
	retry  retry.Config
}

// NewMailgunSender builds a sender for the given Mailgun domain.
func NewMailgunSender(domain, apiKey, sender string) *MailgunSender {
	return &MailgunSender{
		client: mg.NewMailgun(domain, apiKey),
		sender: sender,
		retry:  mailRetryConfig(),
	}
}

// Send delivers msg. Each attempt is bounded by sendTimeout; throttling and
// server errors are retried.
func (m *MailgunSender) Send(ctx context.Context, msg Message) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "mailgun.send", attribute.String("mail.template", msg.Template))
	defer func() { tracing.EndSpan(span, err) }()

	message := m.client.NewMessage(m.sender, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}

	var id string
	err = retry.Do(ctx, m.retry, "mailgun.send", func(ctx context.Context) error {
		c, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()
		var sendErr error
		_, id, sendErr = m.client.Send(c, message)
		return sendErr
	})

	duration := metrics.MeasureDuration(start)
	status := metrics.StatusLabel(err)
	metrics.MailSendDuration.WithLabelValues(msg.Template, status).Observe(duration)
	metrics.MailSendTotal.WithLabelValues(msg.Template, status).Inc()

	if err != nil {
		logger.LogAPICall("mailgun", "send", status, duration,
			zap.String("template", msg.Template),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.LogAPICall("mailgun", "send", status, duration,
		zap.String("template", msg.Template),
		zap.String("message_id", id),
	)
	return nil
}

func mailRetryConfig() retry.Config {
	cfg := retry.MailConfig()
	cfg.Retryable = isTransientMailError
	return cfg
}

// isTransientMailError retries 429 and 5xx responses plus transport failures.
// Other API responses (bad recipient, bad key) will not succeed on retry.
func isTransientMailError(err error) bool {
	var resp *mg.UnexpectedResponseError
	if errors.As(err, &resp) {
		return resp.Actual == http.StatusTooManyRequests || resp.Actual >= http.StatusInternalServerError
	}
	return true
}

// LogSender writes messages to the log instead of sending them. Used when no
// Mailgun credentials are configured, which config validation forbids in production.
type LogSender struct {
	// ShowBody includes the text body (and so any OTP code) in the log line.
	ShowBody bool
}

// Send logs the message envelope.
func (s LogSender) Send(_ context.Context, msg Message) error {
	metrics.MailSendTotal.WithLabelValues(msg.Template, "logged").Inc()
	fields := []zap.Field{
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("template", msg.Template),
	}
	if s.ShowBody {
		fields = append(fields, zap.String("text", msg.Text))
	}
	logger.Info("Email delivery skipped (mail provider not configured)", fields...)
	return nil
}
