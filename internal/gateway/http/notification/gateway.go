package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/metrics"
	"dispatch/pkg/correlation"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "notification-service"
	emailPath   = "/notifications/email"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// errRetryable помечает ответы, после которых имеет смысл повторить запрос (5xx, 429, сеть).
var errRetryable = errors.New("retryable notification error")

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// EmailGateway HTTP-клиент почтового сервиса.
type EmailGateway struct {
	baseURL string
	token   string
	client  *http.Client
	retrier retrier
}

func New(baseURL, token string, client *http.Client) *EmailGateway {
	if client == nil {
		client = http.DefaultClient
	}

	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &EmailGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
	}
}

// WithRetrier подменяет стратегию повторов, используется в тестах.
func (g *EmailGateway) WithRetrier(r retrier) *EmailGateway {
	g.retrier = r
	return g
}

// Publish отправляет уведомление напрямую, без брокера (NOTIFY_TRANSPORT=http).
func (g *EmailGateway) Publish(ctx context.Context, n entities.Notification) error {
	return g.Send(ctx, n.To, n.Subject, n.Body, n.CorrelationID)
}

// Send отправляет письмо. Идентификатор корреляции дописывается в конец текста.
func (g *EmailGateway) Send(ctx context.Context, to, subject, text, correlationID string) error {
	if to == "" {
		return fmt.Errorf("gateway notification: empty recipient")
	}

	payload, err := json.Marshal(emailRequest{
		To:      to,
		Subject: subject,
		Text:    withTraceFooter(text, correlationID),
	})
	if err != nil {
		return fmt.Errorf("gateway notification, marshal: %w", err)
	}

	var attempt uint64
	start := time.Now()
	code := metrics.CodeUnknown

	err = g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		var sendErr error
		code, sendErr = g.post(ctx, payload, correlationID)
		return sendErr
	})

	metrics.GatewayRequestDuration.WithLabelValues(serviceName, "SendEmail", code).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		metrics.GatewayRetriesTotal.WithLabelValues(serviceName, "SendEmail", code).Inc()
	}
	if err != nil {
		return fmt.Errorf("gateway notification, send email to %s: %w", to, err)
	}
	return nil
}

func (g *EmailGateway) post(ctx context.Context, payload []byte, correlationID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+emailPath, bytes.NewReader(payload))
	if err != nil {
		return metrics.CodeUnknown, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	if correlationID != "" {
		req.Header.Set(correlation.HeaderCorrelationID, correlationID)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return metrics.CodeUnknown, fmt.Errorf("%w: %w", errRetryable, err)
	}
	defer resp.Body.Close()

	code := http.StatusText(resp.StatusCode)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return code, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err = fmt.Errorf("notify error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return code, fmt.Errorf("%w: %w", errRetryable, err)
	}
	return code, err
}

func isRetryable(err error) bool {
	return errors.Is(err, errRetryable)
}

func withTraceFooter(text, correlationID string) string {
	if correlationID == "" {
		return text
	}
	return text + "\n\ntraceId: " + correlationID
}
