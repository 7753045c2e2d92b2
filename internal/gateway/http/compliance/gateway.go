package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/metrics"
	"dispatch/internal/service/compliance"
	"dispatch/pkg/correlation"
)

const serviceName = "compliance-service"

type statusResponse struct {
	Status  string   `json:"status"`
	Reasons []string `json:"reasons,omitempty"`
}

// ComplianceGateway HTTP-клиент сервиса проверки перевозчиков.
// Таймаут задает вызывающая сторона через ctx.
type ComplianceGateway struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(baseURL, token string, client *http.Client) *ComplianceGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &ComplianceGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

func (g *ComplianceGateway) FetchStatus(ctx context.Context, carrierID string) (entities.ComplianceStatus, error) {
	if g.baseURL == "" {
		return "", compliance.ErrSourceDisabled
	}

	endpoint := fmt.Sprintf("%s/vigilance/status/%s?refresh=1", g.baseURL, url.PathEscape(carrierID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("gateway compliance, build request: %w", err)
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	if id, ok := correlation.FromContext(ctx); ok {
		req.Header.Set(correlation.HeaderCorrelationID, id)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	code := metrics.CodeUnknown
	if resp != nil {
		code = http.StatusText(resp.StatusCode)
	}
	metrics.GatewayRequestDuration.WithLabelValues(serviceName, "Status", code).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("gateway compliance, status %s: %w", carrierID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway compliance, status %s: unexpected http status %d", carrierID, resp.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("gateway compliance, decode status %s: %w", carrierID, err)
	}

	return entities.ParseComplianceStatus(body.Status), nil
}
