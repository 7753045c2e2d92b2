package matching

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/metrics"
	"dispatch/internal/service/escalation"
	"dispatch/pkg/correlation"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName    = "matching-service"
	methodDispatch = "/matching.v1.MatchingService/Dispatch"
)

// MatchingGateway клиент сервиса автоматического подбора перевозчика.
// Повторов нет: решение о судьбе заказа принимает эскалация.
type MatchingGateway struct {
	conn invoker
}

// New при nil conn возвращает отключенный клиент: каждый вызов завершается ErrMatchingDisabled.
func New(conn invoker) *MatchingGateway {
	return &MatchingGateway{conn: conn}
}

func (g *MatchingGateway) Dispatch(ctx context.Context, orderID string, correlationID string) (*entities.EscalationResult, error) {
	if g.conn == nil {
		return nil, escalation.ErrMatchingDisabled
	}

	req, err := toRequest(orderID, correlationID)
	if err != nil {
		return nil, err
	}

	ctx = metadata.AppendToOutgoingContext(ctx, correlation.MetadataKey, correlationID)
	resp := &structpb.Struct{}

	start := time.Now()
	err = g.conn.Invoke(ctx, methodDispatch, req, resp)
	metrics.GatewayRequestDuration.WithLabelValues(serviceName, "Dispatch", getGRPCCode(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("gateway matching, dispatch %s: %w", orderID, err)
	}

	return toDomain(resp), nil
}

func getGRPCCode(err error) string {
	if err == nil {
		return metrics.CodeOK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code().String()
	}
	return metrics.CodeUnknown
}
