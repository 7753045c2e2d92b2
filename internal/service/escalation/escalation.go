package escalation

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

const DefaultTimeout = 5 * time.Second

// Gateway передает заказ в автоматический подбор. Вызов ровно один, без повторов:
// любой отказ превращается в UNASSIGNABLE.
type Gateway struct {
	entitlements EntitlementChecker
	matching     MatchingClient
	log          gatewayLogger
	timeout      time.Duration
}

func New(entitlements EntitlementChecker, matching MatchingClient, log gatewayLogger, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Gateway{
		entitlements: entitlements,
		matching:     matching,
		log:          log,
		timeout:      timeout,
	}
}

func (g *Gateway) Escalate(ctx context.Context, order entities.Order, correlationID string) entities.EscalationResult {
	unassignable := entities.EscalationResult{Status: entities.OrderUnassignable}
	fields := []logger.Field{
		logger.NewField("order_id", order.ID),
		logger.NewField("owner_org_id", order.OwnerOrgID),
		logger.NewField("correlation_id", correlationID),
	}

	if order.OwnerOrgID == "" {
		g.log.Info("escalation skipped, order has no owner organization", fields...)
		return unassignable
	}

	allowed, err := g.entitlements.HasFeature(ctx, order.OwnerOrgID, entities.FeatureAffretIAIntegration)
	if err != nil {
		g.log.Warn("escalation entitlement check failed", append(fields, logger.NewField("error", err))...)
		return unassignable
	}
	if !allowed {
		g.log.Info("escalation skipped, matching integration not enabled", fields...)
		return unassignable
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.matching.Dispatch(callCtx, order.ID, correlationID)
	if errors.Is(err, ErrMatchingDisabled) {
		g.log.Info("escalation skipped, matching service not configured", fields...)
		return unassignable
	}
	if err != nil {
		g.log.Warn("matching call failed", append(fields, logger.NewField("error", err))...)
		return unassignable
	}
	if result == nil || result.AssignedCarrierID == nil || *result.AssignedCarrierID == "" {
		g.log.Info("matching returned no carrier", fields...)
		return unassignable
	}

	return entities.EscalationResult{
		Status:            entities.OrderDispatched,
		AssignedCarrierID: result.AssignedCarrierID,
		Quote:             result.Quote,
	}
}
