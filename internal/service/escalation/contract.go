//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=escalation_test
package escalation

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type gatewayLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}

type EntitlementChecker interface {
	HasFeature(ctx context.Context, orgID string, feature entities.FeatureType) (bool, error)
}

type MatchingClient interface {
	Dispatch(ctx context.Context, orderID string, correlationID string) (*entities.EscalationResult, error)
}
