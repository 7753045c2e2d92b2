//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=compliance_test
package compliance

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type cacheLogger interface {
	Debug(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}

type StatusClient interface {
	FetchStatus(ctx context.Context, carrierID string) (entities.ComplianceStatus, error)
}

type CarrierRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Carrier, error)
}
