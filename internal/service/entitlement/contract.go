//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=entitlement_test
package entitlement

import (
	"context"

	"dispatch/internal/entities"
)

type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Organization, error)
}

type InvitationRepository interface {
	ListInvitedCarriers(ctx context.Context, ownerOrgID string) ([]string, error)
}
