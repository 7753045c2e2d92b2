//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=policy_test
package policy

import (
	"context"

	"dispatch/internal/entities"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
}

type CarrierRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type PolicyRepository interface {
	// GetByOrderID возвращает nil без ошибки, если политика для заказа не задана.
	GetByOrderID(ctx context.Context, orderID string) (*entities.DispatchPolicy, error)
}

type InvitationRepository interface {
	ListInvitedCarriers(ctx context.Context, ownerOrgID string) ([]string, error)
}
