//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}

type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	// Create возвращает entities.ErrOrderAlreadyExists, если заказ с таким id уже есть.
	Create(ctx context.Context, order entities.Order) error
	ListByCarrier(ctx context.Context, carrierID string, status entities.OrderStatusType) ([]entities.Order, error)
}

type EventRepository interface {
	Append(ctx context.Context, event entities.OrderEvent) error
}

type ComplianceChecker interface {
	Status(ctx context.Context, carrierID string) entities.ComplianceStatus
}

type OfferLookup interface {
	LiveOffer(orderID string) (entities.DispatchState, bool)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
