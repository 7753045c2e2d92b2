//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type engineLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	UpdateStatus(ctx context.Context, update entities.OrderStatusUpdate) error
}

type EventRepository interface {
	Append(ctx context.Context, event entities.OrderEvent) error
}

type CarrierRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Carrier, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Organization, error)
}

type PolicyResolver interface {
	Resolve(ctx context.Context, orderID string) (*entities.DispatchPolicy, error)
}

type ComplianceChecker interface {
	Status(ctx context.Context, carrierID string) entities.ComplianceStatus
}

type EntitlementChecker interface {
	HasFeatureWithContext(ctx context.Context, actorOrgID string, feature entities.FeatureType, ownerOrgID string) (bool, error)
}

type Escalator interface {
	Escalate(ctx context.Context, order entities.Order, correlationID string) entities.EscalationResult
}

type Notifier interface {
	Enqueue(notification entities.Notification) bool
}

type Scheduler interface {
	ScheduleAt(at time.Time, job entities.TimerJob) entities.TimerHandle
	Cancel(handle entities.TimerHandle)
	Jobs() <-chan entities.TimerJob
}

type StateStore interface {
	Get(orderID string) (entities.DispatchState, bool)
	Epoch(orderID string) uint64
	Advance(orderID string) (uint64, *entities.DispatchState)
	CompareAndSet(orderID string, epoch uint64, state entities.DispatchState) bool
	CompareAndDelete(orderID string, epoch uint64) bool
	Release(orderID string, epoch uint64)
	Len() int
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
