package app

import (
	"context"

	"dispatch/internal/handlers/kafka-consumer/notification"
	"dispatch/internal/pkg/outbox"
	"dispatch/internal/pkg/scheduler"
	"dispatch/internal/service/compliance"
	"dispatch/internal/service/dispatch"
	"dispatch/internal/service/entitlement"
	"dispatch/internal/service/order"
	"dispatch/internal/service/policy"
	"dispatch/pkg/background"
)

type Application struct {
	Orders            *order.Service
	Engine            *dispatch.Engine
	Outbox            *outbox.Queue
	Scheduler         *scheduler.Scheduler
	BackgroundWorkers *background.Worker
	Storage           *Storage
}

type NotificationWorker struct {
	Handler *notification.Handler
}

// Storage репозитории выбранного драйвера (postgres или memory).
type Storage struct {
	Orders        OrderRepository
	Events        EventRepository
	Carriers      CarrierRepository
	Policies      PolicyRepository
	Organizations OrganizationRepository
	TxManager     TxManager

	pinger pinger
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Ready проверяет доступность базы. Хранилище в памяти готово всегда.
func (s *Storage) Ready(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}
	return s.pinger.Ping(ctx)
}

type OrderRepository interface {
	dispatch.OrderRepository
	order.OrderRepository
	policy.OrderRepository
}

type EventRepository interface {
	dispatch.EventRepository
	order.EventRepository
}

type CarrierRepository interface {
	dispatch.CarrierRepository
	compliance.CarrierRepository
	policy.CarrierRepository
}

type PolicyRepository interface {
	policy.PolicyRepository
}

type OrganizationRepository interface {
	dispatch.OrganizationRepository
	entitlement.OrganizationRepository
	policy.InvitationRepository
}

type TxManager interface {
	dispatch.TxManager
}
