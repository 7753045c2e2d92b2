package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/correlation"
	"dispatch/pkg/logger"
)

type Service struct {
	orders     OrderRepository
	events     EventRepository
	compliance ComplianceChecker
	offers     OfferLookup
	txManager  TxManager
	log        serviceLogger
	now        func() time.Time
}

func New(
	orders OrderRepository,
	events EventRepository,
	compliance ComplianceChecker,
	offers OfferLookup,
	txManager TxManager,
	log serviceLogger,
) *Service {
	return &Service{
		orders:     orders,
		events:     events,
		compliance: compliance,
		offers:     offers,
		txManager:  txManager,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Import заводит заказы в статусе NEW. Записи без id и уже существующие заказы пропускаются.
// Возвращает id созданных заказов.
func (s *Service) Import(ctx context.Context, batch []entities.OrderImport) ([]string, error) {
	ctx, correlationID := correlation.Ensure(ctx)
	created := make([]string, 0, len(batch))

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, item := range batch {
			id := strings.TrimSpace(item.ID)
			if id == "" {
				continue
			}

			ref := strings.TrimSpace(item.Ref)
			if ref == "" {
				ref = id
			}

			now := s.now()
			err := s.orders.Create(ctx, entities.Order{
				ID:              id,
				OwnerOrgID:      item.OwnerOrgID,
				Ref:             ref,
				Origin:          item.Origin,
				Destination:     item.Destination,
				Pallets:         item.Pallets,
				WeightKg:        item.WeightKg,
				Status:          entities.OrderNew,
				ForceEscalation: item.ForceEscalation,
				CreatedAt:       now,
				UpdatedAt:       now,
			})
			if errors.Is(err, entities.ErrOrderAlreadyExists) {
				s.log.Warn("order already imported", logger.NewField("order_id", id))
				continue
			}
			if err != nil {
				return fmt.Errorf("create order %s: %w", id, err)
			}

			err = s.events.Append(ctx, entities.OrderEvent{
				OrderID:       id,
				Event:         entities.EventOrderCreated,
				Status:        entities.OrderNew,
				CorrelationID: correlationID,
				CreatedAt:     now,
			})
			if err != nil {
				return fmt.Errorf("append order event: %w", err)
			}
			created = append(created, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range created {
		s.log.Info(entities.EventOrderCreated.String(),
			logger.NewField("order_id", id),
			logger.NewField("correlation_id", correlationID),
		)
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*entities.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// CarrierOrders список заказов перевозчика. В pending попадают только
// назначенные ему предложения, и только пока перевозчик не заблокирован.
func (s *Service) CarrierOrders(ctx context.Context, carrierID string, filter entities.CarrierOrdersFilter) ([]entities.CarrierOrder, error) {
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrInvalidCarrierID
	}

	switch filter {
	case entities.CarrierOrdersPending:
		return s.pending(ctx, carrierID)
	case entities.CarrierOrdersAccepted:
		return s.accepted(ctx, carrierID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}
}

func (s *Service) pending(ctx context.Context, carrierID string) ([]entities.CarrierOrder, error) {
	if s.compliance.Status(ctx, carrierID) == entities.ComplianceBlocked {
		return []entities.CarrierOrder{}, nil
	}

	orders, err := s.orders.ListByCarrier(ctx, carrierID, entities.OrderDispatched)
	if err != nil {
		return nil, fmt.Errorf("list dispatched orders: %w", err)
	}

	result := make([]entities.CarrierOrder, 0, len(orders))
	for _, o := range orders {
		item := entities.CarrierOrder{ID: o.ID, Ref: o.Ref}
		if state, ok := s.offers.LiveOffer(o.ID); ok && state.CarrierID == carrierID {
			expiresAt := state.ExpiresAt
			item.ExpiresAt = &expiresAt
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *Service) accepted(ctx context.Context, carrierID string) ([]entities.CarrierOrder, error) {
	orders, err := s.orders.ListByCarrier(ctx, carrierID, entities.OrderAccepted)
	if err != nil {
		return nil, fmt.Errorf("list accepted orders: %w", err)
	}

	result := make([]entities.CarrierOrder, 0, len(orders))
	for _, o := range orders {
		result = append(result, entities.CarrierOrder{ID: o.ID, Ref: o.Ref})
	}
	return result, nil
}
