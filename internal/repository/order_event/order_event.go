package order_event

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
)

type OrderEventDB struct {
	ID            int64
	OrderID       string
	Event         string
	Status        string
	CarrierID     *string
	CorrelationID string
	CreatedAt     time.Time
}

// Repository история переходов заказа, только добавление.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Append(ctx context.Context, event entities.OrderEvent) error {
	query := `
		INSERT INTO order_events (order_id, event, status, carrier_id, correlation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(
		ctx,
		query,
		event.OrderID,
		event.Event.String(),
		event.Status.String(),
		event.CarrierID,
		event.CorrelationID,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("unexpected order event repository append error: %w", err)
	}

	return nil
}

// ListByOrder события заказа в порядке записи.
func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]entities.OrderEvent, error) {
	query := `
		SELECT id, order_id, event, status, carrier_id, correlation_id, created_at
		FROM order_events
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected order event repository list error: %w", err)
	}
	defer rows.Close()

	events := make([]entities.OrderEvent, 0, 4)
	for rows.Next() {
		var eventDB OrderEventDB
		err := rows.Scan(
			&eventDB.ID,
			&eventDB.OrderID,
			&eventDB.Event,
			&eventDB.Status,
			&eventDB.CarrierID,
			&eventDB.CorrelationID,
			&eventDB.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order event repository list error: %w", err)
		}

		events = append(events, entities.OrderEvent{
			OrderID:       eventDB.OrderID,
			Event:         entities.OrderEventType(eventDB.Event),
			Status:        entities.OrderStatusType(eventDB.Status),
			CarrierID:     eventDB.CarrierID,
			CorrelationID: eventDB.CorrelationID,
			CreatedAt:     eventDB.CreatedAt,
		})
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order event repository list error: %w", err)
	}

	return events, nil
}
