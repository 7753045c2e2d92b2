package policy

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// GetByOrderID возвращает nil без ошибки, если для заказа нет явной политики.
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*entities.DispatchPolicy, error) {
	query := `SELECT order_id, chain, sla_hours
		FROM dispatch_policies
		WHERE order_id = $1`

	var p entities.DispatchPolicy
	err := r.querier.QueryRow(ctx, query, orderID).Scan(&p.OrderID, &p.Chain, &p.SLAHours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("unexpected policy repository get error: %w", err)
	}

	return &p, nil
}
