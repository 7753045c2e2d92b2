package order

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id", "owner_org_id", "ref", "origin", "destination", "pallets", "weight_kg",
	"status", "assigned_carrier_id", "force_escalation", "escalated", "created_at", "updated_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create вставляет заказ. Существующий заказ не перезаписывается.
func (r *Repository) Create(ctx context.Context, order entities.Order) error {
	orderDB := FromDomain(&order)

	query := `
		INSERT INTO orders (id, owner_org_id, ref, origin, destination, pallets, weight_kg,
			status, assigned_carrier_id, force_escalation, escalated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := r.querier.Exec(
		ctx,
		query,
		orderDB.ID,
		orderDB.OwnerOrgID,
		orderDB.Ref,
		orderDB.Origin,
		orderDB.Destination,
		orderDB.Pallets,
		orderDB.WeightKg,
		orderDB.Status,
		orderDB.AssignedCarrierID,
		orderDB.ForceEscalation,
		orderDB.Escalated,
		orderDB.CreatedAt,
		orderDB.UpdatedAt,
	)
	if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
		return fmt.Errorf("%w: %q", entities.ErrInvalidOrderStatus, orderDB.Status)
	}
	if err != nil {
		return fmt.Errorf("unexpected order repository create error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrOrderAlreadyExists
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(orderDB), nil
}

// UpdateStatus меняет статус и назначение. Флаг escalated только выставляется, сброса нет.
func (r *Repository) UpdateStatus(ctx context.Context, update entities.OrderStatusUpdate) error {
	builder := qb.
		Update("orders").
		Set("status", update.Status.String()).
		Set("assigned_carrier_id", update.AssignedCarrierID).
		Set("updated_at", update.UpdatedAt)

	if update.Escalated {
		builder = builder.Set("escalated", true)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": update.OrderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository update status error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
		return fmt.Errorf("%w: %q", entities.ErrInvalidOrderStatus, update.Status)
	}
	if err != nil {
		return fmt.Errorf("unexpected order repository update status error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrOrderNotFound
	}

	return nil
}

func (r *Repository) ListByCarrier(ctx context.Context, carrierID string, status entities.OrderStatusType) ([]entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"assigned_carrier_id": carrierID, "status": status.String()}).
		OrderBy("updated_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list by carrier error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list by carrier error: %w", err)
	}
	defer rows.Close()

	ordersDB := make([]OrderDB, 0, 8)
	for rows.Next() {
		orderDB, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list by carrier error: %w", err)
		}
		ordersDB = append(ordersDB, *orderDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list by carrier error: %w", err)
	}

	return ToDomainList(ordersDB), nil
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var orderDB OrderDB
	err := row.Scan(
		&orderDB.ID,
		&orderDB.OwnerOrgID,
		&orderDB.Ref,
		&orderDB.Origin,
		&orderDB.Destination,
		&orderDB.Pallets,
		&orderDB.WeightKg,
		&orderDB.Status,
		&orderDB.AssignedCarrierID,
		&orderDB.ForceEscalation,
		&orderDB.Escalated,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &orderDB, nil
}
