package policy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
)

const DefaultSLA = 2 * time.Hour

type Resolver struct {
	orders      OrderRepository
	carriers    CarrierRepository
	policies    PolicyRepository
	invitations InvitationRepository
	defaultSLA  time.Duration
}

func New(
	orders OrderRepository,
	carriers CarrierRepository,
	policies PolicyRepository,
	invitations InvitationRepository,
	defaultSLA time.Duration,
) *Resolver {
	if defaultSLA <= 0 {
		defaultSLA = DefaultSLA
	}

	return &Resolver{
		orders:      orders,
		carriers:    carriers,
		policies:    policies,
		invitations: invitations,
		defaultSLA:  defaultSLA,
	}
}

// Resolve собирает цепочку перевозчиков для заказа: сохранённая политика или весь реестр,
// приглашённые перевозчики владельца идут первыми.
func (r *Resolver) Resolve(ctx context.Context, orderID string) (*entities.DispatchPolicy, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	stored, err := r.policies.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get dispatch policy: %w", err)
	}

	var (
		chain    []string
		slaHours float64
	)
	if stored != nil {
		chain = stored.Chain
		slaHours = stored.SLAHours
	} else {
		chain, err = r.carriers.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list carriers: %w", err)
		}
	}

	for i, id := range chain {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: blank carrier at position %d", ErrMalformedPolicy, i)
		}
	}

	if slaHours <= 0 {
		slaHours = r.defaultSLA.Hours()
	}

	if order.OwnerOrgID != "" {
		invited, err := r.invitations.ListInvitedCarriers(ctx, order.OwnerOrgID)
		if err != nil {
			return nil, fmt.Errorf("list invited carriers: %w", err)
		}
		chain = MergeChain(invited, chain)
	}

	return &entities.DispatchPolicy{
		OrderID:  orderID,
		Chain:    chain,
		SLAHours: slaHours,
	}, nil
}

// MergeChain ставит invited перед base, убирая повторы и пустые идентификаторы с сохранением порядка.
func MergeChain(invited, base []string) []string {
	seen := make(map[string]struct{}, len(invited)+len(base))
	out := make([]string, 0, len(invited)+len(base))

	for _, list := range [][]string{invited, base} {
		for _, id := range list {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	return out
}
