// Package memory хранилище в памяти процесса, заполняется из JSON-сидов.
// Используется при STORAGE_DRIVER=memory и в тестах.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"dispatch/internal/entities"
)

type Store struct {
	mu            sync.RWMutex
	orders        map[string]entities.Order
	events        []entities.OrderEvent
	carriers      []entities.Carrier
	policies      map[string]entities.DispatchPolicy
	invitations   map[string][]string
	organizations map[string]entities.Organization
}

func New(seeds *Seeds) *Store {
	s := &Store{
		orders:        make(map[string]entities.Order),
		policies:      make(map[string]entities.DispatchPolicy),
		invitations:   make(map[string][]string),
		organizations: make(map[string]entities.Organization),
	}
	if seeds == nil {
		return s
	}

	compliance := make(map[string]entities.ComplianceStatus, len(seeds.Compliance))
	for _, c := range seeds.Compliance {
		compliance[c.CarrierID] = entities.ParseComplianceStatus(c.Status)
	}

	for _, o := range seeds.Orders {
		if o.ID == "" {
			continue
		}
		status := entities.OrderStatusType(o.Status)
		if !status.IsValid() {
			status = entities.OrderNew
		}
		ref := o.Ref
		if ref == "" {
			ref = o.ID
		}
		s.orders[o.ID] = entities.Order{
			ID:              o.ID,
			OwnerOrgID:      o.OwnerOrgID,
			Ref:             ref,
			Origin:          o.Origin,
			Destination:     o.Destination,
			Pallets:         o.Pallets,
			WeightKg:        o.Weight,
			Status:          status,
			ForceEscalation: o.ForceEscalation,
		}
	}

	for _, c := range seeds.Carriers {
		seed, ok := compliance[c.ID]
		if !ok {
			seed = entities.ComplianceUnknown
		}
		s.carriers = append(s.carriers, entities.Carrier{
			ID:             c.ID,
			Name:           c.Name,
			Email:          c.Email,
			Premium:        c.Premium,
			QualityScore:   c.Score,
			SeedCompliance: seed,
		})
	}

	for _, p := range seeds.Policies {
		s.policies[p.OrderID] = entities.DispatchPolicy{
			OrderID:  p.OrderID,
			Chain:    slices.Clone(p.Chain),
			SLAHours: p.SLAHours,
		}
	}

	for _, inv := range seeds.Invitations {
		s.invitations[inv.OwnerOrgID] = slices.Clone(inv.InvitedCarriers)
	}

	for _, o := range seeds.Organizations {
		addOns := make([]entities.AddOnType, 0, len(o.AddOns))
		for _, a := range o.AddOns {
			addOns = append(addOns, entities.AddOnType(a))
		}
		s.organizations[o.ID] = entities.Organization{
			ID:          o.ID,
			Name:        o.Name,
			Plan:        entities.PlanType(o.Plan),
			AddOns:      addOns,
			NotifyEmail: o.NotifyEmail,
		}
	}

	return s
}

func (s *Store) Orders() *OrderRepository               { return &OrderRepository{s: s} }
func (s *Store) Events() *EventRepository               { return &EventRepository{s: s} }
func (s *Store) Carriers() *CarrierRepository           { return &CarrierRepository{s: s} }
func (s *Store) Policies() *PolicyRepository            { return &PolicyRepository{s: s} }
func (s *Store) Organizations() *OrganizationRepository { return &OrganizationRepository{s: s} }

type OrderRepository struct {
	s *Store
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*entities.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, entities.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *OrderRepository) Create(_ context.Context, order entities.Order) error {
	if !order.Status.IsValid() {
		return fmt.Errorf("%w: %q", entities.ErrInvalidOrderStatus, order.Status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[order.ID]; ok {
		return entities.ErrOrderAlreadyExists
	}
	r.s.orders[order.ID] = *cloneOrder(order)
	return nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, update entities.OrderStatusUpdate) error {
	if !update.Status.IsValid() {
		return fmt.Errorf("%w: %q", entities.ErrInvalidOrderStatus, update.Status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[update.OrderID]
	if !ok {
		return entities.ErrOrderNotFound
	}

	o.Status = update.Status
	o.AssignedCarrierID = nil
	if update.AssignedCarrierID != nil {
		id := *update.AssignedCarrierID
		o.AssignedCarrierID = &id
	}
	o.Escalated = o.Escalated || update.Escalated
	o.UpdatedAt = update.UpdatedAt
	r.s.orders[update.OrderID] = o

	return nil
}

func (r *OrderRepository) ListByCarrier(_ context.Context, carrierID string, status entities.OrderStatusType) ([]entities.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]entities.Order, 0, 8)
	for _, o := range r.s.orders {
		if o.Status != status || o.AssignedCarrierID == nil || *o.AssignedCarrierID != carrierID {
			continue
		}
		result = append(result, *cloneOrder(o))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

type EventRepository struct {
	s *Store
}

func (r *EventRepository) Append(_ context.Context, event entities.OrderEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.events = append(r.s.events, event)
	return nil
}

func (r *EventRepository) ListByOrder(_ context.Context, orderID string) ([]entities.OrderEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]entities.OrderEvent, 0, 4)
	for _, e := range r.s.events {
		if e.OrderID == orderID {
			result = append(result, e)
		}
	}
	return result, nil
}

type CarrierRepository struct {
	s *Store
}

func (r *CarrierRepository) GetByID(_ context.Context, id string) (*entities.Carrier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.carriers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, entities.ErrCarrierNotFound
}

// ListIDs перевозчики в порядке сидов.
func (r *CarrierRepository) ListIDs(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]string, 0, len(r.s.carriers))
	for _, c := range r.s.carriers {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

type PolicyRepository struct {
	s *Store
}

func (r *PolicyRepository) GetByOrderID(_ context.Context, orderID string) (*entities.DispatchPolicy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.policies[orderID]
	if !ok {
		return nil, nil
	}
	p.Chain = slices.Clone(p.Chain)
	return &p, nil
}

type OrganizationRepository struct {
	s *Store
}

func (r *OrganizationRepository) GetByID(_ context.Context, id string) (*entities.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.organizations[id]
	if !ok {
		return nil, entities.ErrOrganizationNotFound
	}
	o.AddOns = slices.Clone(o.AddOns)
	return &o, nil
}

func (r *OrganizationRepository) ListInvitedCarriers(_ context.Context, ownerOrgID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return slices.Clone(r.s.invitations[ownerOrgID]), nil
}

func cloneOrder(o entities.Order) *entities.Order {
	if o.AssignedCarrierID != nil {
		id := *o.AssignedCarrierID
		o.AssignedCarrierID = &id
	}
	return &o
}
