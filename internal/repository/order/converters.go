package order

import (
	"dispatch/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:                o.ID,
		OwnerOrgID:        o.OwnerOrgID,
		Ref:               o.Ref,
		Origin:            o.Origin,
		Destination:       o.Destination,
		Pallets:           o.Pallets,
		WeightKg:          o.WeightKg,
		Status:            entities.OrderStatusType(o.Status),
		AssignedCarrierID: o.AssignedCarrierID,
		ForceEscalation:   o.ForceEscalation,
		Escalated:         o.Escalated,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func FromDomain(o *entities.Order) *OrderDB {
	if o == nil {
		return nil
	}

	return &OrderDB{
		ID:                o.ID,
		OwnerOrgID:        o.OwnerOrgID,
		Ref:               o.Ref,
		Origin:            o.Origin,
		Destination:       o.Destination,
		Pallets:           o.Pallets,
		WeightKg:          o.WeightKg,
		Status:            o.Status.String(),
		AssignedCarrierID: o.AssignedCarrierID,
		ForceEscalation:   o.ForceEscalation,
		Escalated:         o.Escalated,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i, orderDB := range ordersDB {
		result[i] = *ToDomain(&orderDB)
	}
	return result
}
