package order_get

import (
	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
)

func toDTO(order *entities.Order) dto.Order {
	return dto.Order{
		ID:                order.ID,
		OwnerOrgID:        order.OwnerOrgID,
		Ref:               order.Ref,
		Origin:            order.Origin,
		Destination:       order.Destination,
		Pallets:           order.Pallets,
		Weight:            order.WeightKg,
		Status:            dto.OrderStatus(order.Status),
		AssignedCarrierID: order.AssignedCarrierID,
		ForceEscalation:   order.ForceEscalation,
		Escalated:         order.Escalated,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}
