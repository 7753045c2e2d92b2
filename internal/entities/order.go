package entities

import "time"

type Order struct {
	ID                string
	OwnerOrgID        string
	Ref               string
	Origin            string
	Destination       string
	Pallets           int
	WeightKg          float64
	Status            OrderStatusType
	AssignedCarrierID *string
	ForceEscalation   bool
	// Escalated выставляется при передаче заказа в автоматический подбор и больше не сбрасывается.
	Escalated         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderStatusType string

const (
	OrderNew                 OrderStatusType = "NEW"
	OrderDispatched          OrderStatusType = "DISPATCHED"
	OrderAccepted            OrderStatusType = "ACCEPTED"
	OrderEscalatedToMatching OrderStatusType = "ESCALATED_TO_MATCHING"
	OrderUnassignable        OrderStatusType = "UNASSIGNABLE"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderNew, OrderDispatched, OrderAccepted, OrderEscalatedToMatching, OrderUnassignable:
		return true
	}
	return false
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderAccepted || s == OrderUnassignable
}

// OrderStatusUpdate единственный способ изменить заказ после импорта.
type OrderStatusUpdate struct {
	OrderID           string
	Status            OrderStatusType
	AssignedCarrierID *string
	Escalated         bool
	UpdatedAt         time.Time
}

type OrderImport struct {
	ID              string
	OwnerOrgID      string
	Ref             string
	Origin          string
	Destination     string
	Pallets         int
	WeightKg        float64
	ForceEscalation bool
}

type CarrierOrdersFilter string

const (
	CarrierOrdersPending  CarrierOrdersFilter = "pending"
	CarrierOrdersAccepted CarrierOrdersFilter = "accepted"
)

func (f CarrierOrdersFilter) String() string {
	return string(f)
}

type CarrierOrder struct {
	ID        string
	Ref       string
	ExpiresAt *time.Time
}
