package entities

import "time"

type OrderEventType string

const (
	EventOrderCreated      OrderEventType = "order.created"
	EventOrderDispatched   OrderEventType = "order.dispatched"
	EventOrderAccepted     OrderEventType = "order.accepted"
	EventOrderEscalated    OrderEventType = "order.escalated"
	EventOrderMatched      OrderEventType = "order.matched"
	EventOrderUnassignable OrderEventType = "order.unassignable"
)

func (e OrderEventType) String() string {
	return string(e)
}

type OrderEvent struct {
	OrderID       string
	Event         OrderEventType
	Status        OrderStatusType
	CarrierID     *string
	CorrelationID string
	CreatedAt     time.Time
}
