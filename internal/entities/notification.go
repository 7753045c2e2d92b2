package entities

import "time"

type NotificationKind string

const (
	NotificationOffer           NotificationKind = "offer"
	NotificationReminder30      NotificationKind = "reminder_30"
	NotificationReminder10      NotificationKind = "reminder_10"
	NotificationAcceptedOwner   NotificationKind = "accepted_owner"
	NotificationAcceptedCarrier NotificationKind = "accepted_carrier"
	NotificationEscalated       NotificationKind = "escalated"
	NotificationUnassignable    NotificationKind = "unassignable"
)

func (k NotificationKind) String() string {
	return string(k)
}

type Notification struct {
	Kind          NotificationKind
	OrderID       string
	To            string
	Subject       string
	Body          string
	CorrelationID string
	CreatedAt     time.Time
}
