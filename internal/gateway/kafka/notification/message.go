package notification

import (
	"time"

	"dispatch/internal/entities"
)

// Message формат уведомления в топике. Ключ сообщения - id заказа,
// чтобы уведомления одного заказа читались по порядку.
type Message struct {
	Kind          string    `json:"kind"`
	OrderID       string    `json:"orderId"`
	To            string    `json:"to"`
	Subject       string    `json:"subject"`
	Text          string    `json:"text"`
	CorrelationID string    `json:"traceId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromDomain(n entities.Notification) Message {
	return Message{
		Kind:          n.Kind.String(),
		OrderID:       n.OrderID,
		To:            n.To,
		Subject:       n.Subject,
		Text:          n.Body,
		CorrelationID: n.CorrelationID,
		CreatedAt:     n.CreatedAt,
	}
}

func (m Message) ToDomain() entities.Notification {
	return entities.Notification{
		Kind:          entities.NotificationKind(m.Kind),
		OrderID:       m.OrderID,
		To:            m.To,
		Subject:       m.Subject,
		Body:          m.Text,
		CorrelationID: m.CorrelationID,
		CreatedAt:     m.CreatedAt,
	}
}
