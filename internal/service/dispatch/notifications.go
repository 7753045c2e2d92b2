package dispatch

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type contact struct {
	name  string
	email string
}

func (e *Engine) carrierContact(ctx context.Context, carrierID string) contact {
	c := contact{name: carrierID, email: e.cfg.NotifyTo}

	carrier, err := e.deps.Carriers.GetByID(ctx, carrierID)
	if err != nil {
		e.log.Debug("carrier contact lookup failed",
			logger.NewField("carrier_id", carrierID),
			logger.NewField("error", err),
		)
		return c
	}
	if carrier.Name != "" {
		c.name = carrier.Name
	}
	if carrier.Email != "" {
		c.email = carrier.Email
	}
	return c
}

// ownerContact адрес грузовладельца: адрес организации, INDUSTRY_NOTIFY_TO, затем DISPATCH_NOTIFY_TO.
func (e *Engine) ownerContact(ctx context.Context, ownerOrgID string) string {
	if ownerOrgID != "" {
		org, err := e.deps.Organizations.GetByID(ctx, ownerOrgID)
		if err == nil && org.NotifyEmail != "" {
			return org.NotifyEmail
		}
	}
	if e.cfg.IndustryNotifyTo != "" {
		return e.cfg.IndustryNotifyTo
	}
	return e.cfg.NotifyTo
}

func (e *Engine) notify(n entities.Notification) {
	if n.To == "" {
		e.log.Debug("notification skipped, no recipient",
			logger.NewField("kind", n.Kind.String()),
			logger.NewField("order_id", n.OrderID),
		)
		return
	}
	n.CreatedAt = e.now()
	e.deps.Notifier.Enqueue(n)
}

func (e *Engine) offerNotification(order entities.Order, c contact, sla time.Duration, correlationID string) entities.Notification {
	ref := order.ID
	if order.Ref != "" {
		ref = fmt.Sprintf("%s (%s)", order.ID, order.Ref)
	}

	return entities.Notification{
		Kind:    entities.NotificationOffer,
		OrderID: order.ID,
		To:      c.email,
		Subject: fmt.Sprintf("Mission to accept %s", order.ID),
		Body: fmt.Sprintf("Hello %s, order %s is offered to you. Please accept within %s.",
			c.name, ref, sla),
		CorrelationID: correlationID,
	}
}

func reminderNotification(kind entities.TimerKind, state entities.DispatchState, c contact) entities.Notification {
	n := entities.Notification{
		Kind:          entities.NotificationReminder30,
		OrderID:       state.OrderID,
		To:            c.email,
		Subject:       fmt.Sprintf("Reminder T-30 %s", state.OrderID),
		Body:          fmt.Sprintf("30 minutes left to accept order %s.", state.OrderID),
		CorrelationID: state.CorrelationID,
	}
	if kind == entities.TimerReminder10 {
		n.Kind = entities.NotificationReminder10
		n.Subject = fmt.Sprintf("Reminder T-10 %s", state.OrderID)
		n.Body = fmt.Sprintf("10 minutes left to accept order %s.", state.OrderID)
	}
	return n
}
