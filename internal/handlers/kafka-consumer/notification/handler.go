package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/gateway/kafka/notification"
	"dispatch/pkg/logger"
	"github.com/IBM/sarama"
)

// Handler доставляет уведомления из топика в почтовый сервис.
// Ошибки доставки логируются, сообщение коммитится: уведомления fire-and-forget.
type Handler struct {
	sender                   EmailSender
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, sender EmailSender, timeout time.Duration) *Handler {
	handlerLog := log.With(logger.NewField("handler", "notification"))

	return &Handler{
		sender:                   sender,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("notification: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("notification: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать (отмена контекста сессии).
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var msg notification.Message
	err := json.Unmarshal(message.Value, &msg)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("notification handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("kind", msg.Kind),
		logger.NewField("order_id", msg.OrderID),
		logger.NewField("correlation_id", msg.CorrelationID),
		logger.NewField("offset", message.Offset),
	)

	if msg.To == "" {
		msgLog.Warn("notification without recipient, skipped")
		sess.MarkMessage(message, "")
		return false
	}

	err = h.sender.Send(ctx, msg.To, msg.Subject, msg.Text, msg.CorrelationID)
	if err != nil {
		if sess.Context().Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			msgLog.With(
				logger.NewField("error", err),
			).Warn("notification handler context cancelled, message will be reprocessed")
			return true
		}

		msgLog.With(
			logger.NewField("error", err),
		).Error("notification delivery failed")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("notification delivered")
	sess.MarkMessage(message, "")
	return false
}
