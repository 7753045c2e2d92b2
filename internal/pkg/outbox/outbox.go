// Package outbox очередь исходящих уведомлений. Отправка отвязана от переходов заказа:
// Enqueue никогда не блокирует, ошибки доставки только логируются.
package outbox

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

const (
	DefaultSize    = 1024
	DefaultTimeout = 5 * time.Second
	drainTimeout   = 10 * time.Second
)

type Queue struct {
	ch        chan entities.Notification
	publisher Publisher
	log       queueLogger
	timeout   time.Duration
}

func New(publisher Publisher, log queueLogger, size int, timeout time.Duration) *Queue {
	if size <= 0 {
		size = DefaultSize
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Queue{
		ch:        make(chan entities.Notification, size),
		publisher: publisher,
		log:       log,
		timeout:   timeout,
	}
}

// Enqueue кладет уведомление в очередь. При переполнении уведомление отбрасывается.
func (q *Queue) Enqueue(n entities.Notification) bool {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	select {
	case q.ch <- n:
		QueueDepth.Set(float64(len(q.ch)))
		return true
	default:
		NotificationsDroppedTotal.WithLabelValues(n.Kind.String()).Inc()
		q.log.Warn("notification queue full, dropping",
			logger.NewField("kind", n.Kind.String()),
			logger.NewField("order_id", n.OrderID),
			logger.NewField("correlation_id", n.CorrelationID),
		)
		return false
	}
}

func (q *Queue) Len() int {
	return len(q.ch)
}

// Run отправляет уведомления, пока жив ctx. После отмены дочищает то, что уже в очереди.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			q.drain(context.WithoutCancel(ctx))
			return nil
		case n := <-q.ch:
			q.publish(ctx, n)
		}
	}
}

func (q *Queue) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	left := len(q.ch)
	if left > 0 {
		q.log.Info("draining notification queue", logger.NewField("pending", left))
	}

	for {
		select {
		case n := <-q.ch:
			if ctx.Err() != nil {
				NotificationsDroppedTotal.WithLabelValues(n.Kind.String()).Inc()
				continue
			}
			q.publish(ctx, n)
		default:
			return
		}
	}
}

func (q *Queue) publish(ctx context.Context, n entities.Notification) {
	QueueDepth.Set(float64(len(q.ch)))

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	if err := q.publisher.Publish(ctx, n); err != nil {
		NotificationsPublishedTotal.WithLabelValues(n.Kind.String(), "error").Inc()
		q.log.Error("publish notification",
			logger.NewField("kind", n.Kind.String()),
			logger.NewField("order_id", n.OrderID),
			logger.NewField("correlation_id", n.CorrelationID),
			logger.NewField("error", err),
		)
		return
	}

	NotificationsPublishedTotal.WithLabelValues(n.Kind.String(), "ok").Inc()
	q.log.Debug("notification published",
		logger.NewField("kind", n.Kind.String()),
		logger.NewField("order_id", n.OrderID),
	)
}
