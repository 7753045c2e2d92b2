//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=outbox_test
package outbox

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type queueLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type Publisher interface {
	Publish(ctx context.Context, notification entities.Notification) error
}
