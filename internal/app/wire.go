//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"dispatch/internal/pkg/config"
	"dispatch/pkg/logger"
	"github.com/google/wire"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
) (*Application, func(), error) {
	wire.Build(
		provideStorage,

		provideEntitlements,
		providePolicyResolver,
		provideComplianceCache,
		provideMatchingClient,
		provideEscalation,

		provideNotificationPublisher,
		provideOutbox,
		provideScheduler,
		provideStateStore,

		provideEngine,
		provideOrderService,

		provideCompliancePurgeInterval,
		provideLiveOffersReportInterval,
		provideCompliancePurgeTask,
		provideLiveOffersTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}

// InitializeNotificationWorker для Kafka воркера (cmd/worker-notifications)
func InitializeNotificationWorker(
	log logger.Logger,
	cfg *config.Config,
) (*NotificationWorker, error) {
	wire.Build(
		provideEmailGateway,
		provideNotificationHandler,

		wire.Struct(new(NotificationWorker), "*"),
	)
	return nil, nil
}
