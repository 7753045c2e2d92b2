package app

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/gateway/grpc/matching"
	complianceGateway "dispatch/internal/gateway/http/compliance"
	emailGateway "dispatch/internal/gateway/http/notification"
	kafkaPublisher "dispatch/internal/gateway/kafka/notification"
	notificationHandler "dispatch/internal/handlers/kafka-consumer/notification"
	"dispatch/internal/handlers/tasks/compliance_purge"
	"dispatch/internal/handlers/tasks/live_offers"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/grpcclient"
	"dispatch/internal/pkg/kafka"
	"dispatch/internal/pkg/outbox"
	"dispatch/internal/pkg/postgres"
	"dispatch/internal/pkg/scheduler"
	"dispatch/internal/pkg/statestore"
	carrierRepo "dispatch/internal/repository/carrier"
	"dispatch/internal/repository/memory"
	"dispatch/internal/repository/migrations"
	orderRepo "dispatch/internal/repository/order"
	eventRepo "dispatch/internal/repository/order_event"
	organizationRepo "dispatch/internal/repository/organization"
	policyRepo "dispatch/internal/repository/policy"
	"dispatch/internal/service/compliance"
	"dispatch/internal/service/dispatch"
	"dispatch/internal/service/entitlement"
	"dispatch/internal/service/escalation"
	"dispatch/internal/service/order"
	"dispatch/internal/service/policy"
	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
)

type (
	CompliancePurgeInterval  time.Duration
	LiveOffersReportInterval time.Duration
)

func provideStorage(ctx context.Context, log logger.Logger, cfg *config.Config) (*Storage, func(), error) {
	if cfg.Database.Driver == config.StorageDriverMemory {
		seeds, err := memory.LoadSeeds(cfg.Database.SeedsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("load seeds: %w", err)
		}
		log.Info("memory storage loaded",
			logger.NewField("seeds_dir", cfg.Database.SeedsDir),
			logger.NewField("orders", len(seeds.Orders)),
			logger.NewField("carriers", len(seeds.Carriers)),
		)

		store := memory.New(seeds)
		return &Storage{
			Orders:        store.Orders(),
			Events:        store.Events(),
			Carriers:      store.Carriers(),
			Policies:      store.Policies(),
			Organizations: store.Organizations(),
			TxManager:     tx.NewNop(),
		}, func() {}, nil
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}

	if cfg.Database.Migrate {
		applied, err := migrations.Up(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied", logger.NewField("count", applied))
	}

	q := querier.New(pool, pgxv5.DefaultCtxGetter)
	return &Storage{
		Orders:        orderRepo.New(q),
		Events:        eventRepo.New(q),
		Carriers:      carrierRepo.New(q),
		Policies:      policyRepo.New(q),
		Organizations: organizationRepo.New(q),
		TxManager:     tx.New(pool),
		pinger:        pool,
	}, pool.Close, nil
}

func provideEntitlements(storage *Storage) *entitlement.Resolver {
	return entitlement.NewResolver(storage.Organizations, storage.Organizations)
}

func providePolicyResolver(storage *Storage, cfg *config.Config) *policy.Resolver {
	return policy.New(
		storage.Orders,
		storage.Carriers,
		storage.Policies,
		storage.Organizations,
		cfg.Dispatch.DefaultSLA,
	)
}

func provideComplianceCache(storage *Storage, log logger.Logger, cfg *config.Config) *compliance.Cache {
	client := complianceGateway.New(cfg.Compliance.URL, cfg.InternalServiceToken, nil)
	return compliance.New(client, storage.Carriers, log, cfg.Compliance.CacheTTL, cfg.Compliance.Timeout)
}

// provideMatchingClient без MATCHING_GRPC_HOST отдает отключенный клиент: эскалация сразу дает UNASSIGNABLE.
func provideMatchingClient(ctx context.Context, log logger.Logger, cfg *config.Config) (*matching.MatchingGateway, func(), error) {
	if cfg.Matching.GRPCHost == "" {
		log.Warn("matching service not configured, escalations will be unassignable")
		return matching.New(nil), func() {}, nil
	}

	conn, err := grpcclient.NewConnClient(ctx, log, &cfg.Matching)
	if err != nil {
		return nil, nil, fmt.Errorf("gRPC client: %w", err)
	}

	cleanup := func() {
		if err := conn.Close(); err != nil {
			log.Error("failed to close gRPC connection", logger.NewField("error", err))
		}
	}
	return matching.New(conn), cleanup, nil
}

func provideEscalation(
	entitlements *entitlement.Resolver,
	client *matching.MatchingGateway,
	log logger.Logger,
	cfg *config.Config,
) *escalation.Gateway {
	return escalation.New(entitlements, client, log, cfg.Matching.Timeout)
}

func provideNotificationPublisher(ctx context.Context, log logger.Logger, cfg *config.Config) (outbox.Publisher, func(), error) {
	if cfg.Notify.Transport == config.NotifyTransportHTTP {
		return emailGateway.New(cfg.Notify.URL, cfg.InternalServiceToken, nil), func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}

	publisher := kafkaPublisher.New(producer, cfg.Kafka.Topic)
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}
	return publisher, cleanup, nil
}

func provideOutbox(publisher outbox.Publisher, log logger.Logger, cfg *config.Config) *outbox.Queue {
	return outbox.New(publisher, log, cfg.Notify.QueueSize, cfg.Notify.Timeout)
}

func provideScheduler() *scheduler.Scheduler {
	return scheduler.New(0)
}

func provideStateStore() *statestore.Store {
	return statestore.New()
}

func provideEngine(
	storage *Storage,
	policies *policy.Resolver,
	complianceCache *compliance.Cache,
	entitlements *entitlement.Resolver,
	escalator *escalation.Gateway,
	notifier *outbox.Queue,
	timers *scheduler.Scheduler,
	states *statestore.Store,
	log logger.Logger,
	cfg *config.Config,
) *dispatch.Engine {
	return dispatch.New(
		dispatch.Deps{
			Orders:        storage.Orders,
			Events:        storage.Events,
			Carriers:      storage.Carriers,
			Organizations: storage.Organizations,
			Policies:      policies,
			Compliance:    complianceCache,
			Entitlements:  entitlements,
			Escalator:     escalator,
			Notifier:      notifier,
			Scheduler:     timers,
			States:        states,
			TxManager:     storage.TxManager,
		},
		dispatch.Config{
			NotifyTo:         cfg.Dispatch.NotifyTo,
			IndustryNotifyTo: cfg.Dispatch.IndustryNotifyTo,
		},
		log.With(logger.NewField("component", "dispatch")),
	)
}

func provideOrderService(
	storage *Storage,
	complianceCache *compliance.Cache,
	engine *dispatch.Engine,
	log logger.Logger,
) *order.Service {
	return order.New(storage.Orders, storage.Events, complianceCache, engine, storage.TxManager, log)
}

func provideCompliancePurgeInterval(cfg *config.Config) CompliancePurgeInterval {
	return CompliancePurgeInterval(cfg.Tasks.CompliancePurgeInterval)
}

func provideLiveOffersReportInterval(cfg *config.Config) LiveOffersReportInterval {
	return LiveOffersReportInterval(cfg.Tasks.LiveOffersReportInterval)
}

func provideCompliancePurgeTask(
	log logger.Logger,
	cache *compliance.Cache,
	interval CompliancePurgeInterval,
) *compliance_purge.CompliancePurge {
	return compliance_purge.NewCompliancePurge(log, cache, time.Duration(interval))
}

func provideLiveOffersTask(
	log logger.Logger,
	engine *dispatch.Engine,
	interval LiveOffersReportInterval,
) *live_offers.LiveOffersReport {
	return live_offers.NewLiveOffersReport(log, engine, time.Duration(interval))
}

func provideTaskList(
	compliancePurgeTask *compliance_purge.CompliancePurge,
	liveOffersTask *live_offers.LiveOffersReport,
) []background.Task {
	return []background.Task{
		compliancePurgeTask,
		liveOffersTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

func provideEmailGateway(cfg *config.Config) *emailGateway.EmailGateway {
	return emailGateway.New(cfg.Notify.URL, cfg.InternalServiceToken, nil)
}

func provideNotificationHandler(
	log logger.Logger,
	sender *emailGateway.EmailGateway,
	cfg *config.Config,
) *notificationHandler.Handler {
	return notificationHandler.New(log, sender, cfg.Kafka.Handlers.Notification.ProcessTimeout)
}
