package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/correlation"
	"dispatch/pkg/keylock"
	"dispatch/pkg/logger"
)

const (
	reminder30Before = 30 * time.Minute
	reminder10Before = 10 * time.Minute

	// restoredExpiryDelay отсрочка истечения восстановленного предложения, срок которого уже прошел.
	restoredExpiryDelay = time.Minute
)

type Deps struct {
	Orders        OrderRepository
	Events        EventRepository
	Carriers      CarrierRepository
	Organizations OrganizationRepository
	Policies      PolicyResolver
	Compliance    ComplianceChecker
	Entitlements  EntitlementChecker
	Escalator     Escalator
	Notifier      Notifier
	Scheduler     Scheduler
	States        StateStore
	TxManager     TxManager
}

type Config struct {
	// NotifyTo получатель по умолчанию, если у перевозчика или организации нет адреса.
	NotifyTo string
	// IndustryNotifyTo получатель уведомлений грузовладельцу без собственного адреса.
	IndustryNotifyTo string
}

// Engine машина состояний диспетчеризации заказов.
//
// Все переходы одного заказа сериализуются через keylock. Сетевые вызовы
// (комплаенс, подбор) выполняются без блокировки, а фиксация проверяет эпоху
// в StateStore: если за это время начался другой переход, фиксация отклоняется.
type Engine struct {
	deps  Deps
	cfg   Config
	log   engineLogger
	locks *keylock.KeyLock
	now   func() time.Time
	wg    sync.WaitGroup
}

func New(deps Deps, cfg Config, log engineLogger) *Engine {
	return &Engine{
		deps:  deps,
		cfg:   cfg,
		log:   log,
		locks: keylock.New(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock подменяет источник времени, используется в тестах.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

type transition struct {
	orderID       string
	startIndex    int
	force         bool
	correlationID string
	// expectEpoch не 0 для переходов по таймеру: переход выполняется, только если эпоха не сменилась.
	expectEpoch uint64
}

func (e *Engine) Dispatch(ctx context.Context, req entities.DispatchRequest) (*entities.DispatchResult, error) {
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, ErrInvalidOrderID
	}
	if req.StartIndex < 0 {
		return nil, ErrInvalidStartIndex
	}

	order, err := e.deps.Orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	// Проверка прав до любых изменений состояния. Приглашенный перевозчик действует с правами владельца.
	if req.ActorOrgID != "" {
		allowed, err := e.deps.Entitlements.HasFeatureWithContext(ctx,
			req.ActorOrgID, entities.FeatureIndustryDispatch, order.OwnerOrgID)
		if err != nil {
			return nil, fmt.Errorf("check entitlement: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrFeatureNotEnabled, entities.FeatureIndustryDispatch)
		}
	}

	return e.dispatch(ctx, transition{
		orderID:       req.OrderID,
		startIndex:    req.StartIndex,
		force:         req.ForceEscalation,
		correlationID: resolveCorrelationID(ctx, req.CorrelationID),
	})
}

func (e *Engine) dispatch(ctx context.Context, t transition) (*entities.DispatchResult, error) {
	ctx = correlation.WithID(ctx, t.correlationID)

	policy, err := e.deps.Policies.Resolve(ctx, t.orderID)
	if err != nil {
		return nil, fmt.Errorf("resolve policy: %w", err)
	}

	unlock := e.locks.Lock(t.orderID)
	order, err := e.deps.Orders.GetByID(ctx, t.orderID)
	if err != nil {
		unlock()
		return nil, fmt.Errorf("get order: %w", err)
	}
	if t.expectEpoch != 0 && e.deps.States.Epoch(t.orderID) != t.expectEpoch {
		unlock()
		return nil, ErrConcurrentTransition
	}
	if order.Status.IsTerminal() || order.Status == entities.OrderEscalatedToMatching || order.Escalated {
		unlock()
		return nil, fmt.Errorf("%w: status %s", ErrOrderFinalized, order.Status)
	}

	// Отмена старых таймеров до того, как будет взведен хоть один новый.
	epoch, prev := e.deps.States.Advance(t.orderID)
	if prev != nil {
		e.cancelTimers(*prev)
	}
	unlock()

	// Начатый переход доводится до конца, даже если вызывающий ушел.
	ctx = context.WithoutCancel(ctx)

	if t.force || order.ForceEscalation {
		return e.escalate(ctx, *order, epoch, prev, t.correlationID)
	}

	for i := t.startIndex; i < len(policy.Chain); i++ {
		carrierID := policy.Chain[i]
		if e.deps.Compliance.Status(ctx, carrierID) == entities.ComplianceBlocked {
			CarriersSkippedTotal.Inc()
			e.log.Info("carrier skipped, compliance blocked",
				logger.NewField("order_id", t.orderID),
				logger.NewField("carrier_id", carrierID),
				logger.NewField("chain_index", i),
				logger.NewField("correlation_id", t.correlationID),
			)
			continue
		}
		return e.offer(ctx, *order, policy, i, epoch, prev, t.correlationID)
	}

	return e.escalate(ctx, *order, epoch, prev, t.correlationID)
}

func (e *Engine) offer(
	ctx context.Context,
	order entities.Order,
	policy *entities.DispatchPolicy,
	index int,
	epoch uint64,
	prev *entities.DispatchState,
	correlationID string,
) (*entities.DispatchResult, error) {
	carrierID := policy.Chain[index]

	unlock := e.locks.Lock(order.ID)
	if e.deps.States.Epoch(order.ID) != epoch {
		unlock()
		return nil, ErrConcurrentTransition
	}

	now := e.now()
	expiresAt := now.Add(policy.SLA())

	err := e.commit(ctx, entities.OrderStatusUpdate{
		OrderID:           order.ID,
		Status:            entities.OrderDispatched,
		AssignedCarrierID: &carrierID,
		UpdatedAt:         now,
	}, entities.EventOrderDispatched, correlationID)
	if err != nil {
		e.restoreLocked(order.ID, epoch, prev)
		unlock()
		return nil, err
	}

	state := entities.DispatchState{
		OrderID:       order.ID,
		Index:         index,
		CarrierID:     carrierID,
		ExpiresAt:     expiresAt,
		Timers:        e.armTimers(order.ID, epoch, now, expiresAt),
		CorrelationID: correlationID,
	}
	if !e.deps.States.CompareAndSet(order.ID, epoch, state) {
		e.cancelTimers(state)
		e.log.Error("offer state rejected under lock",
			logger.NewField("invariant", "epoch_stable_under_lock"),
			logger.NewField("order_id", order.ID),
			logger.NewField("epoch", epoch),
		)
	}
	unlock()

	e.logTransition(entities.EventOrderDispatched, order.ID, &carrierID, correlationID,
		logger.NewField("chain_index", index),
		logger.NewField("expires_at", expiresAt),
	)

	contact := e.carrierContact(ctx, carrierID)
	e.notify(e.offerNotification(order, contact, policy.SLA(), correlationID))

	return &entities.DispatchResult{
		OrderID:           order.ID,
		Status:            entities.OrderDispatched,
		AssignedCarrierID: &carrierID,
		ExpiresAt:         &expiresAt,
		CorrelationID:     correlationID,
	}, nil
}

// escalate переводит заказ в ESCALATED_TO_MATCHING, делает одну попытку автоматического подбора
// и фиксирует итог: DISPATCHED на назначенного перевозчика или UNASSIGNABLE.
func (e *Engine) escalate(
	ctx context.Context,
	order entities.Order,
	epoch uint64,
	prev *entities.DispatchState,
	correlationID string,
) (*entities.DispatchResult, error) {
	unlock := e.locks.Lock(order.ID)
	if e.deps.States.Epoch(order.ID) != epoch {
		unlock()
		return nil, ErrConcurrentTransition
	}

	err := e.commit(ctx, entities.OrderStatusUpdate{
		OrderID:   order.ID,
		Status:    entities.OrderEscalatedToMatching,
		Escalated: true,
		UpdatedAt: e.now(),
	}, entities.EventOrderEscalated, correlationID)
	if err != nil {
		e.restoreLocked(order.ID, epoch, prev)
		unlock()
		return nil, err
	}
	unlock()

	e.logTransition(entities.EventOrderEscalated, order.ID, nil, correlationID)
	owner := e.ownerContact(ctx, order.OwnerOrgID)
	e.notify(entities.Notification{
		Kind:          entities.NotificationEscalated,
		OrderID:       order.ID,
		To:            owner,
		Subject:       fmt.Sprintf("Escalated to automated matching %s", order.ID),
		Body:          fmt.Sprintf("No carrier accepted order %s, it was handed to automated matching.", order.ID),
		CorrelationID: correlationID,
	})

	order.Status = entities.OrderEscalatedToMatching
	order.Escalated = true
	result := e.deps.Escalator.Escalate(ctx, order, correlationID)

	event := entities.EventOrderUnassignable
	update := entities.OrderStatusUpdate{
		OrderID:   order.ID,
		Status:    entities.OrderUnassignable,
		Escalated: true,
	}
	if result.Status == entities.OrderDispatched && result.AssignedCarrierID != nil {
		event = entities.EventOrderMatched
		update.Status = entities.OrderDispatched
		update.AssignedCarrierID = result.AssignedCarrierID
	}

	unlock = e.locks.Lock(order.ID)
	update.UpdatedAt = e.now()
	err = e.commit(ctx, update, event, correlationID)
	e.deps.States.Release(order.ID, epoch)
	unlock()
	if err != nil {
		e.log.Error("escalation outcome not recorded",
			logger.NewField("invariant", "escalation_outcome_recorded"),
			logger.NewField("order_id", order.ID),
			logger.NewField("correlation_id", correlationID),
			logger.NewField("error", err),
		)
		return nil, err
	}

	e.logTransition(event, order.ID, update.AssignedCarrierID, correlationID)
	if update.Status == entities.OrderUnassignable {
		e.notify(entities.Notification{
			Kind:          entities.NotificationUnassignable,
			OrderID:       order.ID,
			To:            owner,
			Subject:       fmt.Sprintf("Order %s unassignable", order.ID),
			Body:          fmt.Sprintf("No carrier could be found for order %s.", order.ID),
			CorrelationID: correlationID,
		})
	}

	return &entities.DispatchResult{
		OrderID:           order.ID,
		Status:            update.Status,
		AssignedCarrierID: update.AssignedCarrierID,
		Escalated:         true,
		Quote:             result.Quote,
		CorrelationID:     correlationID,
	}, nil
}

// Accept принимает предложение. Успешен, только если carrierID держит живое предложение по заказу.
func (e *Engine) Accept(ctx context.Context, orderID, carrierID, correlationID string) (*entities.AcceptResult, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}
	if strings.TrimSpace(carrierID) == "" {
		return nil, ErrInvalidCarrierID
	}

	unlock := e.locks.Lock(orderID)
	state, ok := e.deps.States.Get(orderID)
	if !ok || state.CarrierID != carrierID {
		unlock()
		return nil, ErrNotCurrentCarrier
	}
	if correlationID == "" {
		correlationID = resolveCorrelationID(ctx, state.CorrelationID)
	}

	order, err := e.deps.Orders.GetByID(ctx, orderID)
	if err != nil {
		unlock()
		if errors.Is(err, ErrOrderNotFound) {
			e.log.Error("live offer for unknown order",
				logger.NewField("invariant", "offer_has_order"),
				logger.NewField("order_id", orderID),
			)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	err = e.commit(ctx, entities.OrderStatusUpdate{
		OrderID:           orderID,
		Status:            entities.OrderAccepted,
		AssignedCarrierID: &carrierID,
		UpdatedAt:         e.now(),
	}, entities.EventOrderAccepted, correlationID)
	if err != nil {
		unlock()
		return nil, err
	}

	e.deps.States.CompareAndDelete(orderID, state.Epoch)
	e.cancelTimers(state)
	unlock()

	e.logTransition(entities.EventOrderAccepted, orderID, &carrierID, correlationID)

	carrier := e.carrierContact(ctx, carrierID)
	e.notify(entities.Notification{
		Kind:          entities.NotificationAcceptedOwner,
		OrderID:       orderID,
		To:            e.ownerContact(ctx, order.OwnerOrgID),
		Subject:       fmt.Sprintf("Order %s accepted", orderID),
		Body:          fmt.Sprintf("Carrier %s accepted order %s.", carrier.name, orderID),
		CorrelationID: correlationID,
	})
	e.notify(entities.Notification{
		Kind:          entities.NotificationAcceptedCarrier,
		OrderID:       orderID,
		To:            carrier.email,
		Subject:       fmt.Sprintf("Order %s confirmed", orderID),
		Body:          fmt.Sprintf("Hello %s, your acceptance of order %s is confirmed.", carrier.name, orderID),
		CorrelationID: correlationID,
	})

	return &entities.AcceptResult{
		OrderID:       orderID,
		Status:        entities.OrderAccepted,
		AcceptedBy:    carrierID,
		CorrelationID: correlationID,
	}, nil
}

// HandleTimer обрабатывает сработавший таймер. Задания устаревших эпох игнорируются.
func (e *Engine) HandleTimer(ctx context.Context, job entities.TimerJob) error {
	unlock := e.locks.Lock(job.OrderID)
	state, ok := e.deps.States.Get(job.OrderID)
	unlock()

	if !ok || state.Epoch != job.Epoch {
		TimersTotal.WithLabelValues(job.Kind.String(), "stale").Inc()
		e.log.Debug("stale timer ignored",
			logger.NewField("order_id", job.OrderID),
			logger.NewField("kind", job.Kind.String()),
			logger.NewField("epoch", job.Epoch),
		)
		return nil
	}
	ctx = correlation.WithID(ctx, state.CorrelationID)

	switch job.Kind {
	case entities.TimerReminder30, entities.TimerReminder10:
		TimersTotal.WithLabelValues(job.Kind.String(), "fired").Inc()
		contact := e.carrierContact(ctx, state.CarrierID)
		e.log.Info("offer reminder",
			logger.NewField("order_id", job.OrderID),
			logger.NewField("carrier_id", state.CarrierID),
			logger.NewField("kind", job.Kind.String()),
			logger.NewField("correlation_id", state.CorrelationID),
		)
		e.notify(reminderNotification(job.Kind, state, contact))
		return nil

	case entities.TimerExpiry:
		TimersTotal.WithLabelValues(job.Kind.String(), "fired").Inc()
		e.log.Info("offer expired",
			logger.NewField("order_id", job.OrderID),
			logger.NewField("carrier_id", state.CarrierID),
			logger.NewField("chain_index", state.Index),
			logger.NewField("correlation_id", state.CorrelationID),
		)

		_, err := e.dispatch(ctx, transition{
			orderID:       job.OrderID,
			startIndex:    state.Index + 1,
			correlationID: state.CorrelationID,
			expectEpoch:   job.Epoch,
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrConcurrentTransition), errors.Is(err, ErrOrderFinalized):
			e.log.Debug("expiry superseded by another transition",
				logger.NewField("order_id", job.OrderID),
				logger.NewField("error", err),
			)
			return nil
		case errors.Is(err, ErrOrderNotFound):
			e.log.Error("timer fired for unknown order",
				logger.NewField("invariant", "timer_has_order"),
				logger.NewField("order_id", job.OrderID),
			)
			return nil
		default:
			return fmt.Errorf("redispatch after expiry: %w", err)
		}

	default:
		e.log.Error("unknown timer kind",
			logger.NewField("invariant", "known_timer_kind"),
			logger.NewField("order_id", job.OrderID),
			logger.NewField("kind", job.Kind.String()),
		)
		return nil
	}
}

// Run обрабатывает сработавшие таймеры до отмены ctx.
func (e *Engine) Run(ctx context.Context) error {
	jobs := e.deps.Scheduler.Jobs()
	for {
		select {
		case <-ctx.Done():
			e.wg.Wait()
			return nil
		case job := <-jobs:
			e.wg.Add(1)
			go func() {
				defer e.wg.Done()
				if err := e.HandleTimer(ctx, job); err != nil {
					e.log.Error("handle timer",
						logger.NewField("order_id", job.OrderID),
						logger.NewField("kind", job.Kind.String()),
						logger.NewField("error", err),
					)
				}
			}()
		}
	}
}

func (e *Engine) LiveOffer(orderID string) (entities.DispatchState, bool) {
	return e.deps.States.Get(orderID)
}

// LiveOffers число живых предложений, значение дублируется в метрику dispatch_live_offers.
func (e *Engine) LiveOffers() int {
	n := e.deps.States.Len()
	LiveOffers.Set(float64(n))
	return n
}

// commit записывает смену статуса и событие истории в одной транзакции.
func (e *Engine) commit(
	ctx context.Context,
	update entities.OrderStatusUpdate,
	event entities.OrderEventType,
	correlationID string,
) error {
	err := e.deps.TxManager.Do(ctx, func(ctx context.Context) error {
		if err := e.deps.Orders.UpdateStatus(ctx, update); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		err := e.deps.Events.Append(ctx, entities.OrderEvent{
			OrderID:       update.OrderID,
			Event:         event,
			Status:        update.Status,
			CarrierID:     update.AssignedCarrierID,
			CorrelationID: correlationID,
			CreatedAt:     update.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("append order event: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit %s: %w", event, err)
	}

	TransitionsTotal.WithLabelValues(event.String()).Inc()
	return nil
}

func (e *Engine) armTimers(orderID string, epoch uint64, now, expiresAt time.Time) map[entities.TimerKind]entities.TimerHandle {
	timers := make(map[entities.TimerKind]entities.TimerHandle, 3)

	schedule := func(kind entities.TimerKind, at time.Time) {
		timers[kind] = e.deps.Scheduler.ScheduleAt(at, entities.TimerJob{
			Kind:    kind,
			OrderID: orderID,
			Epoch:   epoch,
		})
	}

	if at := expiresAt.Add(-reminder30Before); at.After(now) {
		schedule(entities.TimerReminder30, at)
	}
	if at := expiresAt.Add(-reminder10Before); at.After(now) {
		schedule(entities.TimerReminder10, at)
	}
	schedule(entities.TimerExpiry, expiresAt)

	return timers
}

// restoreLocked вызывается под блокировкой заказа, когда переход не записался.
// Заказ в хранилище по-прежнему закреплен за прежним перевозчиком, поэтому его предложение
// возвращается вместе с таймерами. Без прежнего предложения эпоха просто освобождается.
func (e *Engine) restoreLocked(orderID string, epoch uint64, prev *entities.DispatchState) {
	if prev == nil {
		e.deps.States.Release(orderID, epoch)
		return
	}

	now := e.now()
	state := *prev
	if !state.ExpiresAt.After(now) {
		state.ExpiresAt = now.Add(restoredExpiryDelay)
	}
	state.Timers = e.armTimers(orderID, epoch, now, state.ExpiresAt)

	if !e.deps.States.CompareAndSet(orderID, epoch, state) {
		e.cancelTimers(state)
		e.log.Error("previous offer not restored",
			logger.NewField("invariant", "epoch_stable_under_lock"),
			logger.NewField("order_id", orderID),
			logger.NewField("epoch", epoch),
		)
		return
	}

	e.log.Warn("transition failed, previous offer restored",
		logger.NewField("order_id", orderID),
		logger.NewField("carrier_id", state.CarrierID),
		logger.NewField("expires_at", state.ExpiresAt),
		logger.NewField("correlation_id", state.CorrelationID),
	)
}

func (e *Engine) cancelTimers(state entities.DispatchState) {
	for _, handle := range state.Timers {
		e.deps.Scheduler.Cancel(handle)
	}
}

func (e *Engine) logTransition(event entities.OrderEventType, orderID string, carrierID *string, correlationID string, extra ...logger.Field) {
	fields := []logger.Field{
		logger.NewField("order_id", orderID),
		logger.NewField("correlation_id", correlationID),
	}
	if carrierID != nil {
		fields = append(fields, logger.NewField("carrier_id", *carrierID))
	}
	e.log.Info(event.String(), append(fields, extra...)...)
}

func resolveCorrelationID(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if id, ok := correlation.FromContext(ctx); ok {
		return id
	}
	return correlation.New()
}
