package dispatch_test

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/statestore"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/correlation"
	"dispatch/pkg/logger"
	"dispatch/pkg/tx"
	"github.com/google/uuid"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeOrders struct {
	mu     sync.Mutex
	orders map[string]entities.Order

	// updateErr возвращается из UpdateStatus, пока не сброшен.
	updateErr error
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, entities.ErrOrderNotFound
	}
	return &o, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, u entities.OrderStatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	o, ok := f.orders[u.OrderID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	o.Status = u.Status
	o.AssignedCarrierID = u.AssignedCarrierID
	o.Escalated = o.Escalated || u.Escalated
	o.UpdatedAt = u.UpdatedAt
	f.orders[u.OrderID] = o
	return nil
}

func (f *fakeOrders) failUpdates(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateErr = err
}

func (f *fakeOrders) get(id string) entities.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id]
}

type fakeEvents struct {
	mu     sync.Mutex
	events []entities.OrderEvent
}

func (f *fakeEvents) Append(_ context.Context, e entities.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEvents) names() []entities.OrderEventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.OrderEventType, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Event)
	}
	return out
}

type fakeCarriers map[string]entities.Carrier

func (f fakeCarriers) GetByID(_ context.Context, id string) (*entities.Carrier, error) {
	c, ok := f[id]
	if !ok {
		return nil, entities.ErrCarrierNotFound
	}
	return &c, nil
}

type fakeOrganizations map[string]entities.Organization

func (f fakeOrganizations) GetByID(_ context.Context, id string) (*entities.Organization, error) {
	o, ok := f[id]
	if !ok {
		return nil, entities.ErrOrganizationNotFound
	}
	return &o, nil
}

type fakePolicies map[string]entities.DispatchPolicy

func (f fakePolicies) Resolve(_ context.Context, orderID string) (*entities.DispatchPolicy, error) {
	p := f[orderID]
	p.OrderID = orderID
	return &p, nil
}

type fakeCompliance struct {
	mu       sync.Mutex
	statuses map[string]entities.ComplianceStatus
	calls    []string

	// hook вызывается при каждом запросе статуса, до ответа.
	hook func(carrierID string)

	// correlations id корреляции из контекста каждого запроса, по порядку calls.
	correlations []string
}

func (f *fakeCompliance) Status(ctx context.Context, carrierID string) entities.ComplianceStatus {
	id, _ := correlation.FromContext(ctx)

	f.mu.Lock()
	f.calls = append(f.calls, carrierID)
	f.correlations = append(f.correlations, id)
	hook := f.hook
	st, ok := f.statuses[carrierID]
	f.mu.Unlock()

	if hook != nil {
		hook(carrierID)
	}
	if !ok {
		return entities.ComplianceUnknown
	}
	return st
}

type fakeEntitlements map[string]bool

func (f fakeEntitlements) HasFeatureWithContext(_ context.Context, actorOrgID string, _ entities.FeatureType, _ string) (bool, error) {
	return f[actorOrgID], nil
}

type fakeEscalator struct {
	mu     sync.Mutex
	result entities.EscalationResult
	calls  int
}

func (f *fakeEscalator) Escalate(_ context.Context, _ entities.Order, _ string) entities.EscalationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result
}

func (f *fakeEscalator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []entities.Notification
}

func (f *fakeNotifier) Enqueue(n entities.Notification) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return true
}

func (f *fakeNotifier) recipients(kind entities.NotificationKind) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, n := range f.sent {
		if n.Kind == kind {
			out = append(out, n.To)
		}
	}
	return out
}

type scheduled struct {
	at  time.Time
	job entities.TimerJob
}

// fakeScheduler ничего не запускает сам: тесты забирают задания и вызывают HandleTimer.
type fakeScheduler struct {
	mu       sync.Mutex
	pending  map[entities.TimerHandle]scheduled
	canceled map[entities.TimerHandle]struct{}
	jobs     chan entities.TimerJob
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		pending:  make(map[entities.TimerHandle]scheduled),
		canceled: make(map[entities.TimerHandle]struct{}),
		jobs:     make(chan entities.TimerJob, 16),
	}
}

func (f *fakeScheduler) ScheduleAt(at time.Time, job entities.TimerJob) entities.TimerHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := entities.TimerHandle(uuid.NewString())
	f.pending[h] = scheduled{at: at, job: job}
	return h
}

func (f *fakeScheduler) Cancel(h entities.TimerHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pending[h]; ok {
		f.canceled[h] = struct{}{}
	}
	delete(f.pending, h)
}

func (f *fakeScheduler) Jobs() <-chan entities.TimerJob {
	return f.jobs
}

// take снимает взведенное задание заданного вида, как будто таймер сработал.
func (f *fakeScheduler) take(orderID string, kind entities.TimerKind) (scheduled, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for h, s := range f.pending {
		if s.job.OrderID == orderID && s.job.Kind == kind {
			delete(f.pending, h)
			return s, true
		}
	}
	return scheduled{}, false
}

func (f *fakeScheduler) pendingFor(orderID string) []scheduled {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []scheduled
	for _, s := range f.pending {
		if s.job.OrderID == orderID {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeScheduler) canceledCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.canceled)
}

type env struct {
	orders        *fakeOrders
	events        *fakeEvents
	carriers      fakeCarriers
	organizations fakeOrganizations
	policies      fakePolicies
	compliance    *fakeCompliance
	entitlements  fakeEntitlements
	escalator     *fakeEscalator
	notifier      *fakeNotifier
	scheduler     *fakeScheduler
	states        *statestore.Store
	engine        *dispatch.Engine
}

func newEnv(chain []string, slaHours float64) *env {
	e := &env{
		orders: &fakeOrders{orders: map[string]entities.Order{
			"ord-1": {ID: "ord-1", OwnerOrgID: "org-1", Ref: "REF-1", Status: entities.OrderNew},
		}},
		events: &fakeEvents{},
		carriers: fakeCarriers{
			"B1": {ID: "B1", Name: "Transports B1", Email: "b1@carrier.test"},
			"B2": {ID: "B2", Name: "Transports B2", Email: "b2@carrier.test"},
			"C1": {ID: "C1", Name: "Transports C1", Email: "c1@carrier.test"},
			"C2": {ID: "C2", Name: "Transports C2", Email: "c2@carrier.test"},
		},
		organizations: fakeOrganizations{
			"org-1": {ID: "org-1", Plan: entities.PlanIndustryBase, NotifyEmail: "owner@industry.test"},
		},
		policies:     fakePolicies{"ord-1": {Chain: chain, SLAHours: slaHours}},
		compliance:   &fakeCompliance{statuses: map[string]entities.ComplianceStatus{}},
		entitlements: fakeEntitlements{"org-1": true},
		escalator:    &fakeEscalator{result: entities.EscalationResult{Status: entities.OrderUnassignable}},
		notifier:     &fakeNotifier{},
		scheduler:    newFakeScheduler(),
		states:       statestore.New(),
	}

	e.engine = dispatch.New(dispatch.Deps{
		Orders:        e.orders,
		Events:        e.events,
		Carriers:      e.carriers,
		Organizations: e.organizations,
		Policies:      e.policies,
		Compliance:    e.compliance,
		Entitlements:  e.entitlements,
		Escalator:     e.escalator,
		Notifier:      e.notifier,
		Scheduler:     e.scheduler,
		States:        e.states,
		TxManager:     tx.NewNop(),
	}, dispatch.Config{NotifyTo: "dispatch@ops.test"}, logger.NewNop()).
		WithClock(func() time.Time { return baseTime })

	return e
}
