package entities

import "time"

type DispatchPolicy struct {
	OrderID  string
	Chain    []string
	SLAHours float64
}

func (p DispatchPolicy) SLA() time.Duration {
	return time.Duration(p.SLAHours * float64(time.Hour))
}

// TimerHandle непрозрачный идентификатор таймера планировщика.
type TimerHandle string

type TimerKind string

const (
	TimerReminder30 TimerKind = "reminder_30"
	TimerReminder10 TimerKind = "reminder_10"
	TimerExpiry     TimerKind = "expiry"
)

func (k TimerKind) String() string {
	return string(k)
}

type TimerJob struct {
	Kind    TimerKind
	OrderID string
	Epoch   uint64
}

// DispatchState существует только пока предложение перевозчику не принято и не истекло.
type DispatchState struct {
	OrderID       string
	Index         int
	CarrierID     string
	ExpiresAt     time.Time
	Timers        map[TimerKind]TimerHandle
	CorrelationID string
	Epoch         uint64
}

type DispatchRequest struct {
	OrderID         string
	StartIndex      int
	ForceEscalation bool
	// ActorOrgID пустой для внутренних вызовов (таймеры), проверка прав тогда не выполняется.
	ActorOrgID      string
	CorrelationID   string
}

type DispatchResult struct {
	OrderID           string
	Status            OrderStatusType
	AssignedCarrierID *string
	ExpiresAt         *time.Time
	Escalated         bool
	Quote             *Quote
	CorrelationID     string
}

type AcceptResult struct {
	OrderID       string
	Status        OrderStatusType
	AcceptedBy    string
	CorrelationID string
}

type Quote struct {
	Price    float64
	Currency string
}

type EscalationResult struct {
	Status            OrderStatusType
	AssignedCarrierID *string
	Quote             *Quote
}
