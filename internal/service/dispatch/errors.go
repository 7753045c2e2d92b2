package dispatch

import (
	"errors"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID    = errors.New("invalid order id")
	ErrInvalidCarrierID  = errors.New("invalid carrier id")
	ErrInvalidStartIndex = errors.New("invalid start index")
	ErrNotCurrentCarrier = errors.New("carrier is not the current offer holder")
	ErrMalformedPolicy   = entities.ErrMalformedPolicy

	ErrFeatureNotEnabled = errors.New("feature not enabled")

	ErrOrderNotFound = entities.ErrOrderNotFound

	ErrOrderFinalized       = errors.New("order is finalized or escalating")
	ErrConcurrentTransition = errors.New("concurrent transition in progress")
)
