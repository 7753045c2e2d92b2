package order

import (
	"errors"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidCarrierID = errors.New("invalid carrier id")
	ErrInvalidFilter    = errors.New("invalid carrier orders filter")
	ErrOrderNotFound    = entities.ErrOrderNotFound
)
