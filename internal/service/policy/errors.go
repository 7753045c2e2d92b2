package policy

import (
	"errors"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID  = errors.New("invalid order id")
	ErrMalformedPolicy = entities.ErrMalformedPolicy
	ErrOrderNotFound   = entities.ErrOrderNotFound
)
