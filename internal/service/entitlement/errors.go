package entitlement

import (
	"errors"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrganizationID = errors.New("invalid organization id")
	ErrOrganizationNotFound  = entities.ErrOrganizationNotFound
)
