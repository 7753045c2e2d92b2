package entities

import "errors"

// Ошибки хранилища, общие для всех сервисов.
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderAlreadyExists   = errors.New("order already exists")
	ErrCarrierNotFound      = errors.New("carrier not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrMalformedPolicy      = errors.New("malformed dispatch policy")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
)
