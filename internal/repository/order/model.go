package order

import "time"

type OrderDB struct {
	ID                string
	OwnerOrgID        string
	Ref               string
	Origin            string
	Destination       string
	Pallets           int
	WeightKg          float64
	Status            string
	AssignedCarrierID *string
	ForceEscalation   bool
	Escalated         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
