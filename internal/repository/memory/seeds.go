package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	ordersFile        = "orders.json"
	carriersFile      = "carriers.json"
	complianceFile    = "compliance.json"
	policiesFile      = "dispatch-policies.json"
	invitationsFile   = "invitations.json"
	organizationsFile = "organizations.json"
)

type OrderSeed struct {
	ID              string  `json:"id"`
	OwnerOrgID      string  `json:"ownerOrgId"`
	Ref             string  `json:"ref"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Pallets         int     `json:"pallets"`
	Weight          float64 `json:"weight"`
	Status          string  `json:"status"`
	ForceEscalation bool    `json:"forceEscalation"`
}

type CarrierSeed struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Premium bool     `json:"premium"`
	Score   *float64 `json:"score"`
}

type ComplianceSeed struct {
	CarrierID string `json:"carrierId"`
	Status    string `json:"status"`
}

type PolicySeed struct {
	OrderID  string   `json:"orderId"`
	Chain    []string `json:"chain"`
	SLAHours float64  `json:"slaAcceptHours"`
}

type InvitationSeed struct {
	OwnerOrgID      string   `json:"industryOrgId"`
	InvitedCarriers []string `json:"invitedCarriers"`
}

type OrganizationSeed struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Plan        string   `json:"plan"`
	AddOns      []string `json:"addons"`
	NotifyEmail string   `json:"notifyEmail"`
}

// Seeds содержимое каталога с сидами. Отсутствующий файл дает пустой список.
type Seeds struct {
	Orders        []OrderSeed
	Carriers      []CarrierSeed
	Compliance    []ComplianceSeed
	Policies      []PolicySeed
	Invitations   []InvitationSeed
	Organizations []OrganizationSeed
}

func LoadSeeds(dir string) (*Seeds, error) {
	seeds := &Seeds{}

	files := []struct {
		name string
		dst  any
	}{
		{ordersFile, &seeds.Orders},
		{carriersFile, &seeds.Carriers},
		{complianceFile, &seeds.Compliance},
		{policiesFile, &seeds.Policies},
		{invitationsFile, &seeds.Invitations},
		{organizationsFile, &seeds.Organizations},
	}

	for _, f := range files {
		if err := loadJSON(filepath.Join(dir, f.name), f.dst); err != nil {
			return nil, err
		}
	}

	return seeds, nil
}

func loadJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seed %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode seed %s: %w", path, err)
	}
	return nil
}
