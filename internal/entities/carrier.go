package entities

import "time"

type Carrier struct {
	ID             string
	Name           string
	Email          string
	Premium        bool
	QualityScore   *float64
	// SeedCompliance статус из сидов, используется когда сервис комплаенса недоступен.
	SeedCompliance ComplianceStatus
}

type ComplianceStatus string

const (
	ComplianceOK      ComplianceStatus = "OK"
	ComplianceBlocked ComplianceStatus = "BLOCKED"
	ComplianceUnknown ComplianceStatus = "UNKNOWN"
)

func (s ComplianceStatus) String() string {
	return string(s)
}

func ParseComplianceStatus(s string) ComplianceStatus {
	switch ComplianceStatus(s) {
	case ComplianceOK, ComplianceBlocked:
		return ComplianceStatus(s)
	default:
		return ComplianceUnknown
	}
}

type ComplianceEntry struct {
	Status    ComplianceStatus
	ExpiresAt time.Time
}
