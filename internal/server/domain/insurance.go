package domain

import "time"

// Insurance sources and coverage types are fixed vocabularies shared with
// the frontend. Stored as their upper-case names.
const (
	InsuranceSourceEmployer = "EMPLOYER"
	InsuranceSourcePrivate  = "PRIVATE"
	InsuranceSourceOther    = "OTHER"
)

const (
	InsuranceTypeTreatment  = "TREATMENT"
	InsuranceTypeIncome     = "INCOME"
	InsuranceTypeDisability = "DISABILITY"
	InsuranceTypeLife       = "LIFE"
	InsuranceTypePension    = "PENSION"
	InsuranceTypeUnknown    = "UNKNOWN"
)

func IsInsuranceSource(s string) bool {
	switch s {
	case InsuranceSourceEmployer, InsuranceSourcePrivate, InsuranceSourceOther:
		return true
	}
	return false
}

func IsInsuranceType(t string) bool {
	switch t {
	case InsuranceTypeTreatment, InsuranceTypeIncome, InsuranceTypeDisability,
		InsuranceTypeLife, InsuranceTypePension, InsuranceTypeUnknown:
		return true
	}
	return false
}

// InsuranceProfile is one insurance a user has registered for themselves.
// A user may hold any number of profiles.
type InsuranceProfile struct {
	ID           int64
	UserID       int64
	Source       string
	ProviderName string
	ProductName  string
	Notes        string
	Active       bool
	ValidFrom    string // ISO date, stored the way the frontend sends it
	ValidTo      string
}

// InsuranceProduct is a catalog entry the frontend renders for browsing.
type InsuranceProduct struct {
	ID              int64
	Name            string
	Description     string
	CanBuyPrivately bool
	ProviderName    string
	ProviderWebsite string
	Categories      string // comma separated coverage types
}

// InsuranceSnapshot is the user's quick self-assessment of current
// coverage. Saving a new one replaces the previous; at most one per user.
type InsuranceSnapshot struct {
	ID        int64
	UserID    int64
	Source    string
	Types     string // comma separated coverage types
	Uncertain bool
	CreatedAt time.Time
}

const InsuranceRequestStatusSent = "SENT"

// InsuranceRequest is a submitted request record. Content holds the
// serialized payload; rendering it for download is out of this service's
// hands.
type InsuranceRequest struct {
	ID          int64
	UserID      int64
	Status      string
	Content     string
	CreatedAt   time.Time
	SubmittedAt time.Time
}
