package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"stormdesk-backend/causation"

	"github.com/google/uuid"
)

// ClaimStatus represents the lifecycle status of a claim
type ClaimStatus string

const (
	StatusOpen          ClaimStatus = "open"
	StatusInvestigating ClaimStatus = "investigating"
	StatusNegotiating   ClaimStatus = "negotiating"
	StatusSettled       ClaimStatus = "settled"
	StatusClosed        ClaimStatus = "closed"
)

// IndicatorStates maps causation indicator ids to their recorded state
type IndicatorStates map[string]causation.IndicatorInput

// Value implements driver.Valuer for JSONB
func (s IndicatorStates) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *IndicatorStates) Scan(value interface{}) error {
	if value == nil {
		*s = make(IndicatorStates)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*s = make(IndicatorStates)
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// CausationAnalysis is the persisted record of one causation evaluation
type CausationAnalysis struct {
	Result     causation.Result `json:"result"`
	AnalyzedAt time.Time        `json:"analyzed_at"`
}

// Value implements driver.Valuer for JSONB
func (a CausationAnalysis) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *CausationAnalysis) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Claim represents an insurance claim handled by a public adjuster
type Claim struct {
	ID     uuid.UUID   `json:"id"`
	UserID uuid.UUID   `json:"user_id"`
	Status ClaimStatus `json:"status"`

	// Intake
	ClientName      string `json:"client_name"`
	PropertyAddress string `json:"property_address"`
	CarrierName     string `json:"carrier_name"`
	PolicyNumber    string `json:"policy_number"`

	// Loss details
	PerilTested       string  `json:"peril_tested"`
	DamageType        string  `json:"damage_type"`
	EventDate         *string `json:"event_date"`
	DamageNoticedDate *string `json:"damage_noticed_date"`
	WeatherEvidence   *string `json:"weather_evidence"`
	RoofAge           *string `json:"roof_age"`

	// Carrier posture
	CarrierBlameTactics []string `json:"carrier_blame_tactics"`

	// Investigation
	IndicatorStates   IndicatorStates    `json:"indicator_states"`
	CausationAnalysis *CausationAnalysis `json:"causation_analysis"`

	// Generated correspondence
	GeneratedLetter    *string `json:"generated_letter"`
	RefineInstructions *string `json:"refine_instructions"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}
