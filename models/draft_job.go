package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DraftJobStatus represents the status of a letter-draft job
type DraftJobStatus string

const (
	JobStatusPending    DraftJobStatus = "pending"
	JobStatusInProgress DraftJobStatus = "in_progress"
	JobStatusCompleted  DraftJobStatus = "completed"
	JobStatusFailed     DraftJobStatus = "failed"
)

// LetterType identifies which correspondence a draft job produces
type LetterType string

const (
	LetterTypeDemand           LetterType = "demand_letter"
	LetterTypeRebuttal         LetterType = "rebuttal_letter"
	LetterTypeProofOfLossCover LetterType = "proof_of_loss_cover"
)

// DraftStep represents a step in the letter drafting process
type DraftStep struct {
	Name        string `json:"name"`
	Status      string `json:"status"` // "pending", "in_progress", "completed", "failed"
	Description string `json:"description,omitempty"`
}

// DraftSteps represents a list of drafting steps
type DraftSteps []DraftStep

// Value implements driver.Valuer for JSONB
func (d DraftSteps) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB
func (d *DraftSteps) Scan(value interface{}) error {
	if value == nil {
		*d = make(DraftSteps, 0)
		return nil
	}

	// Handle different types that pgx might return for JSONB
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*d = make(DraftSteps, 0)
		return nil
	}

	if len(bytes) == 0 {
		*d = make(DraftSteps, 0)
		return nil
	}

	return json.Unmarshal(bytes, d)
}

// DraftJob represents a background letter-drafting job for a claim
type DraftJob struct {
	ID           uuid.UUID      `json:"id"`
	ClaimID      uuid.UUID      `json:"claim_id"`
	LetterType   LetterType     `json:"letter_type"`
	Status       DraftJobStatus `json:"status"`
	CurrentStep  *string        `json:"current_step,omitempty"`
	Steps        DraftSteps     `json:"steps"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}
