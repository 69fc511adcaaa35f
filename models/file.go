package models

import (
	"time"

	"github.com/google/uuid"
)

// FileCategory classifies a claim document
type FileCategory string

const (
	FileCategoryPhoto          FileCategory = "photo"
	FileCategoryReport         FileCategory = "report"
	FileCategoryPolicy         FileCategory = "policy"
	FileCategoryCorrespondence FileCategory = "correspondence"
	FileCategoryEstimate       FileCategory = "estimate"
)

// File represents a document or photo attached to a claim
type File struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	ClaimID     *uuid.UUID   `json:"claim_id,omitempty"`
	Category    FileCategory `json:"category"`
	Filename    string       `json:"filename"`
	MimeType    string       `json:"mime_type"`
	Size        int64        `json:"size"`
	StoragePath string       `json:"storage_path"`
	CreatedAt   time.Time    `json:"created_at"`
}
