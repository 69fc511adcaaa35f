package repository

import (
	"context"
	"time"

	"stormdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DraftJobRepository handles database operations for letter-draft jobs
type DraftJobRepository struct {
	db *pgxpool.Pool
}

// NewDraftJobRepository creates a new draft job repository
func NewDraftJobRepository(db *pgxpool.Pool) *DraftJobRepository {
	return &DraftJobRepository{db: db}
}

// Create creates a new draft job
func (r *DraftJobRepository) Create(ctx context.Context, job *models.DraftJob) error {
	query := `
		INSERT INTO draft_jobs (
			claim_id, letter_type, status, current_step, steps, error_message
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		job.ClaimID,
		job.LetterType,
		job.Status,
		job.CurrentStep,
		job.Steps,
		job.ErrorMessage,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)

	return err
}

// GetByID retrieves a draft job by ID
func (r *DraftJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DraftJob, error) {
	job := &models.DraftJob{}
	query := `
		SELECT id, claim_id, letter_type, status, current_step, steps, error_message,
			created_at, updated_at, completed_at
		FROM draft_jobs
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.ClaimID,
		&job.LetterType,
		&job.Status,
		&job.CurrentStep,
		&job.Steps,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	// Safeguard in case Scan didn't handle NULL properly
	if job.Steps == nil {
		job.Steps = make(models.DraftSteps, 0)
	}

	return job, nil
}

// GetByClaimID retrieves the latest draft job for a claim
func (r *DraftJobRepository) GetByClaimID(ctx context.Context, claimID uuid.UUID) (*models.DraftJob, error) {
	job := &models.DraftJob{}
	query := `
		SELECT id, claim_id, letter_type, status, current_step, steps, error_message,
			created_at, updated_at, completed_at
		FROM draft_jobs
		WHERE claim_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.QueryRow(ctx, query, claimID).Scan(
		&job.ID,
		&job.ClaimID,
		&job.LetterType,
		&job.Status,
		&job.CurrentStep,
		&job.Steps,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	if job.Steps == nil {
		job.Steps = make(models.DraftSteps, 0)
	}

	return job, nil
}

// UpdateStatus updates the status of a draft job
func (r *DraftJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.DraftJobStatus) error {
	query := `
		UPDATE draft_jobs SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

// UpdateProgress updates the progress of a draft job
func (r *DraftJobRepository) UpdateProgress(ctx context.Context, id uuid.UUID, currentStep string, steps models.DraftSteps) error {
	query := `
		UPDATE draft_jobs SET
			current_step = $2,
			steps = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, currentStep, steps)
	return err
}

// Complete marks a draft job as completed
func (r *DraftJobRepository) Complete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	query := `
		UPDATE draft_jobs SET
			status = $2,
			completed_at = $3,
			updated_at = $3
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.JobStatusCompleted, now)
	return err
}

// DeleteByClaimID removes all draft jobs for a claim
func (r *DraftJobRepository) DeleteByClaimID(ctx context.Context, claimID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM draft_jobs WHERE claim_id = $1`, claimID)
	return err
}

// Fail marks a draft job as failed
func (r *DraftJobRepository) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `
		UPDATE draft_jobs SET
			status = $2,
			error_message = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.JobStatusFailed, errorMessage)
	return err
}
