package repository

import (
	"context"
	"fmt"

	"stormdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClaimRepository handles database operations for claims
type ClaimRepository struct {
	db *pgxpool.Pool
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Create creates a new claim
func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	query := `
		INSERT INTO claims (
			user_id, status, client_name, property_address, carrier_name,
			policy_number, peril_tested, damage_type, event_date,
			damage_noticed_date, weather_evidence, roof_age,
			carrier_blame_tactics, indicator_states, causation_analysis,
			generated_letter, refine_instructions
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		claim.UserID,
		claim.Status,
		claim.ClientName,
		claim.PropertyAddress,
		claim.CarrierName,
		claim.PolicyNumber,
		claim.PerilTested,
		claim.DamageType,
		claim.EventDate,
		claim.DamageNoticedDate,
		claim.WeatherEvidence,
		claim.RoofAge,
		claim.CarrierBlameTactics,
		claim.IndicatorStates,
		claim.CausationAnalysis,
		claim.GeneratedLetter,
		claim.RefineInstructions,
	).Scan(&claim.ID, &claim.CreatedAt, &claim.UpdatedAt)

	return err
}

const claimColumns = `id, user_id, status, client_name, property_address, carrier_name,
		policy_number, peril_tested, damage_type, event_date,
		damage_noticed_date, weather_evidence, roof_age,
		carrier_blame_tactics, indicator_states, causation_analysis,
		generated_letter, refine_instructions,
		created_at, updated_at, closed_at`

func scanClaim(row interface{ Scan(...interface{}) error }) (*models.Claim, error) {
	claim := &models.Claim{}
	err := row.Scan(
		&claim.ID,
		&claim.UserID,
		&claim.Status,
		&claim.ClientName,
		&claim.PropertyAddress,
		&claim.CarrierName,
		&claim.PolicyNumber,
		&claim.PerilTested,
		&claim.DamageType,
		&claim.EventDate,
		&claim.DamageNoticedDate,
		&claim.WeatherEvidence,
		&claim.RoofAge,
		&claim.CarrierBlameTactics,
		&claim.IndicatorStates,
		&claim.CausationAnalysis,
		&claim.GeneratedLetter,
		&claim.RefineInstructions,
		&claim.CreatedAt,
		&claim.UpdatedAt,
		&claim.ClosedAt,
	)
	if err != nil {
		return nil, err
	}

	if claim.IndicatorStates == nil {
		claim.IndicatorStates = make(models.IndicatorStates)
	}

	return claim, nil
}

// GetByID retrieves a claim by ID
func (r *ClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE id = $1`, claimColumns)
	return scanClaim(r.db.QueryRow(ctx, query, id))
}

// Update updates a claim
func (r *ClaimRepository) Update(ctx context.Context, claim *models.Claim) error {
	query := `
		UPDATE claims SET
			status = $2,
			client_name = $3,
			property_address = $4,
			carrier_name = $5,
			policy_number = $6,
			peril_tested = $7,
			damage_type = $8,
			event_date = $9,
			damage_noticed_date = $10,
			weather_evidence = $11,
			roof_age = $12,
			carrier_blame_tactics = $13,
			indicator_states = $14,
			causation_analysis = $15,
			generated_letter = $16,
			refine_instructions = $17,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		claim.ID,
		claim.Status,
		claim.ClientName,
		claim.PropertyAddress,
		claim.CarrierName,
		claim.PolicyNumber,
		claim.PerilTested,
		claim.DamageType,
		claim.EventDate,
		claim.DamageNoticedDate,
		claim.WeatherEvidence,
		claim.RoofAge,
		claim.CarrierBlameTactics,
		claim.IndicatorStates,
		claim.CausationAnalysis,
		claim.GeneratedLetter,
		claim.RefineInstructions,
	).Scan(&claim.UpdatedAt)

	return err
}

// UpdateCausationAnalysis updates only the stored causation analysis
func (r *ClaimRepository) UpdateCausationAnalysis(ctx context.Context, id uuid.UUID, analysis *models.CausationAnalysis) error {
	query := `
		UPDATE claims SET
			causation_analysis = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, analysis)
	return err
}

// UpdateGeneratedLetter updates only the generated letter content
func (r *ClaimRepository) UpdateGeneratedLetter(ctx context.Context, id uuid.UUID, letter string) error {
	query := `
		UPDATE claims SET
			generated_letter = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, letter)
	return err
}

// ListByUserID retrieves all claims for a user
func (r *ClaimRepository) ListByUserID(ctx context.Context, userID uuid.UUID, status *models.ClaimStatus, limit, offset int) ([]*models.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE user_id = $1`, claimColumns)

	args := []interface{}{userID}
	argIndex := 2

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}

	return claims, rows.Err()
}

// Delete deletes a claim
func (r *ClaimRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM claims WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
