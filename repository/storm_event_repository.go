package repository

import (
	"context"
	"fmt"
	"time"

	"stormdesk-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StormEventRepository handles database operations for the imported storm
// event catalog used to corroborate claimed loss dates.
type StormEventRepository struct {
	db *pgxpool.Pool
}

// NewStormEventRepository creates a new storm event repository
func NewStormEventRepository(db *pgxpool.Pool) *StormEventRepository {
	return &StormEventRepository{db: db}
}

// Insert adds a storm event record
func (r *StormEventRepository) Insert(ctx context.Context, event *models.StormEvent) error {
	query := `
		INSERT INTO storm_events (
			peril_type, event_date, county, state, max_wind_gust_mph,
			hail_size_in, source, narrative
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		event.PerilType,
		event.EventDate,
		event.County,
		event.State,
		event.MaxWindGustMPH,
		event.HailSizeIn,
		event.Source,
		event.Narrative,
	).Scan(&event.ID, &event.CreatedAt)

	return err
}

// FindByPerilAndDate retrieves storm events of a peril type within the given
// date window, strongest first. County and state filters are optional.
func (r *StormEventRepository) FindByPerilAndDate(
	ctx context.Context,
	perilType string,
	from, to time.Time,
	county, state string,
	limit int,
) ([]models.StormEvent, error) {
	query := `
		SELECT id, peril_type, event_date, county, state, max_wind_gust_mph,
			hail_size_in, source, narrative, created_at
		FROM storm_events
		WHERE peril_type = $1 AND event_date BETWEEN $2 AND $3`

	args := []interface{}{perilType, from, to}
	argIndex := 4

	if county != "" {
		query += fmt.Sprintf(" AND county = $%d", argIndex)
		args = append(args, county)
		argIndex++
	}
	if state != "" {
		query += fmt.Sprintf(" AND state = $%d", argIndex)
		args = append(args, state)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY max_wind_gust_mph DESC NULLS LAST, event_date LIMIT $%d", argIndex)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query storm events: %w", err)
	}
	defer rows.Close()

	var events []models.StormEvent
	for rows.Next() {
		var event models.StormEvent
		err := rows.Scan(
			&event.ID,
			&event.PerilType,
			&event.EventDate,
			&event.County,
			&event.State,
			&event.MaxWindGustMPH,
			&event.HailSizeIn,
			&event.Source,
			&event.Narrative,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan storm event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating storm events: %w", err)
	}

	return events, nil
}

// CountAll returns the number of imported storm events
func (r *StormEventRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM storm_events`).Scan(&count)
	return count, err
}
