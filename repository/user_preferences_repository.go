package repository

import (
	"context"
	"errors"

	"stormdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserPreferencesRepository handles database operations for adjuster
// account preferences
type UserPreferencesRepository struct {
	db *pgxpool.Pool
}

// NewUserPreferencesRepository creates a new user preferences repository
func NewUserPreferencesRepository(db *pgxpool.Pool) *UserPreferencesRepository {
	return &UserPreferencesRepository{db: db}
}

// Get retrieves preferences for a user, returning the defaults when the user
// has never saved any.
func (r *UserPreferencesRepository) Get(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{
		UserID:             userID,
		EmailNotifications: true,
		AutoSaveDrafts:     true,
	}

	query := `
		SELECT user_id, email_notifications, auto_save_drafts, updated_at
		FROM user_preferences
		WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.EmailNotifications,
		&prefs.AutoSaveDrafts,
		&prefs.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return prefs, nil
		}
		return nil, err
	}

	return prefs, nil
}

// Upsert creates or updates preferences for a user
func (r *UserPreferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, email_notifications, auto_save_drafts, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			auto_save_drafts = EXCLUDED.auto_save_drafts,
			updated_at = NOW()
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		prefs.UserID,
		prefs.EmailNotifications,
		prefs.AutoSaveDrafts,
	).Scan(&prefs.UpdatedAt)
}
