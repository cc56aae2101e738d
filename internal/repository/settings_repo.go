package repository

import (
	"database/sql"
	"fmt"

	"brainsmath/internal/database"
	"brainsmath/internal/models"
)

// SettingsRepository handles database operations for user settings
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create inserts a settings row for a user
func (r *SettingsRepository) Create(userID int64, theme, font string) (*models.Settings, error) {
	query := `
		INSERT INTO settings (user_id, theme, font)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, theme, font)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}

	return &models.Settings{
		ID:     id,
		UserID: userID,
		Theme:  theme,
		Font:   font,
	}, nil
}

// GetByUser retrieves the settings row for a user
func (r *SettingsRepository) GetByUser(userID int64) (*models.Settings, error) {
	query := `
		SELECT id, user_id, theme, font
		FROM settings
		WHERE user_id = ?
	`
	settings := &models.Settings{}
	err := r.db.QueryRow(query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.Theme,
		&settings.Font,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Update replaces the theme and font for a user
func (r *SettingsRepository) Update(userID int64, theme, font string) error {
	query := `
		UPDATE settings
		SET theme = ?, font = ?
		WHERE user_id = ?
	`
	if _, err := r.db.Exec(query, theme, font, userID); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
