package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"go.uber.org/zap"
)

// SettingsRepository stores the settings document as one JSONB row
type SettingsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *DB, logger *zap.Logger) repositories.SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the stored settings, or the defaults before the first save
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var (
		doc []byte
		s   models.Settings
	)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx,
		`SELECT document, updated_at, updated_by FROM system_settings WHERE id = 1`,
	).Scan(&doc, &s.UpdatedAt, &s.UpdatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		def := models.DefaultSettings()
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	updatedAt, updatedBy := s.UpdatedAt, s.UpdatedBy
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.UpdatedAt, s.UpdatedBy = updatedAt, updatedBy
	return &s, nil
}

// Save upserts the settings document
func (r *SettingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	query := `
		INSERT INTO system_settings (id, document, updated_at, updated_by)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET document = EXCLUDED.document,
		    updated_at = EXCLUDED.updated_at,
		    updated_by = EXCLUDED.updated_by
	`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, doc, settings.UpdatedAt, settings.UpdatedBy); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	r.logger.Debug("settings saved", zap.String("updated_by", settings.UpdatedBy))
	return nil
}
