package repository

import (
	"context"
	"errors"

	"github.com/atletia/storefront/internal/models"
	"github.com/atletia/storefront/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	selectSettingByKeyQuery = `
						SELECT id, key, value, created_at, updated_at FROM site_settings
						WHERE key = $1
`
	upsertSettingQuery = `
						INSERT INTO site_settings (key, value)
						VALUES ($1, $2)
						ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
						RETURNING id, key, value, created_at, updated_at
`
)

// SettingsRepository implements SettingsRepository interface
type SettingsRepository struct {
	db *postgres.DB
}

// NewSettingsRepository creates new SettingsRepository instance
func NewSettingsRepository(db *postgres.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting returns setting by key
func (sr *SettingsRepository) GetSetting(ctx context.Context, key string) (*models.SiteSetting, error) {
	setting := models.SiteSetting{}
	err := sr.db.QueryRow(ctx, selectSettingByKeyQuery, key).Scan(&setting.ID, &setting.Key,
		&setting.Value, &setting.CreatedAt, &setting.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &setting, nil
}

// PutSetting creates or replaces setting value
func (sr *SettingsRepository) PutSetting(ctx context.Context, setting *models.SiteSetting) (*models.SiteSetting, error) {
	err := sr.db.QueryRow(ctx, upsertSettingQuery, setting.Key, setting.Value).Scan(&setting.ID,
		&setting.Key, &setting.Value, &setting.CreatedAt, &setting.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return setting, nil
}
