package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/atletia/storefront/internal/models"
)

// SettingsRepository is interface for interacting with site settings
type SettingsRepository interface {
	// GetSetting returns setting by key
	GetSetting(ctx context.Context, key string) (*models.SiteSetting, error)
	// PutSetting creates or replaces setting value
	PutSetting(ctx context.Context, setting *models.SiteSetting) (*models.SiteSetting, error)
}

// SettingsService manages editable site content such as the homepage layout
type SettingsService struct {
	repo SettingsRepository
}

// NewSettingsService creates new SettingsService instance
func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns setting by key
func (ss *SettingsService) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	return ss.repo.GetSetting(ctx, key)
}

// Put validates and stores a setting value
func (ss *SettingsService) Put(ctx context.Context, key string, value json.RawMessage) (*models.SiteSetting, error) {
	if strings.TrimSpace(key) == "" || !json.Valid(value) {
		return nil, models.ErrInvalidSetting
	}

	return ss.repo.PutSetting(ctx, &models.SiteSetting{Key: key, Value: value})
}
