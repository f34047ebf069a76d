package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atletia/storefront/internal/models"
	"github.com/go-chi/chi/v5"
)

// SettingsService is interface for site-settings requests
type SettingsService interface {
	// Get returns setting by key
	Get(ctx context.Context, key string) (*models.SiteSetting, error)
	// Put validates and stores a setting value
	Put(ctx context.Context, key string, value json.RawMessage) (*models.SiteSetting, error)
}

// SettingsHandler represents HTTP handler for site content
type SettingsHandler struct {
	svc SettingsService
}

// NewSettingsHandler creates new SettingsHandler instance
func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type settingResponse struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// GetSetting returns a site content document, e.g. the homepage layout
// 200 — setting value
// 404 — key does not exist
// 500 — internal error
func (sh *SettingsHandler) GetSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		setting, err := sh.svc.Get(r.Context(), key)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "setting not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(settingResponse{Key: setting.Key, Value: setting.Value}); err != nil {
			return
		}
	}
}

// PutSetting replaces a site content document
// 200 — stored
// 400 — invalid value
// 500 — internal error
func (sh *SettingsHandler) PutSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		var value json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		setting, err := sh.svc.Put(r.Context(), key, value)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidSetting):
				http.Error(w, "invalid setting", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(settingResponse{Key: setting.Key, Value: setting.Value}); err != nil {
			return
		}
	}
}
