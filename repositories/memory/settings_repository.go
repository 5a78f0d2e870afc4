package memory

import (
	"context"
	"sync"

	"github.com/greysolve/outreach-console/models"
)

// SettingsRepository implements repositories.SettingsRepository in memory
type SettingsRepository struct {
	mu       sync.RWMutex
	settings models.Settings
}

// NewSettingsRepository creates a repository holding initial
func NewSettingsRepository(initial *models.Settings) *SettingsRepository {
	return &SettingsRepository{settings: cloneSettings(*initial)}
}

func cloneSettings(s models.Settings) models.Settings {
	s.Security.IPWhitelist = append([]string(nil), s.Security.IPWhitelist...)
	return s
}

// Get returns the current settings
func (r *SettingsRepository) Get(_ context.Context) (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := cloneSettings(r.settings)
	return &s, nil
}

// Save replaces the settings
func (r *SettingsRepository) Save(_ context.Context, settings *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = cloneSettings(*settings)
	return nil
}
