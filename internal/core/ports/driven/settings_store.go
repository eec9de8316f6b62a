package driven

import (
	"context"

	"github.com/DevWael/semantiq-search/internal/core/domain"
)

// SettingsStore persists the sync and search settings.
type SettingsStore interface {
	// Get retrieves the stored settings, or defaults if nothing is stored.
	Get(ctx context.Context) (*domain.Settings, error)

	// Save stores the settings.
	Save(ctx context.Context, settings *domain.Settings) error
}
