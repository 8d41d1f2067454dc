package settingsRepo

import (
	"context"
	"fmt"
	"time"

	"bookingadmin/database/docstore"
	"bookingadmin/models"
)

// SettingsRepository reads and writes the two singleton documents, config/widget and
// settings/googleCalendar. Both return docstore.ErrNotFound until first written.
type SettingsRepository interface {
	GetWidgetConfig(ctx context.Context) (*models.WidgetConfig, error)
	SaveWidgetConfig(ctx context.Context, cfg models.WidgetConfig) error
	GetCalendarSettings(ctx context.Context) (*models.CalendarSettings, error)
	MergeCalendarSettings(ctx context.Context, fields map[string]interface{}) error
}

type storeSettingsRepo struct {
	store docstore.Store
}

func NewSettingsRepo(store docstore.Store) SettingsRepository {
	return &storeSettingsRepo{store: store}
}

func (r *storeSettingsRepo) GetWidgetConfig(ctx context.Context) (*models.WidgetConfig, error) {
	doc, err := r.store.Get(ctx, docstore.Config, docstore.WidgetConfigID)
	if err != nil {
		return nil, err
	}
	var cfg models.WidgetConfig
	if err := doc.DataTo(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode widget config: %w", err)
	}
	return &cfg, nil
}

// SaveWidgetConfig overwrites the whole document; the last writer wins.
func (r *storeSettingsRepo) SaveWidgetConfig(ctx context.Context, cfg models.WidgetConfig) error {
	return r.store.Set(ctx, docstore.Config, docstore.WidgetConfigID, cfg)
}

func (r *storeSettingsRepo) GetCalendarSettings(ctx context.Context) (*models.CalendarSettings, error) {
	doc, err := r.store.Get(ctx, docstore.Settings, docstore.CalendarSettingsID)
	if err != nil {
		return nil, err
	}
	var s models.CalendarSettings
	if err := doc.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to decode calendar settings: %w", err)
	}
	return &s, nil
}

// MergeCalendarSettings writes the given fields and stamps updatedAt, keeping the rest
// of the document (notably tokens written by the OAuth callback).
func (r *storeSettingsRepo) MergeCalendarSettings(ctx context.Context, fields map[string]interface{}) error {
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = time.Now().UTC()
	return r.store.Merge(ctx, docstore.Settings, docstore.CalendarSettingsID, merged)
}
