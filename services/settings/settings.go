package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bookingadmin/database/docstore"
	settingsRepo "bookingadmin/database/repository/settings"
	"bookingadmin/models"

	"github.com/gin-gonic/gin/binding"
)

var (
	ErrUnknownField = errors.New("unknown settings field")
	ErrInvalidValue = errors.New("invalid settings value")
)

// SettingsService reads and writes the widget configuration and the calendar settings.
// Writes are read-modify-write on a single document; the last writer wins.
type SettingsService interface {
	// GetWidgetConfig returns the stored configuration, or the defaults when none is stored.
	GetWidgetConfig(ctx context.Context) (*models.WidgetConfig, error)
	SaveWidgetConfig(ctx context.Context, cfg models.WidgetConfig) (*models.WidgetConfig, error)
	// PatchWidgetConfig sets each dotted JSON path ("workingHours.start") on the current
	// configuration and saves the result.
	PatchWidgetConfig(ctx context.Context, fields map[string]interface{}) (*models.WidgetConfig, error)

	GetCalendarSettings(ctx context.Context) (*models.CalendarSettings, error)
	SaveCalendarCredentials(ctx context.Context, creds models.CalendarCredentials) (*models.CalendarSettings, error)
}

// DefaultSettingsService is the production implementation.
type DefaultSettingsService struct {
	Repo settingsRepo.SettingsRepository
}

func (s *DefaultSettingsService) GetWidgetConfig(ctx context.Context) (*models.WidgetConfig, error) {
	cfg, err := s.Repo.GetWidgetConfig(ctx)
	if errors.Is(err, docstore.ErrNotFound) {
		def := models.DefaultWidgetConfig()
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch widget config: %w", err)
	}
	return cfg, nil
}

func (s *DefaultSettingsService) SaveWidgetConfig(ctx context.Context, cfg models.WidgetConfig) (*models.WidgetConfig, error) {
	if err := s.Repo.SaveWidgetConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save widget config: %w", err)
	}
	return &cfg, nil
}

func (s *DefaultSettingsService) PatchWidgetConfig(ctx context.Context, fields map[string]interface{}) (*models.WidgetConfig, error) {
	current, err := s.GetWidgetConfig(ctx)
	if err != nil {
		return nil, err
	}
	patched, err := ApplyPatch(*current, fields)
	if err != nil {
		return nil, err
	}
	return s.SaveWidgetConfig(ctx, patched)
}

// ApplyPatch sets dotted JSON paths on a copy of cfg. Paths must name existing fields, values
// must fit the field type and the result must pass the same binding rules as a full save.
func ApplyPatch(cfg models.WidgetConfig, fields map[string]interface{}) (models.WidgetConfig, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to encode widget config: %w", err)
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return cfg, fmt.Errorf("failed to decode widget config: %w", err)
	}
	known := fieldPaths(models.DefaultWidgetConfig())

	for path, value := range fields {
		if !known[path] {
			return cfg, fmt.Errorf("%w: %q", ErrUnknownField, path)
		}
		parts := strings.Split(path, ".")
		cur := doc
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]interface{})
			if !ok {
				next = map[string]interface{}{}
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = value
	}

	raw, err = json.Marshal(doc)
	if err != nil {
		return cfg, fmt.Errorf("failed to encode patched config: %w", err)
	}
	var out models.WidgetConfig
	if err := json.Unmarshal(raw, &out); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if err := binding.Validator.ValidateStruct(&out); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return out, nil
}

// fieldPaths lists the dotted leaf paths of the widget config's JSON form.
func fieldPaths(cfg models.WidgetConfig) map[string]bool {
	cfg.CustomCSS = " "
	raw, _ := json.Marshal(cfg)
	doc := map[string]interface{}{}
	_ = json.Unmarshal(raw, &doc)

	paths := map[string]bool{}
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			if sub, ok := v.(map[string]interface{}); ok {
				walk(prefix+k+".", sub)
				continue
			}
			paths[prefix+k] = true
		}
	}
	walk("", doc)
	return paths
}

// GetCalendarSettings returns an empty value when nothing is stored yet.
func (s *DefaultSettingsService) GetCalendarSettings(ctx context.Context) (*models.CalendarSettings, error) {
	cs, err := s.Repo.GetCalendarSettings(ctx)
	if errors.Is(err, docstore.ErrNotFound) {
		return &models.CalendarSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar settings: %w", err)
	}
	return cs, nil
}

// SaveCalendarCredentials merges the credentials into the settings document, leaving any
// stored tokens in place.
func (s *DefaultSettingsService) SaveCalendarCredentials(ctx context.Context, creds models.CalendarCredentials) (*models.CalendarSettings, error) {
	err := s.Repo.MergeCalendarSettings(ctx, map[string]interface{}{
		"credentials.client_id":     creds.ClientID,
		"credentials.client_secret": creds.ClientSecret,
		"credentials.redirect_uris": creds.RedirectURIs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save calendar credentials: %w", err)
	}
	return s.GetCalendarSettings(ctx)
}
