package storage

import (
	"context"
	"fmt"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
)

// GetSettings loads settings with defaults applied for anything unset.
func GetSettings(ctx context.Context, p Provider) (models.Settings, error) {
	raw := map[string]string{}
	if _, err := ReadJSON(ctx, p, constants.KeySettings, &raw); err != nil {
		return models.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	settings, err := models.MapToSettings(raw)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func SaveSettings(ctx context.Context, p Provider, settings models.Settings) error {
	return WriteJSON(ctx, p, constants.KeySettings, models.SettingsToMap(settings))
}

// EnsureDefaultSettings writes default settings when none are stored yet.
func EnsureDefaultSettings(ctx context.Context, p Provider) error {
	if _, ok, err := p.Get(ctx, constants.KeySettings); err != nil || ok {
		return err
	}
	settings := models.Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled}
	models.ApplyDefaultSettings(&settings)
	return SaveSettings(ctx, p, settings)
}
