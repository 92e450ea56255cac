package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/nahar/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}
	var haveLat, haveLon bool

	for key, value := range data {
		switch key {
		case constants.SettingLanguage:
			settings.Language = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingModel:
			settings.Model = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingLatitude:
			if value == "" {
				continue
			}
			lat, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing latitude: %w", err)
			}
			settings.Latitude = lat
			haveLat = true
		case constants.SettingLongitude:
			if value == "" {
				continue
			}
			lon, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing longitude: %w", err)
			}
			settings.Longitude = lon
			haveLon = true
		}
	}
	settings.LocationSet = haveLat && haveLon
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	m := map[string]string{
		constants.SettingLanguage:             settings.Language,
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingModel:                settings.Model,
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
	}
	if settings.LocationSet {
		m[constants.SettingLatitude] = strconv.FormatFloat(settings.Latitude, 'f', -1, 64)
		m[constants.SettingLongitude] = strconv.FormatFloat(settings.Longitude, 'f', -1, 64)
	}
	return m
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Language == "" {
		settings.Language = constants.DefaultLanguage
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.Model == "" {
		settings.Model = constants.DefaultModel
	}
}

// ValidLanguage reports whether generated content can be requested in lang.
func ValidLanguage(lang string) bool {
	for _, l := range constants.SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
