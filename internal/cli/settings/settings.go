package settings

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/tui/forms"
	"github.com/julianstephens/nahar/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`
	Edit bool `help:"Edit settings in a form."`

	Language             *string  `help:"Language for generated content (en|ar)."`
	Timezone             *string  `help:"IANA timezone, or 'Local' for the system timezone."`
	Lat                  *float64 `help:"Latitude used for prayer times."`
	Lon                  *float64 `help:"Longitude used for prayer times."`
	ClearLocation        bool     `help:"Forget the stored location."`
	Model                *string  `help:"Text generation model."`
	NotificationsEnabled *bool    `name:"notifications" help:"Enable or disable tray notifications."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		printSettings(settings)
		return nil
	}

	if c.Edit {
		fields := forms.SettingsFieldsFrom(settings)
		if err := forms.NewSettingsForm(fields).Run(); err != nil {
			return fmt.Errorf("settings form: %w", err)
		}
		if settings, err = fields.Apply(settings); err != nil {
			return err
		}
		if err := ctx.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Println("Settings updated successfully.")
		return nil
	}

	updated, err := c.apply(&settings)
	if err != nil {
		return err
	}
	if !updated {
		fmt.Println("No changes specified. Use --list to view settings, --edit for a form, or flags to update them.")
		return nil
	}
	if err := ctx.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func (c *SettingsCmd) apply(settings *models.Settings) (bool, error) {
	updated := false
	if c.Language != nil {
		if !models.ValidLanguage(*c.Language) {
			return false, fmt.Errorf("unsupported language %q", *c.Language)
		}
		settings.Language = *c.Language
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return false, fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.ClearLocation {
		if c.Lat != nil || c.Lon != nil {
			return false, fmt.Errorf("--clear-location cannot be combined with --lat/--lon")
		}
		settings.Latitude, settings.Longitude, settings.LocationSet = 0, 0, false
		updated = true
	}
	if c.Lat != nil || c.Lon != nil {
		if c.Lat == nil || c.Lon == nil {
			return false, fmt.Errorf("--lat and --lon must be given together")
		}
		if *c.Lat < -90 || *c.Lat > 90 {
			return false, fmt.Errorf("latitude %v is outside [-90, 90]", *c.Lat)
		}
		if *c.Lon < -180 || *c.Lon > 180 {
			return false, fmt.Errorf("longitude %v is outside [-180, 180]", *c.Lon)
		}
		settings.Latitude, settings.Longitude, settings.LocationSet = *c.Lat, *c.Lon, true
		updated = true
	}
	if c.Model != nil {
		if *c.Model == "" {
			return false, fmt.Errorf("model cannot be empty")
		}
		settings.Model = *c.Model
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	return updated, nil
}

func printSettings(settings models.Settings) {
	fmt.Println("Current Settings:")
	fmt.Printf("  Language:              %s\n", settings.Language)
	fmt.Printf("  Timezone:              %s\n", settings.Timezone)
	if settings.LocationSet {
		fmt.Printf("  Location:              %.4f, %.4f\n", settings.Latitude, settings.Longitude)
	} else {
		fmt.Println("  Location:              (not set)")
	}
	fmt.Printf("  Model:                 %s\n", settings.Model)
	fmt.Println("\nNotification Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
}
