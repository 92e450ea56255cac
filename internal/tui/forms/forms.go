// Package forms builds the huh forms shared by the TUI and interactive commands.
package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/utils"
)

// TaskFields backs the task add/edit form.
type TaskFields struct {
	Title       string
	Description string
	Category    models.Category
	Priority    models.Priority
	DueDate     string
	DueTime     string
}

// NewTaskFields prefills a blank task due today.
func NewTaskFields(today string) *TaskFields {
	return &TaskFields{
		Category: models.CategoryPersonal,
		Priority: models.PriorityMedium,
		DueDate:  today,
	}
}

func TaskFieldsFrom(t models.Task) *TaskFields {
	return &TaskFields{
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		DueTime:     t.DueTime,
	}
}

func (f *TaskFields) Draft() models.TaskDraft {
	return models.TaskDraft{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Category:    f.Category,
		Priority:    f.Priority,
		DueDate:     strings.TrimSpace(f.DueDate),
		DueTime:     strings.TrimSpace(f.DueTime),
	}
}

func notEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}

func validDate(s string) error {
	if !utils.ValidateDateFormat(strings.TrimSpace(s)) {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validOptionalTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(constants.TimeFormat, s); err != nil {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func NewTaskForm(f *TaskFields) *huh.Form {
	categories := make([]huh.Option[models.Category], 0, len(models.Categories))
	for _, c := range models.Categories {
		categories = append(categories, huh.NewOption(capitalize(string(c)), c))
	}
	priorities := make([]huh.Option[models.Priority], 0, len(models.Priorities))
	for _, p := range models.Priorities {
		priorities = append(priorities, huh.NewOption(capitalize(string(p)), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.Title).
				Validate(notEmpty("title")),
			huh.NewText().
				Title("Description").
				Value(&f.Description),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categories...).
				Value(&f.Category),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&f.Priority),
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD)").
				Value(&f.DueDate).
				Validate(validDate),
			huh.NewInput().
				Title("Due Time (HH:MM)").
				Description("Leave empty for end of day").
				Value(&f.DueTime).
				Validate(validOptionalTime),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewDietForm asks for a free-text diet plan.
func NewDietForm(plan *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Diet Plan").
				Description("Describe your meals and when you eat them").
				Value(plan).
				Validate(notEmpty("diet plan")),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewTopicForm(topic *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly Topic").
				Description("A subject to learn a little about every day").
				Value(topic).
				Validate(notEmpty("topic")),
		),
	).WithTheme(huh.ThemeDracula())
}

// SettingsFields backs the settings form.
type SettingsFields struct {
	Language             string
	Timezone             string
	Latitude             string
	Longitude            string
	Model                string
	NotificationsEnabled bool
}

func SettingsFieldsFrom(s models.Settings) *SettingsFields {
	f := &SettingsFields{
		Language:             s.Language,
		Timezone:             s.Timezone,
		Model:                s.Model,
		NotificationsEnabled: s.NotificationsEnabled,
	}
	if s.LocationSet {
		f.Latitude = strconv.FormatFloat(s.Latitude, 'f', -1, 64)
		f.Longitude = strconv.FormatFloat(s.Longitude, 'f', -1, 64)
	}
	return f
}

// Apply copies the form values onto settings.
func (f *SettingsFields) Apply(s models.Settings) (models.Settings, error) {
	s.Language = f.Language
	s.Timezone = strings.TrimSpace(f.Timezone)
	s.Model = strings.TrimSpace(f.Model)
	s.NotificationsEnabled = f.NotificationsEnabled

	lat, lon := strings.TrimSpace(f.Latitude), strings.TrimSpace(f.Longitude)
	if lat == "" && lon == "" {
		s.Latitude, s.Longitude, s.LocationSet = 0, 0, false
		return s, nil
	}
	latV, err := ParseCoordinate(lat, 90)
	if err != nil {
		return s, fmt.Errorf("latitude: %w", err)
	}
	lonV, err := ParseCoordinate(lon, 180)
	if err != nil {
		return s, fmt.Errorf("longitude: %w", err)
	}
	s.Latitude, s.Longitude, s.LocationSet = latV, lonV, true
	return s, nil
}

// ParseCoordinate parses a latitude or longitude bounded by ±limit.
func ParseCoordinate(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("%v is outside [-%v, %v]", v, limit, limit)
	}
	return v, nil
}

func NewSettingsForm(f *SettingsFields) *huh.Form {
	languages := make([]huh.Option[string], 0, len(constants.SupportedLanguages))
	for _, l := range constants.SupportedLanguages {
		languages = append(languages, huh.NewOption(l, l))
	}
	coordinate := func(limit float64) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			_, err := ParseCoordinate(s, limit)
			return err
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language").
				Options(languages...).
				Value(&f.Language),
			huh.NewInput().
				Title("Timezone (IANA name or 'Local')").
				Description("Examples: Local, UTC, Africa/Cairo, Europe/London").
				Value(&f.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(strings.TrimSpace(s)) {
						return fmt.Errorf("invalid timezone name")
					}
					return nil
				}),
			huh.NewInput().
				Title("Latitude").
				Description("Used for prayer times; leave both empty to disable").
				Value(&f.Latitude).
				Validate(coordinate(90)),
			huh.NewInput().
				Title("Longitude").
				Value(&f.Longitude).
				Validate(coordinate(180)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Model").
				Value(&f.Model).
				Validate(notEmpty("model")),
			huh.NewConfirm().
				Title("Enable Notifications").
				Value(&f.NotificationsEnabled),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmForm asks a yes/no question.
func NewConfirmForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
