package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/nahar/internal/models"
)

func TestView(t *testing.T) {
	tests := []struct {
		name      string
		settings  models.Settings
		hasAPIKey bool
		storage   Storage
		want      []string
		notWant   []string
	}{
		{
			name:     "fresh install",
			settings: models.Settings{Language: "en", Timezone: "UTC", Model: "gemini-2.5-flash"},
			want:     []string{"not set (prayer times disabled)", "missing (nahar keyring set-api-key)", "off"},
			notWant:  []string{"Storage"},
		},
		{
			name: "configured",
			settings: models.Settings{
				Language: "ar", Timezone: "Asia/Riyadh", Model: "gemini-2.5-flash",
				Latitude: 24.7136, Longitude: 46.6753, LocationSet: true, NotificationsEnabled: true,
			},
			hasAPIKey: true,
			storage:   Storage{Backend: "postgres", Path: "postgres://nahar:****@db/nahar"},
			want:      []string{"24.7136, 46.6753", "configured", "Asia/Riyadh", "postgres://nahar:****@db/nahar"},
			notWant:   []string{"not set", "missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.settings, tt.hasAPIKey, 100, 40)
			m.SetStorage(tt.storage)
			view := m.View()
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("view missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(view, w) {
					t.Errorf("view should not contain %q", w)
				}
			}
		})
	}
}

func TestEditKey(t *testing.T) {
	m := New(models.Settings{}, false, 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if cmd == nil {
		t.Fatal("'e' should request the settings form")
	}
	if _, ok := cmd().(EditSettingsMsg); !ok {
		t.Error("expected EditSettingsMsg")
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Error("other keys should be ignored")
	}
}
