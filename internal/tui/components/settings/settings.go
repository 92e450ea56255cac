package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nahar/internal/models"
)

type EditSettingsMsg struct{}

type KeyMap struct {
	Edit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit settings")),
	}
}

func (k KeyMap) Bindings() []key.Binding { return []key.Binding{k.Edit} }

// Storage describes where the app keeps its data.
type Storage struct {
	Backend string
	Path    string
}

type Model struct {
	settings  models.Settings
	hasAPIKey bool
	storage   Storage
	keys      KeyMap
	width     int
	height    int
}

type field struct{ label, value string }

type section struct {
	title  string
	fields []field
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(18)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func New(settings models.Settings, hasAPIKey bool, width, height int) Model {
	return Model{
		settings:  settings,
		hasAPIKey: hasAPIKey,
		keys:      DefaultKeyMap(),
		width:     width,
		height:    height,
	}
}

func (m *Model) SetSettings(settings models.Settings, hasAPIKey bool) {
	m.settings = settings
	m.hasAPIKey = hasAPIKey
}

func (m *Model) SetStorage(s Storage) { m.storage = s }

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Edit) {
		return m, func() tea.Msg { return EditSettingsMsg{} }
	}
	return m, nil
}

// missing marks values the user still has to provide.
const missing = "\x00"

func (m Model) sections() []section {
	location := missing + "not set (prayer times disabled)"
	if m.settings.LocationSet {
		location = fmt.Sprintf("%.4f, %.4f", m.settings.Latitude, m.settings.Longitude)
	}
	apiKey := missing + "missing (nahar keyring set-api-key)"
	if m.hasAPIKey {
		apiKey = "configured"
	}
	notifications := "off"
	if m.settings.NotificationsEnabled {
		notifications = "on"
	}

	out := []section{
		{title: "General", fields: []field{
			{"Language", m.settings.Language},
			{"Timezone", m.settings.Timezone},
			{"Location", location},
		}},
		{title: "Assistant", fields: []field{
			{"Model", m.settings.Model},
			{"API key", apiKey},
		}},
		{title: "Notifications", fields: []field{
			{"Desktop alerts", notifications},
		}},
	}
	if m.storage.Backend != "" {
		out = append(out, section{title: "Storage", fields: []field{
			{"Backend", m.storage.Backend},
			{"Location", m.storage.Path},
		}})
	}
	return out
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	for i, s := range m.sections() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(titleStyle.Render(s.title))
		for _, f := range s.fields {
			value := valueStyle.Render(f.value)
			if strings.HasPrefix(f.value, missing) {
				value = missingStyle.Render(strings.TrimPrefix(f.value, missing))
			}
			b.WriteString("\n" + labelStyle.Render(f.label) + value)
		}
	}
	b.WriteString("\n\n" + hintStyle.Render("Press 'e' to edit settings"))

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 4).Render(b.String()))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
