package info

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nahar/internal/assistant"
)

// FetchMsg asks the parent to load a view. Fresh skips today's cached copy.
type FetchMsg struct {
	View  assistant.InfoView
	Fresh bool
}

type SetTopicMsg struct{}

var titles = map[assistant.InfoView]string{
	assistant.ViewTech:     "Tech",
	assistant.ViewEconomic: "Economy",
	assistant.ViewMonthly:  "Monthly topic",
	assistant.ViewDaily:    "Daily facts",
}

var (
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Padding(0, 1)
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type KeyMap struct {
	Tech     key.Binding
	Economic key.Binding
	Monthly  key.Binding
	Daily    key.Binding
	Refresh  key.Binding
	Topic    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tech:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "tech")),
		Economic: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "economy")),
		Monthly:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "monthly")),
		Daily:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "daily")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Topic:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "set topic")),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Tech, k.Economic, k.Monthly, k.Daily, k.Refresh, k.Topic}
}

type Model struct {
	viewport viewport.Model
	keys     KeyMap
	view     assistant.InfoView
	loading  bool
	loaded   bool
	err      string
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height-2),
		keys:     DefaultKeyMap(),
		view:     assistant.ViewDaily,
	}
}

func (m Model) Keys() KeyMap { return m.keys }

// Current is the selected page.
func (m Model) Current() assistant.InfoView { return m.view }

// Loaded reports whether the current view has content or an error to show.
func (m Model) Loaded() bool { return m.loaded }

// SetLoading marks view as being fetched.
func (m *Model) SetLoading(view assistant.InfoView) {
	m.view = view
	m.loading = true
	m.err = ""
}

// SetContent shows a fetched page. Results for a view no longer selected are dropped.
func (m *Model) SetContent(view assistant.InfoView, content string, err string) {
	if view != m.view {
		return
	}
	m.loading = false
	m.loaded = true
	m.err = err
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		selectView := func(v assistant.InfoView) (Model, tea.Cmd) {
			return m, func() tea.Msg { return FetchMsg{View: v} }
		}
		switch {
		case key.Matches(msg, m.keys.Tech):
			return selectView(assistant.ViewTech)
		case key.Matches(msg, m.keys.Economic):
			return selectView(assistant.ViewEconomic)
		case key.Matches(msg, m.keys.Monthly):
			return selectView(assistant.ViewMonthly)
		case key.Matches(msg, m.keys.Daily):
			return selectView(assistant.ViewDaily)
		case key.Matches(msg, m.keys.Refresh):
			view := m.view
			return m, func() tea.Msg { return FetchMsg{View: view, Fresh: true} }
		case key.Matches(msg, m.keys.Topic):
			return m, func() tea.Msg { return SetTopicMsg{} }
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var tabs []string
	for _, v := range assistant.InfoViews {
		if v == m.view {
			tabs = append(tabs, activeStyle.Render(titles[v]))
		} else {
			tabs = append(tabs, inactiveStyle.Render(titles[v]))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch {
	case m.loading:
		body = mutedStyle.Render("Loading...")
	case m.err != "":
		body = errorStyle.Render(m.err)
	case !m.loaded:
		body = mutedStyle.Render("Press 1-4 to choose a page.")
	default:
		body = m.viewport.View()
	}
	return strings.Join([]string{header, "", body}, "\n")
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
