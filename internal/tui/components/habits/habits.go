package habits

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	habitsvc "github.com/julianstephens/nahar/internal/habits"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/prayer"
)

type ToggleHabitMsg struct {
	ID string
}

type DietPlanMsg struct{}

type Item struct {
	Habit models.Habit
	Lang  string
}

func (i Item) Title() string {
	title := habitsvc.Title(i.Habit.TitleKey, i.Lang)
	if i.Habit.IsCompleted {
		return "✓ " + title
	}
	return "○ " + title
}

func (i Item) Description() string {
	status := "not completed today"
	if i.Habit.IsCompleted {
		status = "completed today"
	}
	if i.Habit.HasTime() {
		return i.Habit.Time + " · " + status
	}
	return status
}

func (i Item) FilterValue() string { return habitsvc.Title(i.Habit.TitleKey, i.Lang) }

type KeyMap struct {
	Toggle key.Binding
	Diet   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m/space", "toggle"),
		),
		Diet: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "diet plan"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Toggle, k.Diet}
}

var warningStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("214")).
	Italic(true).
	PaddingLeft(2)

type Model struct {
	list    list.Model
	keys    KeyMap
	warning string
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = keys.Bindings
	l.AdditionalFullHelpKeys = keys.Bindings

	return Model{
		list: l,
		keys: keys,
	}
}

// SetDay shows the habits of day, titled in lang.
func (m *Model) SetDay(day habitsvc.Day, lang string) {
	items := make([]list.Item, len(day.Habits))
	for i, h := range day.Habits {
		items[i] = Item{Habit: h, Lang: lang}
	}
	m.list.SetItems(items)

	switch {
	case day.PrayerErr == nil:
		m.warning = ""
	case errors.Is(day.PrayerErr, prayer.ErrNoLocation):
		m.warning = "Set a location in Settings to track Fajr."
	default:
		m.warning = "Prayer times unavailable, Fajr is hidden."
	}
}

func (m Model) Warning() string { return m.warning }

func (m Model) Keys() KeyMap { return m.keys }

// Filtering reports whether the list is taking filter input.
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Diet):
			return m, func() tea.Msg { return DietPlanMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	view := m.list.View()
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		view = "\n  No habits for today."
	}
	if m.warning != "" {
		return warningStyle.Render(m.warning) + "\n" + view
	}
	return view
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-1)
}
