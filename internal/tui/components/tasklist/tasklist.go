package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/tasks"
)

type AddTaskMsg struct{}

type EditTaskMsg struct {
	Task models.Task
}

type DeleteTaskMsg struct {
	ID string
}

type CompleteTaskMsg struct {
	ID string
}

type SummaryMsg struct{}

type Item struct {
	Task      models.Task
	Countdown tasks.Countdown
}

func (i Item) Title() string {
	mark := "○ "
	if i.Task.IsCompleted {
		mark = "✓ "
	}
	prio := ""
	if i.Task.Priority == models.PriorityHigh {
		prio = " !"
	}
	return mark + i.Task.Title + prio
}

func (i Item) Description() string {
	due := i.Task.DueDate
	if i.Task.HasDueTime() {
		due += " " + i.Task.DueTime
	}
	left := "expired"
	if !i.Countdown.Expired {
		left = fmt.Sprintf("%dd %dh %dm left", i.Countdown.Days, i.Countdown.Hours, i.Countdown.Minutes)
	}
	return fmt.Sprintf("%s · %s · due %s · %s", i.Task.Category, i.Task.Priority, due, left)
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Complete key.Binding
	Summary  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c", " "),
			key.WithHelp("c/space", "complete"),
		),
		Summary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "summary"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Complete, k.Summary}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
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

// SetTasks shows active tasks in due order with their countdowns at now.
func (m *Model) SetTasks(active []models.Task, now time.Time, loc *time.Location) {
	sorted := tasks.SortByDue(active)
	items := make([]list.Item, len(sorted))
	for i, t := range sorted {
		items[i] = Item{Task: t, Countdown: tasks.TaskCountdown(t, now, loc)}
	}
	m.list.SetItems(items)
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Len() int { return len(m.list.Items()) }

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
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Summary):
			return m, func() tea.Msg { return SummaryMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditTaskMsg{Task: i.Task} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: i.Task.ID} }
			}
		case key.Matches(msg, m.keys.Complete):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Task.IsCompleted {
				return m, func() tea.Msg { return CompleteTaskMsg{ID: i.Task.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
