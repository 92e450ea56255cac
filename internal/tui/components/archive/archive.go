package archive

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	habitsvc "github.com/julianstephens/nahar/internal/habits"
	"github.com/julianstephens/nahar/internal/models"
)

type DeleteArchivedMsg struct {
	ID string
}

// Item is one archived task or habit record.
type Item struct {
	ID         string
	Name       string
	Kind       string // "task" or "habit"
	Status     models.ArchiveStatus
	Date       string
	ArchivedAt time.Time
}

func (i Item) Title() string {
	mark := "✗ "
	if i.Status == models.StatusCompleted {
		mark = "✓ "
	}
	return mark + i.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.Kind, statusLabel(i.Status), i.Date)
}

func (i Item) FilterValue() string { return i.Name }

func statusLabel(s models.ArchiveStatus) string {
	if s == models.StatusCompleted {
		return "completed"
	}
	return "not executed"
}

type KeyMap struct {
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete task record"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Delete}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Archive"
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

// SetEntries merges archived tasks and habits, newest first.
func (m *Model) SetEntries(archivedTasks []models.ArchivedTask, archivedHabits []models.ArchivedHabit, lang string) {
	entries := make([]Item, 0, len(archivedTasks)+len(archivedHabits))
	for _, t := range archivedTasks {
		entries = append(entries, Item{
			ID: t.ID, Name: t.Title, Kind: "task", Status: t.Status,
			Date: t.DueDate, ArchivedAt: t.ArchivedAt,
		})
	}
	for _, h := range archivedHabits {
		entries = append(entries, Item{
			ID: h.ID, Name: habitsvc.Title(h.TitleKey, lang), Kind: "habit", Status: h.Status,
			Date: h.Date, ArchivedAt: h.ArchivedAt,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ArchivedAt.After(entries[j].ArchivedAt)
	})

	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	m.list.SetItems(items)
}

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
		if key.Matches(msg, m.keys.Delete) {
			if item, ok := m.list.SelectedItem().(Item); ok && item.Kind == "task" {
				return m, func() tea.Msg {
					return DeleteArchivedMsg{ID: item.ID}
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  The archive is empty."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
