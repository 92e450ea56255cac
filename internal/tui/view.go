package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nahar/internal/constants"
)

var tabTitles = []string{"Tasks", "Habits", "Archive", "Info", "Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateTasks:
		content = m.viewTasks()
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateArchive:
		content = docStyle.Render(m.archiveModel.View())
	case constants.StateInfo:
		content = docStyle.Render(m.infoModel.View())
	case constants.StateSettings:
		content = m.settingsModel.View()
	case constants.StateTaskForm, constants.StateDietForm, constants.StateTopicForm, constants.StateSettingsForm:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewAlertBanner(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTasks() string {
	list := m.taskList.View()
	if m.summary == "" {
		return docStyle.Render(list)
	}
	width := m.width - 8
	if width < 20 {
		width = 20
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		summaryStyle.Width(width).Render(m.summary),
		list,
	))
}

// viewAlertBanner lists open high-priority tasks due within the alert window.
func (m Model) viewAlertBanner() string {
	if len(m.alerts) == 0 {
		return ""
	}
	titles := make([]string, 0, len(m.alerts))
	for _, t := range m.alerts {
		titles = append(titles, fmt.Sprintf("%s (%s)", t.Title, t.DueDate))
	}
	return alertBannerStyle.Render(fmt.Sprintf("⚠ %d high-priority: %s", len(m.alerts), strings.Join(titles, ", ")))
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-headerLines,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this task?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
