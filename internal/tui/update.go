package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nahar/internal/assistant"
	"github.com/julianstephens/nahar/internal/constants"
	apperrors "github.com/julianstephens/nahar/internal/errors"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/tasks"
	"github.com/julianstephens/nahar/internal/tui/components/archive"
	"github.com/julianstephens/nahar/internal/tui/components/habits"
	"github.com/julianstephens/nahar/internal/tui/components/info"
	"github.com/julianstephens/nahar/internal/tui/components/settings"
	"github.com/julianstephens/nahar/internal/tui/components/tasklist"
	"github.com/julianstephens/nahar/internal/tui/forms"
)

// headerLines is the height taken by tabs, banner, status and help.
const headerLines = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateTaskForm, constants.StateDietForm, constants.StateTopicForm, constants.StateSettingsForm:
		// The form drives itself through its own messages; app messages
		// still update the views behind it.
		switch msg.(type) {
		case tea.WindowSizeMsg, tickMsg, sweptMsg, tasksLoadedMsg, habitsLoadedMsg,
			archiveLoadedMsg, summaryMsg, infoLoadedMsg, doneMsg:
		default:
			return m.updateForm(msg)
		}
	case constants.StateConfirmDelete:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return m.updateConfirmDelete(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - headerLines
		w := msg.Width - 4
		m.taskList.SetSize(w, h)
		m.habitsModel.SetSize(w, h)
		m.archiveModel.SetSize(w, h)
		m.infoModel.SetSize(w, h)
		m.settingsModel.SetSize(msg.Width, h)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case tickMsg:
		return m, tea.Batch(m.sweep(), m.loadTasks(), tick())

	case sweptMsg:
		if msg.err != nil {
			logger.Warn("Overdue sweep failed", "error", msg.err)
			return m, nil
		}
		if len(msg.result.Archived) == 0 {
			return m, nil
		}
		m.status = fmt.Sprintf("Archived %d overdue task(s)", len(msg.result.Archived))
		return m, tea.Batch(m.loadTasks(), m.loadArchive())

	case tasksLoadedMsg:
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		first := m.active == nil
		m.active = msg.active
		m.taskList.SetTasks(msg.active, msg.now, msg.loc)
		m.alerts = tasks.HighPriority(msg.active, msg.now, msg.loc)
		if first {
			return m, m.notifyAlert(m.alerts)
		}
		return m, nil

	case habitsLoadedMsg:
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.habitsModel.SetDay(msg.day, m.app.Language())
		return m, nil

	case archiveLoadedMsg:
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.archiveModel.SetEntries(msg.tasks, msg.habits, m.app.Language())
		return m, nil

	case summaryMsg:
		m.summary = msg.text
		return m, nil

	case infoLoadedMsg:
		if errors.Is(msg.err, assistant.ErrTopicRequired) {
			m.pendingInfo = &info.FetchMsg{View: msg.view}
			return m.openTopicForm()
		}
		errText := ""
		if msg.err != nil {
			errText = apperrors.UserMessage(msg.err)
		}
		m.infoModel.SetContent(msg.view, msg.content, errText)
		return m, nil

	case doneMsg:
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		if msg.status != "" {
			m.status = msg.status
		}
		var cmds []tea.Cmd
		if msg.reload.tasks {
			cmds = append(cmds, m.loadTasks())
		}
		if msg.reload.habits {
			cmds = append(cmds, m.loadHabits())
		}
		if msg.reload.archive {
			cmds = append(cmds, m.loadArchive())
		}
		if m.pendingInfo != nil {
			pending := *m.pendingInfo
			m.pendingInfo = nil
			m.infoModel.SetLoading(pending.View)
			cmds = append(cmds, m.fetchInfo(pending.View, pending.Fresh))
		}
		return m, tea.Batch(cmds...)

	// Component requests
	case tasklist.AddTaskMsg:
		today, err := m.app.Today()
		if err != nil {
			return m, errCmd(err)
		}
		m.editingTask = nil
		m.taskFields = forms.NewTaskFields(today)
		return m.openForm(constants.StateTaskForm, forms.NewTaskForm(m.taskFields))

	case tasklist.EditTaskMsg:
		task := msg.Task
		m.editingTask = &task
		m.taskFields = forms.TaskFieldsFrom(task)
		return m.openForm(constants.StateTaskForm, forms.NewTaskForm(m.taskFields))

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case tasklist.CompleteTaskMsg:
		return m, m.completeTask(msg.ID)

	case tasklist.SummaryMsg:
		m.summary = "Generating summary..."
		return m, m.fetchSummary()

	case habits.ToggleHabitMsg:
		return m, m.toggleHabit(msg.ID)

	case habits.DietPlanMsg:
		m.dietPlan = new(string)
		return m.openForm(constants.StateDietForm, forms.NewDietForm(m.dietPlan))

	case archive.DeleteArchivedMsg:
		return m, m.deleteArchived(msg.ID)

	case info.FetchMsg:
		m.infoModel.SetLoading(msg.View)
		return m, m.fetchInfo(msg.View, msg.Fresh)

	case info.SetTopicMsg:
		return m.openTopicForm()

	case settings.EditSettingsMsg:
		current, err := m.app.Settings()
		if err != nil {
			return m, errCmd(err)
		}
		m.settingsFields = forms.SettingsFieldsFrom(current)
		return m.openForm(constants.StateSettingsForm, forms.NewSettingsForm(m.settingsFields))
	}

	return m.updateActive(msg)
}

// updateActive forwards msg to the component of the current tab.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case constants.StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateArchive:
		m.archiveModel, cmd = m.archiveModel.Update(msg)
	case constants.StateInfo:
		m.infoModel, cmd = m.infoModel.Update(msg)
	case constants.StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Quit) && !m.filtering():
		m.quitting = true
		return true, tea.Quit
	case m.filtering():
		return false, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % constants.TabCount
		m.status = ""
		return true, m.enterTab()
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state + constants.TabCount - 1) % constants.TabCount
		m.status = ""
		return true, m.enterTab()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	}
	return false, nil
}

// filtering reports whether the active list is taking text input, in which
// case q and ? are typed rather than handled.
func (m Model) filtering() bool {
	switch m.state {
	case constants.StateTasks:
		return m.taskList.Filtering()
	case constants.StateHabits:
		return m.habitsModel.Filtering()
	case constants.StateArchive:
		return m.archiveModel.Filtering()
	}
	return false
}

// enterTab loads the info page the first time the Info tab is shown.
func (m *Model) enterTab() tea.Cmd {
	if m.state == constants.StateInfo && !m.infoModel.Loaded() {
		view := m.infoModel.Current()
		m.infoModel.SetLoading(view)
		return m.fetchInfo(view, false)
	}
	return nil
}

func (m Model) openForm(state constants.SessionState, form *huh.Form) (tea.Model, tea.Cmd) {
	if m.state < constants.TabCount {
		m.previousState = m.state
	}
	m.state = state
	m.form = form
	return m, m.form.Init()
}

func (m Model) openTopicForm() (tea.Model, tea.Cmd) {
	m.topic = new(string)
	return m.openForm(constants.StateTopicForm, forms.NewTopicForm(m.topic))
}

func (m Model) closeForm() Model {
	m.state = m.previousState
	m.form = nil
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.pendingInfo = nil
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.pendingInfo = nil
		return m.closeForm(), cmd
	case huh.StateCompleted:
		return m.submitForm()
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	state := m.state
	m = m.closeForm()

	switch state {
	case constants.StateTaskForm:
		return m, m.saveTask(m.editingTask, m.taskFields.Draft())

	case constants.StateDietForm:
		plan := strings.TrimSpace(*m.dietPlan)
		if plan == "" {
			return m, nil
		}
		m.status = "Syncing diet plan..."
		return m, m.syncDiet(plan)

	case constants.StateTopicForm:
		topic := strings.TrimSpace(*m.topic)
		if topic == "" {
			m.pendingInfo = nil
			return m, nil
		}
		if m.pendingInfo == nil && m.infoModel.Current() == assistant.ViewMonthly {
			m.pendingInfo = &info.FetchMsg{View: assistant.ViewMonthly}
		}
		return m, m.setTopic(topic)

	case constants.StateSettingsForm:
		current, err := m.app.Settings()
		if err != nil {
			return m, errCmd(err)
		}
		updated, err := m.settingsFields.Apply(current)
		if err != nil {
			return m, errCmd(err)
		}
		if err := m.app.SaveSettings(updated); err != nil {
			return m, errCmd(err)
		}
		m.settingsModel.SetSettings(updated, m.app.HasGenerator())
		m.status = "Settings saved"
		return m, tea.Batch(m.loadTasks(), m.loadHabits(), m.loadArchive())
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.taskToDeleteID
		m.taskToDeleteID = ""
		m.state = m.previousState
		return m, m.deleteTask(id)
	case "n", "N", "esc", "q":
		m.taskToDeleteID = ""
		m.state = m.previousState
	}
	return m, nil
}
