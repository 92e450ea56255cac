package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/storage"
	"github.com/julianstephens/nahar/internal/tui/components/archive"
	"github.com/julianstephens/nahar/internal/tui/components/habits"
	"github.com/julianstephens/nahar/internal/tui/components/info"
	"github.com/julianstephens/nahar/internal/tui/components/settings"
	"github.com/julianstephens/nahar/internal/tui/components/tasklist"
	"github.com/julianstephens/nahar/internal/tui/forms"
)

type Model struct {
	app           *cli.Context
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	taskList      tasklist.Model
	habitsModel   habits.Model
	archiveModel  archive.Model
	infoModel     info.Model
	settingsModel settings.Model

	form           *huh.Form
	taskFields     *forms.TaskFields
	editingTask    *models.Task
	settingsFields *forms.SettingsFields
	dietPlan       *string
	topic          *string
	pendingInfo    *info.FetchMsg // re-fetched after the topic form

	active         []models.Task
	alerts         []models.Task
	summary        string
	status         string
	taskToDeleteID string

	quitting bool
	width    int
	height   int
}

// NewModel builds the TUI on top of the command context. Data is loaded by
// the commands returned from Init.
func NewModel(app *cli.Context) (Model, error) {
	current, err := app.Settings()
	if err != nil {
		return Model{}, err
	}
	if _, err := app.Location(); err != nil {
		return Model{}, err
	}

	settingsModel := settings.New(current, app.HasGenerator(), 0, 0)
	settingsModel.SetStorage(settings.Storage{
		Backend: string(storage.BackendOf(app.Store)),
		Path:    storage.Redact(app.Store.GetConfigPath()),
	})

	return Model{
		app:           app,
		state:         constants.StateTasks,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		taskList:      tasklist.New(0, 0),
		habitsModel:   habits.New(0, 0),
		archiveModel:  archive.New(0, 0),
		infoModel:     info.New(0, 0),
		settingsModel: settingsModel,
	}, nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	return append(keys, m.actionKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	return [][]key.Binding{global, navigation, m.actionKeys()}
}

func (m Model) actionKeys() []key.Binding {
	switch m.state {
	case constants.StateTasks:
		return m.taskList.Keys().Bindings()
	case constants.StateHabits:
		return m.habitsModel.Keys().Bindings()
	case constants.StateArchive:
		return m.archiveModel.Keys().Bindings()
	case constants.StateInfo:
		return m.infoModel.Keys().Bindings()
	case constants.StateSettings:
		return m.settingsModel.Keys().Bindings()
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadTasks(),
		m.loadHabits(),
		m.loadArchive(),
		m.sweep(),
		tick(),
	)
}
