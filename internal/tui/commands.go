package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/nahar/internal/assistant"
	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/habits"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/notifier"
	"github.com/julianstephens/nahar/internal/tasks"
)

type tickMsg time.Time

type tasksLoadedMsg struct {
	active []models.Task
	now    time.Time
	loc    *time.Location
	err    error
}

type habitsLoadedMsg struct {
	day habits.Day
	err error
}

type archiveLoadedMsg struct {
	tasks  []models.ArchivedTask
	habits []models.ArchivedHabit
	err    error
}

type sweptMsg struct {
	result tasks.SweepResult
	err    error
}

type summaryMsg struct {
	text string
}

type infoLoadedMsg struct {
	view    assistant.InfoView
	content string
	err     error
}

// doneMsg reports a finished user action. reload lists what to refresh.
type doneMsg struct {
	status string
	err    error
	reload reloadSet
}

type reloadSet struct {
	tasks, habits, archive bool
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return doneMsg{err: err} }
}

func tick() tea.Cmd {
	return tea.Tick(constants.SweepInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Services are resolved on the UI goroutine; the returned commands only
// capture them.

func (m Model) loadTasks() tea.Cmd {
	store, err := m.app.Tasks()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		active, err := store.List(ctx)
		return tasksLoadedMsg{active: active, now: store.Now(), loc: store.Location(), err: err}
	}
}

func (m Model) loadHabits() tea.Cmd {
	tracker, err := m.app.Tracker()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		day, err := tracker.Today(ctx)
		return habitsLoadedMsg{day: day, err: err}
	}
}

func (m Model) loadArchive() tea.Cmd {
	taskStore, err := m.app.Tasks()
	if err != nil {
		return errCmd(err)
	}
	habitStore, err := m.app.Habits()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		archivedTasks, err := taskStore.ListArchived(ctx)
		if err != nil {
			return archiveLoadedMsg{err: err}
		}
		archivedHabits, err := habitStore.ListArchived(ctx)
		return archiveLoadedMsg{tasks: archivedTasks, habits: archivedHabits, err: err}
	}
}

func (m Model) sweep() tea.Cmd {
	store, err := m.app.Tasks()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	sender := m.app.Sender()
	lang := m.app.Language()
	return func() tea.Msg {
		result, err := tasks.NewSweeper(store).SweepOnce(ctx)
		if err == nil && len(result.Archived) > 0 && sender != nil {
			titles := make([]string, 0, len(result.Archived))
			for _, t := range result.Archived {
				titles = append(titles, t.Title)
			}
			notifier.Send(ctx, sender, notifier.SweptMessage(titles, lang))
		}
		return sweptMsg{result: result, err: err}
	}
}

func (m Model) notifyAlert(alert []models.Task) tea.Cmd {
	sender := m.app.Sender()
	if sender == nil || len(alert) == 0 {
		return nil
	}
	ctx := m.app.Context()
	text := notifier.AlertMessage(alert, m.app.Language())
	return func() tea.Msg {
		notifier.Send(ctx, sender, text)
		return nil
	}
}

func (m Model) fetchSummary() tea.Cmd {
	svc, err := m.app.Assistant()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	pending, _ := tasks.Partition(m.active)
	pending = tasks.SortByDue(pending)
	return func() tea.Msg {
		return summaryMsg{text: svc.DailySummary(ctx, pending)}
	}
}

func (m Model) fetchInfo(view assistant.InfoView, fresh bool) tea.Cmd {
	svc, err := m.app.Assistant()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		content, err := svc.Info(ctx, view, fresh)
		return infoLoadedMsg{view: view, content: content, err: err}
	}
}

func (m Model) setTopic(topic string) tea.Cmd {
	svc, err := m.app.Assistant()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		if err := svc.SetTopic(ctx, topic); err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{status: "Monthly topic set to " + topic}
	}
}

func (m Model) saveTask(editing *models.Task, draft models.TaskDraft) tea.Cmd {
	store, err := m.app.Tasks()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		if editing == nil {
			task, err := store.Add(ctx, draft)
			if err != nil {
				return doneMsg{err: err}
			}
			return doneMsg{status: "Added " + task.Title, reload: reloadSet{tasks: true}}
		}
		updated := editing.Apply(draft)
		if err := store.Update(ctx, updated); err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{status: "Updated " + updated.Title, reload: reloadSet{tasks: true}}
	}
}

func (m Model) completeTask(id string) tea.Cmd {
	store, err := m.app.Tasks()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		task, err := store.Complete(ctx, id)
		if err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{status: "Completed " + task.Title, reload: reloadSet{tasks: true, archive: true}}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	store, err := m.app.Tasks()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		if err := store.Delete(ctx, id); err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{status: "Task deleted", reload: reloadSet{tasks: true}}
	}
}

func (m Model) deleteArchived(id string) tea.Cmd {
	store, err := m.app.Tasks()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		if err := store.DeleteArchived(ctx, id); err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{status: "Archive record deleted", reload: reloadSet{archive: true}}
	}
}

func (m Model) toggleHabit(id string) tea.Cmd {
	tracker, err := m.app.Tracker()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		if _, err := tracker.Toggle(ctx, id); err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{reload: reloadSet{habits: true, archive: true}}
	}
}

func (m Model) syncDiet(plan string) tea.Cmd {
	tracker, err := m.app.Tracker()
	if err != nil {
		return errCmd(err)
	}
	ctx := m.app.Context()
	return func() tea.Msg {
		day, err := tracker.SyncDiet(ctx, plan)
		if err != nil {
			return doneMsg{err: err}
		}
		return habitsLoadedMsg{day: day}
	}
}
