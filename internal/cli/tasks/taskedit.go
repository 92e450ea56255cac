package tasks

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/tui/forms"
)

type TaskEditCmd struct {
	ID          string  `arg:"" help:"Task ID or unique prefix/suffix."`
	Title       *string `help:"New title."`
	Description *string `short:"D" help:"New description."`
	Category    *string `short:"c" help:"New category."`
	Priority    *string `short:"p" help:"New priority (low|medium|high)."`
	Due         *string `short:"d" help:"New due date (YYYY-MM-DD)."`
	At          *string `short:"t" help:"New due time (HH:MM)."`
	ClearTime   bool    `help:"Remove the due time so the task is due at end of day."`
}

func (c *TaskEditCmd) changed() bool {
	return c.Title != nil || c.Description != nil || c.Category != nil ||
		c.Priority != nil || c.Due != nil || c.At != nil || c.ClearTime
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	id, err := resolveTaskID(ctx.Context(), store, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	task, err := store.Get(ctx.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	draft := task.Draft()
	if !c.changed() {
		fields := forms.TaskFieldsFrom(task)
		if err := forms.NewTaskForm(fields).Run(); err != nil {
			return fmt.Errorf("task form: %w", err)
		}
		draft = fields.Draft()
	}

	if c.Title != nil {
		draft.Title = *c.Title
	}
	if c.Description != nil {
		draft.Description = *c.Description
	}
	if c.Category != nil {
		draft.Category = models.Category(*c.Category)
	}
	if c.Priority != nil {
		draft.Priority = models.Priority(*c.Priority)
	}
	if c.Due != nil {
		draft.DueDate = *c.Due
	}
	if c.At != nil {
		draft.DueTime = *c.At
	}
	if c.ClearTime {
		draft.DueTime = ""
	}

	updated := task.Apply(draft)
	if err := store.Update(ctx.Context(), updated); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Updated task: %s (ID: %s)\n", updated.Title, cli.ShortID(updated.ID))
	return nil
}
