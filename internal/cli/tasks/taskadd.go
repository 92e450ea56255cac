package tasks

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/tui/forms"
)

type TaskAddCmd struct {
	Title       string `arg:"" optional:"" help:"Task title. Omit to fill in a form."`
	Description string `short:"D" help:"Task description."`
	Category    string `short:"c" help:"Category (personal|work|learning|studying|entertainment|exercise|mental)." default:"personal"`
	Priority    string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Due         string `short:"d" help:"Due date (YYYY-MM-DD). Defaults to today."`
	At          string `short:"t" help:"Due time (HH:MM). Omit for end of day."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	var draft models.TaskDraft
	if c.Title == "" {
		fields := forms.NewTaskFields(today)
		if err := forms.NewTaskForm(fields).Run(); err != nil {
			return fmt.Errorf("task form: %w", err)
		}
		draft = fields.Draft()
	} else {
		due := c.Due
		if due == "" {
			due = today
		}
		draft = models.TaskDraft{
			Title:       c.Title,
			Description: c.Description,
			Category:    models.Category(c.Category),
			Priority:    models.Priority(c.Priority),
			DueDate:     due,
			DueTime:     c.At,
		}
	}

	task, err := store.Add(ctx.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task: %s (ID: %s, due %s)\n", task.Title, cli.ShortID(task.ID), cli.FormatDue(task))
	return nil
}
