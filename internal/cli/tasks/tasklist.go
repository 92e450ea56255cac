package tasks

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/tasks"
)

type TaskListCmd struct {
	Category string `short:"c" help:"Only show tasks in this category."`
	Priority string `short:"p" help:"Only show tasks with this priority."`
	Overdue  bool   `help:"Only show overdue tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	all, err := store.List(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	now, loc := store.Now(), store.Location()
	var shown []models.Task
	for _, t := range tasks.SortByDue(all) {
		if c.Category != "" && string(t.Category) != c.Category {
			continue
		}
		if c.Priority != "" && string(t.Priority) != c.Priority {
			continue
		}
		if c.Overdue && !tasks.IsOverdue(t, now, loc) {
			continue
		}
		shown = append(shown, t)
	}

	if len(shown) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, t := range shown {
		fmt.Println("  " + cli.FormatTaskLine(t, now, loc))
	}
	return nil
}
