package tasks

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/tasks"
)

type TaskShowCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskShowCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	id, err := resolveTaskID(ctx.Context(), store, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	t, err := store.Get(ctx.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	now, loc := store.Now(), store.Location()
	fmt.Printf("Title:       %s\n", t.Title)
	fmt.Printf("ID:          %s\n", t.ID)
	if t.Description != "" {
		fmt.Printf("Description: %s\n", t.Description)
	}
	fmt.Printf("Category:    %s\n", t.Category)
	fmt.Printf("Priority:    %s\n", t.Priority)
	fmt.Printf("Due:         %s\n", cli.FormatDue(t))
	fmt.Printf("Time left:   %s\n", cli.FormatCountdown(tasks.TaskCountdown(t, now, loc)))
	if !t.CreatedAt.IsZero() {
		fmt.Printf("Created:     %s\n", t.CreatedAt.In(loc).Format("2006-01-02 15:04"))
	}
	return nil
}
