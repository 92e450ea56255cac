package tasks

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
)

// TaskDoneCmd completes a task, moving it to the archive.
type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to complete."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	id, err := resolveTaskID(ctx.Context(), store, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	task, err := store.Complete(ctx.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Printf("✓ Completed: %s\n", task.Title)
	return nil
}
