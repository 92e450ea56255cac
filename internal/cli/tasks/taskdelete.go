package tasks

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	id, err := resolveTaskID(ctx.Context(), store, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}
	task, err := store.Get(ctx.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	if err := store.Delete(ctx.Context(), id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task: %s (ID: %s)\n", task.Title, cli.ShortID(id))
	return nil
}
