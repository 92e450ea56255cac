package tasks

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/tasks"
)

// TaskAlertsCmd lists high-priority tasks due within the alert window.
type TaskAlertsCmd struct{}

func (c *TaskAlertsCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	all, err := store.List(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	now, loc := store.Now(), store.Location()
	urgent := tasks.HighPriority(all, now, loc)
	if len(urgent) == 0 {
		fmt.Printf("No high-priority tasks due in the next %d days\n", constants.HighPriorityWindowDays)
		return nil
	}

	fmt.Println("⚠ High-priority tasks due soon:")
	for _, t := range urgent {
		fmt.Println("  " + cli.FormatTaskLine(t, now, loc))
	}
	return nil
}
