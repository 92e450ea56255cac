package tasks

import (
	"fmt"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/models"
)

type ArchiveListCmd struct {
	Status string `short:"s" help:"Only show records with this status (completed|not_executed)."`
	Limit  int    `short:"n" help:"Show at most this many of the newest records." default:"0"`
}

func (c *ArchiveListCmd) Run(ctx *cli.Context) error {
	if c.Status != "" && !models.ArchiveStatus(c.Status).Valid() {
		return fmt.Errorf("invalid status %q (expected completed or not_executed)", c.Status)
	}

	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	archived, err := store.ListArchived(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get archived tasks: %w", err)
	}

	var shown []models.ArchivedTask
	for i := len(archived) - 1; i >= 0; i-- {
		a := archived[i]
		if c.Status != "" && string(a.Status) != c.Status {
			continue
		}
		shown = append(shown, a)
		if c.Limit > 0 && len(shown) == c.Limit {
			break
		}
	}

	if len(shown) == 0 {
		fmt.Println("Archive is empty")
		return nil
	}

	loc := store.Location()
	fmt.Println("Archived tasks (newest first):")
	for _, a := range shown {
		mark := "✓"
		if a.Status == models.StatusNotExecuted {
			mark = "✗"
		}
		fmt.Printf("  %s %s  %-16s %s  (archived %s)\n",
			mark, cli.ShortID(a.ID), cli.FormatDue(a.Task), a.Title, a.ArchivedAt.In(loc).Format("2006-01-02 15:04"))
	}
	return nil
}

type ArchiveDeleteCmd struct {
	ID string `arg:"" help:"Archived task ID to delete permanently."`
}

func (c *ArchiveDeleteCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	id, err := resolveArchivedID(ctx.Context(), store, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find archived task: %w", err)
	}
	if err := store.DeleteArchived(ctx.Context(), id); err != nil {
		return fmt.Errorf("failed to delete archived task: %w", err)
	}
	fmt.Printf("Deleted archived task %s\n", cli.ShortID(id))
	return nil
}
