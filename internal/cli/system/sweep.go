package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/notifier"
	"github.com/julianstephens/nahar/internal/tasks"
)

// SweepCmd archives every overdue task once.
type SweepCmd struct {
	Quiet bool `help:"Do not send a tray notification."`
}

func (c *SweepCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	result, err := tasks.NewSweeper(store).SweepOnce(ctx.Context())
	if err != nil {
		return err
	}

	if len(result.Archived) == 0 {
		fmt.Println("No overdue tasks.")
	}
	printArchived(result)
	if result.Failed > 0 {
		return fmt.Errorf("failed to archive %d overdue task(s)", result.Failed)
	}
	if !c.Quiet {
		ctx.Notify(sweptMessage(result, ctx.Language()))
	}
	return nil
}

func printArchived(result tasks.SweepResult) {
	for _, t := range result.Archived {
		fmt.Printf("Archived (not executed): %s  %s  due %s\n", cli.ShortID(t.ID), t.Title, cli.FormatDue(t))
	}
}

func sweptMessage(result tasks.SweepResult, lang string) string {
	titles := make([]string, 0, len(result.Archived))
	for _, t := range result.Archived {
		titles = append(titles, t.Title)
	}
	return notifier.SweptMessage(titles, lang)
}

// WatchCmd keeps sweeping in the foreground and notifies the tray app.
type WatchCmd struct {
	Interval time.Duration `help:"Time between sweeps." default:"60s"`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	if c.Interval <= 0 {
		c.Interval = constants.SweepInterval
	}
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx.Parent = runCtx

	lang := ctx.Language()
	if active, err := store.List(runCtx); err == nil {
		if alert := tasks.HighPriority(active, store.Now(), store.Location()); len(alert) > 0 {
			fmt.Println(notifier.AlertMessage(alert, lang))
			ctx.Notify(notifier.AlertMessage(alert, lang))
		}
	}

	sweeper := tasks.NewSweeper(store,
		tasks.WithInterval(c.Interval),
		tasks.WithSweepCallback(func(result tasks.SweepResult) {
			printArchived(result)
			ctx.Notify(sweptMessage(result, lang))
		}),
	)

	fmt.Printf("Watching for overdue tasks every %s. Press Ctrl+C to stop.\n", c.Interval)
	logger.Info("Watch started", "interval", c.Interval)
	if _, err := sweeper.SweepOnce(runCtx); err != nil {
		logger.Warn("Initial sweep failed", "error", err)
	}
	if err := sweeper.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("Stopped.")
	return nil
}
