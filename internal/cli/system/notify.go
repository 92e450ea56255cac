package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/notifier"
)

// NotifyCmd sends a message to the tray app. Used for checking the tray
// connection and by scripts.
type NotifyCmd struct {
	Message []string `arg:"" help:"Text to send."`
	DryRun  bool     `help:"Print the notification instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Message, " "))
	if text == "" {
		return errors.New("notification text cannot be empty")
	}
	if c.DryRun {
		fmt.Println("[DryRun] " + text)
		return nil
	}

	sender := ctx.Sender()
	if sender == nil {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}
	if err := sender.Notify(ctx.Context(), text); err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			return fmt.Errorf("tray app is not running: %w", err)
		}
		return fmt.Errorf("failed to send notification: %w", err)
	}
	fmt.Println("✓ Notification sent")
	return nil
}
