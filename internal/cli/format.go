package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/tasks"
)

// FormatCountdown renders "2d 4h 15m", or "expired".
func FormatCountdown(c tasks.Countdown) string {
	if c.Expired {
		return "expired"
	}
	return fmt.Sprintf("%dd %dh %dm", c.Days, c.Hours, c.Minutes)
}

// FormatDue renders a task's due date and optional time.
func FormatDue(t models.Task) string {
	if t.HasDueTime() {
		return t.DueDate + " " + t.DueTime
	}
	return t.DueDate
}

// ShortID shortens a UUID for display. Commands accept any unique prefix.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

// FormatTaskLine is one line of a task listing.
func FormatTaskLine(t models.Task, now time.Time, loc *time.Location) string {
	mark := " "
	if t.IsCompleted {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s  %-6s %-13s %-16s %-10s %s",
		mark, ShortID(t.ID), t.Priority, t.Category, FormatDue(t),
		FormatCountdown(tasks.TaskCountdown(t, now, loc)), t.Title)
}

// MatchID finds the single id ending or starting with ref.
func MatchID(ids []string, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("id cannot be empty")
	}
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) || strings.HasSuffix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", tasks.ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", ref, len(matches))
	}
}
