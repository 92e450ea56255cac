package tasks

import (
	"time"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/utils"
)

// EffectiveDue is the instant a task falls due: its due date at the due time,
// or at 23:59:59 when no time is set.
func EffectiveDue(task models.Task, loc *time.Location) (time.Time, error) {
	if task.HasDueTime() {
		return utils.CombineDateAndTime(task.DueDate, task.DueTime, loc)
	}
	return utils.CombineDateAndClock(task.DueDate, constants.EndOfDay, constants.ClockFormat, loc)
}

// IsOverdue reports whether an open task's due instant is strictly before now.
// Tasks with an unparseable due date are never overdue.
func IsOverdue(task models.Task, now time.Time, loc *time.Location) bool {
	if task.IsCompleted {
		return false
	}
	due, err := EffectiveDue(task, loc)
	if err != nil {
		return false
	}
	return now.After(due)
}

// Countdown is the time left until a task is due.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Expired bool
}

// CountdownTo floors due-now into whole days, hours and minutes.
// Expired is set once due <= now.
func CountdownTo(due, now time.Time) Countdown {
	remaining := due.Sub(now)
	if remaining <= 0 {
		return Countdown{Expired: true}
	}
	total := int(remaining / time.Minute)
	return Countdown{
		Days:    total / (24 * 60),
		Hours:   (total / 60) % 24,
		Minutes: total % 60,
	}
}

// TaskCountdown computes the countdown for a task. A malformed due date counts as expired.
func TaskCountdown(task models.Task, now time.Time, loc *time.Location) Countdown {
	due, err := EffectiveDue(task, loc)
	if err != nil {
		return Countdown{Expired: true}
	}
	return CountdownTo(due, now)
}
