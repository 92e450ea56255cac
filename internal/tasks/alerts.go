package tasks

import (
	"time"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/utils"
)

// HighPriority returns open high-priority tasks due from today through
// HighPriorityWindowDays calendar days ahead, sorted by due.
func HighPriority(tasks []models.Task, now time.Time, loc *time.Location) []models.Task {
	today := now.In(loc)
	var out []models.Task
	for _, t := range tasks {
		if t.IsCompleted || t.Priority != models.PriorityHigh {
			continue
		}
		due, err := utils.ParseDateInLocation(t.DueDate, loc)
		if err != nil {
			continue
		}
		days := utils.DaysBetween(today, due)
		if days >= 0 && days <= constants.HighPriorityWindowDays {
			out = append(out, t)
		}
	}
	return SortByDue(out)
}
