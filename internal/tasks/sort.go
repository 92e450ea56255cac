package tasks

import (
	"sort"

	"github.com/julianstephens/nahar/internal/models"
)

// SortByDue returns a copy ordered by due date, then untimed before timed, then
// by due time. Equal keys keep their input order.
func SortByDue(tasks []models.Task) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.DueDate != b.DueDate {
			return a.DueDate < b.DueDate
		}
		if a.HasDueTime() != b.HasDueTime() {
			return !a.HasDueTime()
		}
		return a.DueTime < b.DueTime
	})
	return sorted
}

// Partition splits tasks into pending and completed, keeping input order.
func Partition(tasks []models.Task) (pending, completed []models.Task) {
	for _, t := range tasks {
		if t.IsCompleted {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}
