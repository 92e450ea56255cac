package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/nahar/internal/constants"
)

type Category string

const (
	CategoryPersonal      Category = "personal"
	CategoryWork          Category = "work"
	CategoryLearning      Category = "learning"
	CategoryStudying      Category = "studying"
	CategoryEntertainment Category = "entertainment"
	CategoryExercise      Category = "exercise"
	CategoryMental        Category = "mental"
)

// Categories lists every task category in display order
var Categories = []Category{
	CategoryPersonal,
	CategoryWork,
	CategoryLearning,
	CategoryStudying,
	CategoryEntertainment,
	CategoryExercise,
	CategoryMental,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ArchiveStatus is the terminal status of an archived task or habit
type ArchiveStatus string

const (
	StatusCompleted   ArchiveStatus = "completed"
	StatusNotExecuted ArchiveStatus = "not_executed"
)

func (s ArchiveStatus) Valid() bool {
	return s == StatusCompleted || s == StatusNotExecuted
}

// TaskDraft holds the user-supplied fields of a new task.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate"`           // YYYY-MM-DD format
	DueTime     string   `json:"dueTime,omitempty"` // HH:MM format
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Priority    Priority  `json:"priority"`
	DueDate     string    `json:"dueDate"`           // YYYY-MM-DD format
	DueTime     string    `json:"dueTime,omitempty"` // HH:MM format
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ArchivedTask struct {
	Task
	Status     ArchiveStatus `json:"status"`
	ArchivedAt time.Time     `json:"archivedAt"`
}

// Draft returns the user-editable part of the task
func (t Task) Draft() TaskDraft {
	return TaskDraft{
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		DueTime:     t.DueTime,
	}
}

// Apply copies the draft fields onto the task, leaving identity and completion untouched.
func (t Task) Apply(d TaskDraft) Task {
	t.Title = d.Title
	t.Description = d.Description
	t.Category = d.Category
	t.Priority = d.Priority
	t.DueDate = d.DueDate
	t.DueTime = d.DueTime
	return t
}

func (t Task) HasDueTime() bool {
	return t.DueTime != ""
}

func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if !d.Category.Valid() {
		return fmt.Errorf("invalid category %q", d.Category)
	}
	if !d.Priority.Valid() {
		return fmt.Errorf("invalid priority %q (expected low, medium or high)", d.Priority)
	}
	if _, err := time.Parse(constants.DateFormat, d.DueDate); err != nil {
		return fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", d.DueDate)
	}
	if d.DueTime != "" {
		if _, err := time.Parse(constants.TimeFormat, d.DueTime); err != nil {
			return fmt.Errorf("invalid due time %q (expected HH:MM)", d.DueTime)
		}
	}
	return nil
}

func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	return t.Draft().Validate()
}
