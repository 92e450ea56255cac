package notifier

import (
	"fmt"
	"strings"

	"github.com/julianstephens/nahar/internal/models"
)

// SweptMessage announces tasks the sweeper moved to the archive.
func SweptMessage(titles []string, lang string) string {
	if len(titles) == 0 {
		return ""
	}
	if lang == "ar" {
		return fmt.Sprintf("تمت أرشفة %d مهمة متأخرة: %s", len(titles), strings.Join(titles, "، "))
	}
	noun := "tasks"
	if len(titles) == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Archived %d overdue %s: %s", len(titles), noun, strings.Join(titles, ", "))
}

// AlertMessage lists high-priority tasks due soon.
func AlertMessage(tasks []models.Task, lang string) string {
	if len(tasks) == 0 {
		return ""
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, fmt.Sprintf("%s (%s)", t.Title, t.DueDate))
	}
	if lang == "ar" {
		return "مهام عالية الأولوية قريبة: " + strings.Join(lines, "، ")
	}
	return "High-priority tasks due soon: " + strings.Join(lines, ", ")
}
