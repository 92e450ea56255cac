package habits

import (
	"sort"
	"strings"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/logger"
	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/utils"
)

// template is a habit definition; an empty time means the habit is untimed.
type template struct {
	id       string
	titleKey string
	time     string
}

var templates = []template{
	{constants.FajrHabitID, "habit_fajr_prayer", ""},
	{"home_workout", "habit_home_workout", "07:30"},
	{"face_exercises", "habit_face_exercises", "08:15"},
	{"quran_recitation", "habit_quran_recitation", "20:00"},
	{"mosque_prayer", "habit_mosque_prayer", ""},
	{"sunnah_prayers", "habit_sunnah_prayers", ""},
	{"qiyam_al_layl", "habit_qiyam_al_layl", "02:00"},
}

// InitialHabits returns the template habits, uncompleted and sorted by time.
// The Fajr habit takes its time from prayer and is left out when there is none.
func InitialHabits(prayer *models.PrayerTimes) []models.Habit {
	habits := make([]models.Habit, 0, len(templates))
	for _, t := range templates {
		h := models.Habit{ID: t.id, TitleKey: t.titleKey, Time: t.time}
		if t.id == constants.FajrHabitID {
			if prayer == nil || prayer.Fajr == "" {
				continue
			}
			h.Time = prayer.Fajr
		}
		habits = append(habits, h)
	}
	return SortByTime(habits)
}

// IsDietHabit reports whether id belongs to a diet-derived habit.
func IsDietHabit(id string) bool {
	return strings.HasPrefix(id, constants.DietHabitPrefix)
}

// DietHabits turns extracted meals into uncompleted habits keyed by meal time.
// Meals without a valid HH:MM time are skipped, and a repeated time keeps the first meal.
func DietHabits(meals []models.Meal) []models.Habit {
	seen := make(map[string]bool, len(meals))
	habits := make([]models.Habit, 0, len(meals))
	for _, m := range meals {
		tod := strings.TrimSpace(m.Time)
		if !utils.ValidateTimeFormat(tod) {
			logger.Warn("Skipping meal with invalid time", "meal", m.Meal, "time", m.Time)
			continue
		}
		id := constants.DietHabitPrefix + tod
		if seen[id] {
			continue
		}
		seen[id] = true
		habits = append(habits, models.Habit{
			ID:       id,
			TitleKey: dietTitleKey(m.Meal),
			Time:     tod,
		})
	}
	return habits
}

func dietTitleKey(meal string) string {
	name := strings.ToLower(strings.TrimSpace(meal))
	if name == "" {
		name = constants.DietDefaultMealName
	}
	return constants.DietTitleKeyPrefix + strings.Join(strings.Fields(name), "_")
}

// Reconcile copies completion flags from statuses onto generated habits.
// Identity and shape come from generated; ids missing from statuses are uncompleted.
func Reconcile(generated []models.Habit, statuses map[string]bool) []models.Habit {
	out := make([]models.Habit, len(generated))
	for i, h := range generated {
		h.IsCompleted = statuses[h.ID]
		out[i] = h
	}
	return out
}

// ApplyDietSync drops every diet habit from current, along with its completion,
// and adds the habits for meals uncompleted.
func ApplyDietSync(current []models.Habit, meals []models.Meal) []models.Habit {
	out := make([]models.Habit, 0, len(current)+len(meals))
	for _, h := range current {
		if !IsDietHabit(h.ID) {
			out = append(out, h)
		}
	}
	out = append(out, DietHabits(meals)...)
	return SortByTime(out)
}

// SortByTime orders timed habits by their HH:MM string, then appends untimed
// habits in their input order.
func SortByTime(habits []models.Habit) []models.Habit {
	var timed, untimed []models.Habit
	for _, h := range habits {
		if h.HasTime() {
			timed = append(timed, h)
		} else {
			untimed = append(untimed, h)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Time < timed[j].Time
	})
	return append(timed, untimed...)
}

// Toggle flips the completion of habit id and returns the new list and the toggled habit.
func Toggle(habits []models.Habit, id string) ([]models.Habit, models.Habit, bool) {
	out := make([]models.Habit, len(habits))
	copy(out, habits)
	for i := range out {
		if out[i].ID == id {
			out[i].IsCompleted = !out[i].IsCompleted
			return out, out[i], true
		}
	}
	return out, models.Habit{}, false
}

// StatusMap records the completion flag of every habit.
func StatusMap(habits []models.Habit) map[string]bool {
	m := make(map[string]bool, len(habits))
	for _, h := range habits {
		m[h.ID] = h.IsCompleted
	}
	return m
}
