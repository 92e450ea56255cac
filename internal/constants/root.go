package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "nahar"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "gemini-api-key"
	DefaultConfigPath  = "~/.config/nahar/nahar.db"
	Version            = "v0.1.0"

	// Environment variables
	EnvAPIKey       = "NAHAR_API_KEY"
	EnvLegacyAPIKey = "API_KEY"

	// Storage keys
	KeyTasks             = "tasks"
	KeyArchivedTasks     = "archived_tasks"
	KeyArchivedHabits    = "archived_habits"
	KeyDietPlan          = "diet_plan"
	KeyMonthlyTopic      = "monthlyTopic"
	KeySettings          = "settings"
	HabitStatusKeyPrefix = "habit_status_"
	InfoCacheKeyPrefix   = "info_"
	PrayerTimesKeyPrefix = "prayer_times_"
	RedisKeyPrefix       = "nahar:"

	// Sweep constants
	SweepInterval = 60 * time.Second

	// HighPriorityWindowDays is how far ahead the high-priority alert looks
	HighPriorityWindowDays = 3

	// Habit constants
	DietHabitPrefix     = "diet_"
	DietTitleKeyPrefix  = "habit_diet_"
	DietDefaultMealName = "meal"
	FajrHabitID         = "fajr_prayer"

	// Text generation
	DefaultModel = "gemini-2.5-flash"

	// Prayer time lookup
	AladhanBaseURL      = "https://api.aladhan.com/v1/timings"
	AladhanMethod       = 2
	PrayerLookupTimeout = 10 * time.Second

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "nahar-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.nahar"
	TrayExecutablePrefix   = "nahar-tray"
)

const (
	// Session States. The first five are the tabs, in order.
	StateTasks SessionState = iota
	StateHabits
	StateArchive
	StateInfo
	StateSettings
	StateTaskForm
	StateDietForm
	StateTopicForm
	StateSettingsForm
	StateConfirmDelete
)

// TabCount is the number of top-level TUI views.
const TabCount = 5
