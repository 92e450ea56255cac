package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// EndOfDay is the due time assumed for tasks without an explicit time
	EndOfDay = "23:59:59"

	// ClockFormat is the second-precision time format (HH:MM:SS)
	ClockFormat = "15:04:05"
)
