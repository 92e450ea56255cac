package constants

const (
	SettingLanguage             = "language"
	SettingTimezone             = "timezone"
	SettingLatitude             = "latitude"
	SettingLongitude            = "longitude"
	SettingModel                = "model"
	SettingNotificationsEnabled = "notifications_enabled"

	// Default Settings Values
	DefaultLanguage             = "en"
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = false
)

// SupportedLanguages lists the languages generated content can be requested in
var SupportedLanguages = []string{"en", "ar"}
