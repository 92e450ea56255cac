package models

// Settings represents application-wide settings
type Settings struct {
	Language             string  `json:"language"`              // language for generated content, "en" or "ar"
	Timezone             string  `json:"timezone"`              // IANA timezone name (e.g. "Africa/Cairo", or "Local" for system timezone)
	Latitude             float64 `json:"latitude"`              // latitude used for prayer time lookup
	Longitude            float64 `json:"longitude"`             // longitude used for prayer time lookup
	LocationSet          bool    `json:"location_set"`          // whether latitude/longitude were configured
	Model                string  `json:"model"`                 // text generation model name
	NotificationsEnabled bool    `json:"notifications_enabled"` // whether tray notifications are sent by the watcher
}
