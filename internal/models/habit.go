package models

import "time"

type Habit struct {
	ID          string `json:"id"`
	TitleKey    string `json:"titleKey"`
	Time        string `json:"time,omitempty"` // HH:MM format
	IsCompleted bool   `json:"isCompleted"`
}

func (h Habit) HasTime() bool {
	return h.Time != ""
}

type ArchivedHabit struct {
	ID         string        `json:"id"`
	TitleKey   string        `json:"titleKey"`
	Status     ArchiveStatus `json:"status"`
	ArchivedAt time.Time     `json:"archivedAt"`
	Date       string        `json:"date"` // YYYY-MM-DD format
}

// PrayerTimes holds the five daily prayer times (HH:MM) for one day and place
type PrayerTimes struct {
	Fajr    string `json:"Fajr"`
	Dhuhr   string `json:"Dhuhr,omitempty"`
	Asr     string `json:"Asr,omitempty"`
	Maghrib string `json:"Maghrib,omitempty"`
	Isha    string `json:"Isha,omitempty"`
}

// Meal is one main meal extracted from a free-text diet plan
type Meal struct {
	Meal string `json:"meal"`
	Time string `json:"time"` // HH:MM format
}
