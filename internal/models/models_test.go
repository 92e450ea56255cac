package models

import (
	"testing"

	"github.com/julianstephens/nahar/internal/constants"
)

func TestTaskDraftValidate(t *testing.T) {
	valid := TaskDraft{
		Title:    "Write report",
		Category: CategoryWork,
		Priority: PriorityHigh,
		DueDate:  "2026-05-01",
		DueTime:  "14:00",
	}

	tests := []struct {
		name    string
		mutate  func(d *TaskDraft)
		wantErr bool
	}{
		{"valid", func(d *TaskDraft) {}, false},
		{"no due time", func(d *TaskDraft) { d.DueTime = "" }, false},
		{"blank title", func(d *TaskDraft) { d.Title = "   " }, true},
		{"unknown category", func(d *TaskDraft) { d.Category = "chores" }, true},
		{"unknown priority", func(d *TaskDraft) { d.Priority = "urgent" }, true},
		{"bad date", func(d *TaskDraft) { d.DueDate = "05/01/2026" }, true},
		{"bad time", func(d *TaskDraft) { d.DueTime = "2pm" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskApplyKeepsIdentity(t *testing.T) {
	task := Task{ID: "abc", Title: "old", IsCompleted: true, Category: CategoryMental, Priority: PriorityLow, DueDate: "2026-01-01"}
	updated := task.Apply(TaskDraft{Title: "new", Category: CategoryWork, Priority: PriorityHigh, DueDate: "2026-01-02"})

	if updated.ID != "abc" || !updated.IsCompleted {
		t.Errorf("Apply() changed identity or completion: %+v", updated)
	}
	if updated.Title != "new" || updated.DueDate != "2026-01-02" {
		t.Errorf("Apply() did not copy draft fields: %+v", updated)
	}
}

func TestMapToSettings(t *testing.T) {
	s, err := MapToSettings(map[string]string{
		constants.SettingLanguage:             "ar",
		constants.SettingTimezone:             "Africa/Cairo",
		constants.SettingLatitude:             "30.0444",
		constants.SettingLongitude:            "31.2357",
		constants.SettingNotificationsEnabled: "true",
	})
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if s.Language != "ar" || s.Timezone != "Africa/Cairo" {
		t.Errorf("unexpected settings: %+v", s)
	}
	if !s.LocationSet || s.Latitude != 30.0444 || s.Longitude != 31.2357 {
		t.Errorf("location not parsed: %+v", s)
	}
	if !s.NotificationsEnabled {
		t.Error("expected notifications enabled")
	}
}

func TestMapToSettings_PartialLocation(t *testing.T) {
	s, err := MapToSettings(map[string]string{constants.SettingLatitude: "30"})
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if s.LocationSet {
		t.Error("location should not be set with only latitude")
	}

	if _, err := MapToSettings(map[string]string{constants.SettingLongitude: "east"}); err == nil {
		t.Error("expected error for unparseable longitude")
	}
}

func TestSettingsRoundTripAndDefaults(t *testing.T) {
	var s Settings
	ApplyDefaultSettings(&s)
	if s.Language != constants.DefaultLanguage || s.Timezone != constants.DefaultTimezone || s.Model != constants.DefaultModel {
		t.Errorf("defaults not applied: %+v", s)
	}

	m := SettingsToMap(s)
	if _, ok := m[constants.SettingLatitude]; ok {
		t.Error("latitude should be omitted when location is unset")
	}

	s.Latitude, s.Longitude, s.LocationSet = 21.4225, 39.8262, true
	back, err := MapToSettings(SettingsToMap(s))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if back != s {
		t.Errorf("round trip = %+v, want %+v", back, s)
	}
}

func TestValidLanguage(t *testing.T) {
	if !ValidLanguage("en") || !ValidLanguage("ar") || ValidLanguage("fr") {
		t.Error("ValidLanguage mismatch")
	}
}
