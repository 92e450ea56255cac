package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/nahar/internal/constants"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty string returns local", "", false},
		{"Local returns local", "Local", false},
		{"valid timezone UTC", "UTC", false},
		{"valid timezone Africa/Cairo", "Africa/Cairo", false},
		{"invalid timezone", "Invalid/Timezone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestNowInTimezone_Invalid(t *testing.T) {
	if _, err := NowInTimezone("Not/AZone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestCombineDateAndTime(t *testing.T) {
	got, err := CombineDateAndTime("2026-03-14", "09:30", time.UTC)
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}
	want := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("14/03/2026", "09:30", time.UTC); err == nil {
		t.Error("expected error for malformed date")
	}
	if _, err := CombineDateAndTime("2026-03-14", "9am", time.UTC); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestCombineDateAndClock_EndOfDay(t *testing.T) {
	got, err := CombineDateAndClock("2026-03-14", constants.EndOfDay, constants.ClockFormat, time.UTC)
	if err != nil {
		t.Fatalf("CombineDateAndClock() error = %v", err)
	}
	want := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndClock() = %v, want %v", got, want)
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	loc := time.UTC
	a := time.Date(2026, 1, 30, 23, 0, 0, 0, loc)
	tests := []struct {
		name string
		b    time.Time
		want int
	}{
		{"same day", time.Date(2026, 1, 30, 1, 0, 0, 0, loc), 0},
		{"next day an hour later", time.Date(2026, 1, 31, 0, 0, 0, 0, loc), 1},
		{"across month", time.Date(2026, 2, 2, 12, 0, 0, 0, loc), 3},
		{"past", time.Date(2026, 1, 29, 23, 59, 0, 0, loc), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if !ValidateDateFormat("2026-12-31") || ValidateDateFormat("2026-13-01") {
		t.Error("ValidateDateFormat mismatch")
	}
	if !ValidateTimeFormat("20:00") || ValidateTimeFormat("20:60") {
		t.Error("ValidateTimeFormat mismatch")
	}
	if !ValidateTimezone("Local") || ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone mismatch")
	}
}
