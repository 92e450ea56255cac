package cli

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/nahar/internal/models"
	"github.com/julianstephens/nahar/internal/tasks"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   tasks.Countdown
		want string
	}{
		{tasks.Countdown{Expired: true}, "expired"},
		{tasks.Countdown{Days: 2, Hours: 4, Minutes: 15}, "2d 4h 15m"},
		{tasks.Countdown{}, "0d 0h 0m"},
	}
	for _, tt := range tests {
		if got := FormatCountdown(tt.in); got != tt.want {
			t.Errorf("FormatCountdown(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTaskLine(t *testing.T) {
	task := models.Task{
		ID: "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", Title: "Pay rent",
		Category: models.CategoryPersonal, Priority: models.PriorityHigh,
		DueDate: "2026-03-08", DueTime: "10:00",
	}
	now := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	line := FormatTaskLine(task, now, time.UTC)
	for _, want := range []string{"2e3f4a5b", "high", "2026-03-08 10:00", "1d 1h 0m", "Pay rent"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestMatchID(t *testing.T) {
	ids := []string{"aaaa-1111", "aaaa-2222", "bbbb-3333"}

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{"exact", "aaaa-1111", "aaaa-1111", false},
		{"unique prefix", "bbbb", "bbbb-3333", false},
		{"unique suffix", "2222", "aaaa-2222", false},
		{"ambiguous", "aaaa", "", true},
		{"missing", "zzzz", "", true},
		{"empty", " ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchID(ids, tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MatchID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("MatchID() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := MatchID(ids, "zzzz"); !errors.Is(err, tasks.ErrTaskNotFound) {
		t.Errorf("missing id error = %v, want ErrTaskNotFound", err)
	}
}
