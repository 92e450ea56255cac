package storage

import (
	"context"
	"testing"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/models"
)

func TestReadJSON(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryStore()

	var tasks []models.Task
	found, err := ReadJSON(ctx, p, constants.KeyTasks, &tasks)
	if err != nil || found {
		t.Fatalf("ReadJSON() missing = %v, %v", found, err)
	}

	if err := WriteJSON(ctx, p, constants.KeyTasks, []models.Task{{ID: "1", Title: "a"}}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	found, err = ReadJSON(ctx, p, constants.KeyTasks, &tasks)
	if err != nil || !found || len(tasks) != 1 || tasks[0].Title != "a" {
		t.Fatalf("ReadJSON() = %v, %v, %+v", found, err, tasks)
	}

	// Corrupt value degrades to not found
	_ = p.Set(ctx, constants.KeyTasks, "{not json")
	var again []models.Task
	found, err = ReadJSON(ctx, p, constants.KeyTasks, &again)
	if err != nil || found || again != nil {
		t.Errorf("ReadJSON() corrupt = %v, %v, %+v", found, err, again)
	}
}

func TestReadJSON_TypeMismatchLeavesDestUntouched(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryStore()
	// Well-formed JSON, but isCompleted is a string
	_ = p.Set(ctx, constants.KeyTasks,
		`[{"id":"a","title":"t1","dueDate":"2024-01-01"},{"id":"b","title":"t2","isCompleted":"yes"}]`)

	tests := []struct {
		name string
		dest []models.Task
	}{
		{"nil destination", nil},
		{"prefilled destination", []models.Task{{ID: "keep"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := tt.dest
			found, err := ReadJSON(ctx, p, constants.KeyTasks, &dest)
			if err != nil || found {
				t.Fatalf("ReadJSON() = %v, %v; want not found", found, err)
			}
			if len(dest) != len(tt.dest) {
				t.Fatalf("dest = %+v, want untouched %+v", dest, tt.dest)
			}
			for i := range dest {
				if dest[i].ID != tt.dest[i].ID {
					t.Errorf("dest[%d] = %+v, want %+v", i, dest[i], tt.dest[i])
				}
			}
		})
	}
}

func TestReadJSON_RejectsNonPointer(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryStore()
	_ = p.Set(ctx, constants.KeyMonthlyTopic, `"x"`)

	var topic string
	if _, err := ReadJSON(ctx, p, constants.KeyMonthlyTopic, topic); err == nil {
		t.Error("ReadJSON() with a non-pointer destination should fail")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryStore()

	s, err := GetSettings(ctx, p)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if s.Language != constants.DefaultLanguage || s.Model != constants.DefaultModel {
		t.Errorf("defaults not applied: %+v", s)
	}

	if err := EnsureDefaultSettings(ctx, p); err != nil {
		t.Fatalf("EnsureDefaultSettings() error = %v", err)
	}

	s.Language = "ar"
	s.Latitude, s.Longitude, s.LocationSet = 30.04, 31.24, true
	if err := SaveSettings(ctx, p, s); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	// EnsureDefaultSettings must not clobber saved values
	if err := EnsureDefaultSettings(ctx, p); err != nil {
		t.Fatalf("EnsureDefaultSettings() error = %v", err)
	}
	got, err := GetSettings(ctx, p)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got != s {
		t.Errorf("GetSettings() = %+v, want %+v", got, s)
	}
}
