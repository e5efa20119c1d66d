package domain

import (
	"testing"
	"time"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		deletedAt time.Time
		want      int
	}{
		{"just deleted", now, 30},
		{"two days ago", now.AddDate(0, 0, -2), 28},
		{"window edge", now.AddDate(0, 0, -30), 0},
		{"past the window", now.AddDate(0, 0, -45), -15},
		{"partial day rounds down", now.Add(-36 * time.Hour), 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.deletedAt, now); got != tt.want {
				t.Errorf("DaysRemaining = %d, want %d", got, tt.want)
			}
		})
	}
}
