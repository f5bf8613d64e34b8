package courses

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentSemester(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	start := func(year int, month time.Month) *time.Time {
		t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name           string
		startDate      *time.Time
		totalSemesters int
		want           int
	}{
		{"no start date", nil, 8, 0},
		{"zero total semesters", start(2026, time.February), 0, 0},
		{"started this month", start(2026, time.August), 8, 1},
		{"five months in", start(2026, time.March), 8, 1},
		{"six months in", start(2026, time.February), 8, 2},
		{"two years in", start(2024, time.August), 8, 5},
		{"capped at total", start(2018, time.February), 8, 8},
		{"future start", start(2027, time.February), 8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentSemester(tt.startDate, tt.totalSemesters, now))
		})
	}
}
