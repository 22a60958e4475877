package docparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	today := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiryDate string
		status     ExpiryStatus
		days       int
	}{
		{"expired months ago", "2024-01-01", ExpiryExpired, -152},
		{"expired yesterday", "2024-05-31", ExpiryExpired, -1},
		{"expires today", "2024-06-01", ExpiryExpiring, 0},
		{"inside the window", "2024-06-15", ExpiryExpiring, 14},
		{"window boundary", "2024-07-01", ExpiryExpiring, 30},
		{"just past the window", "2024-07-02", ExpiryValid, 31},
		{"far out", "2025-06-01", ExpiryValid, 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.expiryDate, today)
			assert.Equal(t, tt.status, got.Status)
			require.NotNil(t, got.DaysRemaining)
			assert.Equal(t, tt.days, *got.DaysRemaining)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"", "soon", "15/03/2025", "2024-13-40"} {
		got := Classify(input, today)
		assert.Equal(t, ExpiryUnknown, got.Status, "input %q", input)
		assert.Nil(t, got.DaysRemaining, "input %q", input)
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// The comparison is calendar-day based; the hour of "today" must not
	// shift the result.
	morning := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, Classify("2024-06-15", morning), Classify("2024-06-15", night))
}
