package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestComputeDistance(t *testing.T) {
	tests := []struct {
		name     string
		kmStart  *float64
		kmEnd    *float64
		expected float64
	}{
		{"normal trip", fptr(1000), fptr(1250), 250},
		{"odometer rollback clamps to zero", fptr(1250), fptr(1000), 0},
		{"equal readings", fptr(500), fptr(500), 0},
		{"missing start", nil, fptr(1250), 0},
		{"missing end", fptr(1000), nil, 0},
		{"both missing", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeDistance(tt.kmStart, tt.kmEnd))
		})
	}
}

func TestComputeDuration(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		startTime string
		endTime   string
		endDate   string
		expected  float64
	}{
		{"same day", "2024-03-01", "08:00", "12:30", "", 4.5},
		{"midnight rollover", "2024-03-01", "22:00", "02:00", "", 4},
		{"explicit end date", "2024-03-01", "08:00", "10:00", "2024-03-03", 50},
		{"explicit end date before start clamps", "2024-03-03", "08:00", "10:00", "2024-03-01", 0},
		{"seconds accepted", "2024-03-01", "08:00:00", "09:30:00", "", 1.5},
		{"missing date", "", "08:00", "12:00", "", 0},
		{"missing start time", "2024-03-01", "", "12:00", "", 0},
		{"missing end time", "2024-03-01", "08:00", "", "", 0},
		{"garbage time", "2024-03-01", "late", "12:00", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeDuration(tt.date, tt.startTime, tt.endTime, tt.endDate))
		})
	}
}

func TestComputeDurationNeverNegative(t *testing.T) {
	// Rollover only applies without an explicit end date, so the only way to
	// get a negative interval is an end date before the start date. That case
	// clamps instead of going negative.
	got := ComputeDuration("2024-03-10", "08:00", "06:00", "2024-03-09")
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestComputeTotalCost(t *testing.T) {
	tests := []struct {
		name     string
		fuelL    *float64
		fuelP    *float64
		other    *float64
		maint    *float64
		daily    *float64
		expected float64
	}{
		{"full breakdown", fptr(100), fptr(6.10), fptr(50), fptr(0), fptr(200), 860},
		{"all missing", nil, nil, nil, nil, nil, 0},
		{"fuel only", fptr(80), fptr(5.5), nil, nil, nil, 440},
		{"liters without price", fptr(80), nil, fptr(30), nil, nil, 30},
		{"rounds to cents", fptr(33.333), fptr(3), nil, nil, nil, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeTotalCost(tt.fuelL, tt.fuelP, tt.other, tt.maint, tt.daily))
		})
	}
}

func TestComputeStatus(t *testing.T) {
	assert.Equal(t, TripStatusFinished, ComputeStatus("18:00", fptr(1250), TripStatusInProgress))
	assert.Equal(t, TripStatusInProgress, ComputeStatus("18:00", nil, TripStatusInProgress))
	assert.Equal(t, TripStatusInProgress, ComputeStatus("", fptr(1250), TripStatusInProgress))
	assert.Equal(t, TripStatusPlanned, ComputeStatus("", nil, TripStatusPlanned))
	assert.Equal(t, TripStatusPlanned, ComputeStatus("", nil, ""))
}

func TestComputeTripMetrics(t *testing.T) {
	in := TripInput{
		Date:          "2024-03-01",
		StartTime:     "22:00",
		EndTime:       "02:00",
		KmStart:       fptr(1000),
		KmEnd:         fptr(1250),
		FuelLiters:    fptr(100),
		FuelPrice:     fptr(6.10),
		OtherCosts:    fptr(50),
		DriverDaily:   fptr(200),
		DefaultStatus: TripStatusInProgress,
	}

	metrics := ComputeTripMetrics(in)
	assert.Equal(t, 250.0, metrics.DistanceTraveled)
	assert.Equal(t, 4.0, metrics.DurationHours)
	assert.Equal(t, 860.0, metrics.TotalCost)
	assert.Equal(t, TripStatusFinished, metrics.Status)

	// Deriving twice from the same input gives the same answer.
	assert.Equal(t, metrics, ComputeTripMetrics(in))
}

func TestComputeTripMetricsEmptyInput(t *testing.T) {
	metrics := ComputeTripMetrics(TripInput{})
	assert.Equal(t, 0.0, metrics.DistanceTraveled)
	assert.Equal(t, 0.0, metrics.DurationHours)
	assert.Equal(t, 0.0, metrics.TotalCost)
	assert.Equal(t, TripStatusPlanned, metrics.Status)
}
