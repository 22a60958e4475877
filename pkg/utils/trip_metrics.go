package utils

import (
	"math"
	"time"
)

// TripStatus is the lifecycle stage of a trip, derived from its raw fields on
// every read and never persisted on its own.
type TripStatus string

const (
	TripStatusPlanned    TripStatus = "planned"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusFinished   TripStatus = "finished"
)

// TripMetrics bundles every derived value merged into a trip response.
type TripMetrics struct {
	DistanceTraveled float64    `json:"distanceTraveled"`
	DurationHours    float64    `json:"durationHours"`
	TotalCost        float64    `json:"totalCost"`
	Status           TripStatus `json:"status"`
}

// ComputeDistance returns the km traveled between two odometer readings.
// Missing readings yield 0, and a rollback (end below start) is clamped to 0
// rather than rejected.
func ComputeDistance(kmStart, kmEnd *float64) float64 {
	if kmStart == nil || kmEnd == nil {
		return 0
	}
	distance := *kmEnd - *kmStart
	if distance < 0 {
		return 0
	}
	return distance
}

// ComputeDuration returns the elapsed hours between date+startTime and
// (endDate or date)+endTime, rounded to 2 decimals. When no explicit end date
// was given and the end instant precedes the start, the trip is assumed to
// cross midnight and 24 hours are added. Missing inputs yield 0; the result
// is never negative.
func ComputeDuration(date, startTime, endTime, endDate string) float64 {
	if date == "" || startTime == "" || endTime == "" {
		return 0
	}

	start, ok := combineDateTime(date, startTime)
	if !ok {
		return 0
	}

	effectiveEndDate := endDate
	if effectiveEndDate == "" {
		effectiveEndDate = date
	}
	end, ok := combineDateTime(effectiveEndDate, endTime)
	if !ok {
		return 0
	}

	// Midnight rollover only applies when the caller did not state an end
	// date; an explicit end date is trusted as-is.
	if endDate == "" && end.Before(start) {
		end = end.Add(24 * time.Hour)
	}

	hours := end.Sub(start).Hours()
	if hours < 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}

// ComputeStatus derives the trip lifecycle stage: Finished once both an end
// time and a final odometer reading exist, otherwise the caller-supplied
// default (planned or in-progress).
func ComputeStatus(endTime string, kmEnd *float64, fallback TripStatus) TripStatus {
	if endTime != "" && kmEnd != nil {
		return TripStatusFinished
	}
	if fallback == "" {
		return TripStatusPlanned
	}
	return fallback
}

// ComputeTotalCost sums the monetary cost of a trip. Every input defaults to
// 0 when absent; inputs are not validated as non-negative.
func ComputeTotalCost(fuelLiters, fuelPrice, otherCosts, maintenanceCost, driverDaily *float64) float64 {
	total := deref(fuelLiters)*deref(fuelPrice) + deref(otherCosts) + deref(maintenanceCost) + deref(driverDaily)
	return math.Round(total*100) / 100
}

// TripInput carries the raw trip fields the metrics are derived from.
type TripInput struct {
	Date            string
	StartTime       string
	EndTime         string
	EndDate         string
	KmStart         *float64
	KmEnd           *float64
	FuelLiters      *float64
	FuelPrice       *float64
	OtherCosts      *float64
	MaintenanceCost *float64
	DriverDaily     *float64
	DefaultStatus   TripStatus
}

// ComputeTripMetrics derives all four values at once. Every consumer (API
// handlers, exports, dashboard) goes through this single implementation.
func ComputeTripMetrics(in TripInput) TripMetrics {
	return TripMetrics{
		DistanceTraveled: ComputeDistance(in.KmStart, in.KmEnd),
		DurationHours:    ComputeDuration(in.Date, in.StartTime, in.EndTime, in.EndDate),
		TotalCost:        ComputeTotalCost(in.FuelLiters, in.FuelPrice, in.OtherCosts, in.MaintenanceCost, in.DriverDaily),
		Status:           ComputeStatus(in.EndTime, in.KmEnd, in.DefaultStatus),
	}
}

// combineDateTime joins a YYYY-MM-DD date and an HH:MM (or HH:MM:SS) time
// into a single instant.
func combineDateTime(date, clock string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, date+" "+clock); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
