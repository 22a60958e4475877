package docparse

import "time"

// ExpiryStatus classifies how close a document is to its expiry date.
type ExpiryStatus string

const (
	ExpiryExpired  ExpiryStatus = "expired"
	ExpiryExpiring ExpiryStatus = "expiring"
	ExpiryValid    ExpiryStatus = "valid"
	ExpiryUnknown  ExpiryStatus = "unknown"
)

// ExpiringWindowDays is how many days before expiry a document counts as
// "expiring".
const ExpiringWindowDays = 30

// Classification is the result of classifying an expiry date against today.
// DaysRemaining is nil when the status is unknown.
type Classification struct {
	Status        ExpiryStatus `json:"status"`
	DaysRemaining *int         `json:"daysRemaining"`
}

// Classify computes the expiry status of a YYYY-MM-DD date relative to today.
// An absent or unparseable date degrades to unknown rather than failing.
func Classify(expiryDate string, today time.Time) Classification {
	if expiryDate == "" {
		return Classification{Status: ExpiryUnknown}
	}

	expiry, ok := parseISODate(expiryDate)
	if !ok {
		return Classification{Status: ExpiryUnknown}
	}

	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(expiry.Sub(todayMidnight).Hours() / 24)

	status := ExpiryValid
	switch {
	case days < 0:
		status = ExpiryExpired
	case days <= ExpiringWindowDays:
		status = ExpiryExpiring
	}

	return Classification{Status: status, DaysRemaining: &days}
}
