package dsr

import (
	"math"
	"time"
)

// Deadline is createdAt plus the statutory period. It is fixed at
// creation and never recomputed, whatever else changes on the request.
func Deadline(createdAt time.Time) time.Time {
	return createdAt.AddDate(0, 0, StatutoryDays)
}

// DaysRemaining counts whole days until the deadline, rounding partial
// days up. Negative values mean the request is overdue by that many days.
func DaysRemaining(request Request, asOf time.Time) int {
	diff := request.DeadlineDate.Sub(asOf)
	return int(math.Ceil(diff.Hours() / 24))
}

// UrgencyBand maps a remaining-day count to its display band.
func UrgencyBand(daysRemaining int) string {
	switch {
	case daysRemaining < 0:
		return BandOverdue
	case daysRemaining <= DueSoonDays:
		return BandDueSoon
	default:
		return BandOnTrack
	}
}

// Urgency evaluates the band for a request. Terminal requests carry no
// urgency; the second return is false for them.
func Urgency(request Request, asOf time.Time) (string, bool) {
	if Terminal(request.Status) {
		return "", false
	}
	return UrgencyBand(DaysRemaining(request, asOf)), true
}
