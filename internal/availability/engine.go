package availability

import (
	"time"

	"villa/internal/shared/dates"
)

// ComputeUnavailableDates merges the manually blocked dates with every date covered by an
// accepted stay, check-in and check-out both included. Malformed stored values are skipped
// and an inverted stay contributes nothing.
func ComputeUnavailableDates(blocked []string, stays []Stay) dates.Set {
	set := dates.NewSet(blocked...)
	for _, stay := range stays {
		start, err := dates.Parse(stay.CheckIn)
		if err != nil {
			continue
		}
		end, err := dates.Parse(stay.CheckOut)
		if err != nil {
			continue
		}
		for _, d := range dates.Between(start, end) {
			set.Add(d)
		}
	}
	return set
}

// ConflictingDates lists, in ascending order, the dates of [start, end] that are unavailable
func ConflictingDates(start, end time.Time, unavailable dates.Set) []string {
	var conflicts []string
	for _, d := range dates.Between(start, end) {
		if unavailable.Has(d) {
			conflicts = append(conflicts, dates.Format(d))
		}
	}
	return conflicts
}

// IsRangeAvailable reports whether no date of the inclusive range [start, end] is unavailable.
// It does not look at the current date; rejecting past stays is the caller's policy.
func IsRangeAvailable(start, end time.Time, unavailable dates.Set) bool {
	for _, d := range dates.Between(start, end) {
		if unavailable.Has(d) {
			return false
		}
	}
	return true
}
