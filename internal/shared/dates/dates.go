// Package dates holds calendar-date helpers shared by availability, bookings and content.
// A calendar date is represented as a time.Time at UTC midnight and serialized as YYYY-MM-DD.
package dates

import (
	"fmt"
	"sort"
	"time"
)

// Layout is the wire format of every calendar date in the API and the database
const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Parse parses a YYYY-MM-DD string into a UTC-midnight time.
// Inputs such as "2024-02-30" are rejected rather than normalized.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return t, nil
}

// MustParse is Parse for constants and tests
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValid reports whether s is a well-formed calendar date
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Format renders t as YYYY-MM-DD
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Truncate drops the time-of-day of t as observed in its own location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Truncate(now.In(loc))
}

// Nights returns the number of nights between start and end (end excluded).
// Inverted ranges yield 0.
func Nights(start, end time.Time) int {
	start, end = Truncate(start), Truncate(end)
	if !start.Before(end) {
		return 0
	}
	return int((end.Unix() - start.Unix()) / secondsPerDay)
}

// Between enumerates every date from start to end, both inclusive.
// When start is after end the result is empty.
func Between(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	if start.After(end) {
		return nil
	}
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Set is a calendar-date set keyed by the YYYY-MM-DD form
type Set map[string]struct{}

// NewSet builds a set from date strings; invalid entries are skipped.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		if IsValid(v) {
			s[v] = struct{}{}
		}
	}
	return s
}

func (s Set) Add(t time.Time) {
	s[Format(t)] = struct{}{}
}

func (s Set) Remove(t time.Time) {
	delete(s, Format(t))
}

func (s Set) Has(t time.Time) bool {
	_, ok := s[Format(t)]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	// YYYY-MM-DD sorts lexicographically in calendar order
	sort.Strings(out)
	return out
}

// Normalize deduplicates and sorts a list of date strings, dropping invalid entries.
func Normalize(values []string) []string {
	return NewSet(values...).Sorted()
}
