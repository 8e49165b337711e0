// Package valueobject contains domain value objects for the budget tracker.
package valueobject

import (
	"fmt"
	"time"
)

// MonthRef identifies a calendar month.
type MonthRef struct {
	Month int // 1-12
	Year  int
}

// NewMonthRef builds a MonthRef, validating the month range.
func NewMonthRef(month, year int) (MonthRef, error) {
	if month < 1 || month > 12 {
		return MonthRef{}, fmt.Errorf("month out of range: %d", month)
	}
	if year < 1900 || year > 3000 {
		return MonthRef{}, fmt.Errorf("year out of range: %d", year)
	}
	return MonthRef{Month: month, Year: year}, nil
}

// MonthRefOf returns the MonthRef containing t.
func MonthRefOf(t time.Time) MonthRef {
	return MonthRef{Month: int(t.Month()), Year: t.Year()}
}

// String formats the reference as YYYY-MM.
func (m MonthRef) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// DaysInMonth returns the number of calendar days in the month.
func (m MonthRef) DaysInMonth() int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(m.Year, time.Month(m.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Start returns midnight UTC on the first day of the month.
func (m MonthRef) Start() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the instant just before the next month starts.
func (m MonthRef) End() time.Time {
	return m.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Contains reports whether t falls inside the month.
func (m MonthRef) Contains(t time.Time) bool {
	return t.Year() == m.Year && int(t.Month()) == m.Month
}

// Prev returns the preceding month.
func (m MonthRef) Prev() MonthRef {
	return MonthRefOf(m.Start().AddDate(0, -1, 0))
}

// Next returns the following month.
func (m MonthRef) Next() MonthRef {
	return MonthRefOf(m.Start().AddDate(0, 1, 0))
}

// ElapsedDay returns how many days of the month have elapsed as of now,
// clamped to [0, DaysInMonth]. A month entirely in the future returns 0
// and a past month returns its full length.
func (m MonthRef) ElapsedDay(now time.Time) int {
	if now.Before(m.Start()) {
		return 0
	}
	if m.Contains(now) {
		return now.Day()
	}
	return m.DaysInMonth()
}

// IsPast reports whether the month ended before now.
func (m MonthRef) IsPast(now time.Time) bool {
	return now.After(m.End())
}
