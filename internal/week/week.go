// Package week computes the Monday-anchored week used to scope check-offs.
package week

import "time"

// DateLayout is the ISO calendar date format used for week identifiers.
const DateLayout = "2006-01-02"

// Start returns midnight on the Monday of now's week, in now's location.
func Start(now time.Time) time.Time {
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// StartDate returns Start(now) as an ISO calendar date.
func StartDate(now time.Time) string {
	return Start(now).Format(DateLayout)
}

// Rolled reports whether a record stamped with stored belongs to a
// different week than now.
func Rolled(stored string, now time.Time) bool {
	return stored != StartDate(now)
}

// DayIndex returns now's position in the week, Monday=0 through Sunday=6.
func DayIndex(now time.Time) int {
	if now.Weekday() == time.Sunday {
		return 6
	}
	return int(now.Weekday()) - 1
}

// Labels are the single-letter day headings printed above check columns.
var Labels = [7]string{"M", "T", "W", "T", "F", "S", "S"}
