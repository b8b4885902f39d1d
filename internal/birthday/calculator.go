// Package birthday computes the distance to the next occurrence of a birthday.
package birthday

import (
	"time"

	"cloud.google.com/go/civil"
)

// Occurrence returns the date on which a birthday with the given month and day
// is celebrated in year. Feb 29 birthdays fall on Feb 28 in non-leap years.
func Occurrence(birthDate civil.Date, year int) civil.Date {
	d := civil.Date{Year: year, Month: birthDate.Month, Day: birthDate.Day}
	if birthDate.Month == time.February && birthDate.Day == 29 && !IsLeapYear(year) {
		d.Day = 28
	}
	return d
}

// Next returns the nearest occurrence of birthDate on or after today.
func Next(birthDate, today civil.Date) civil.Date {
	candidate := Occurrence(birthDate, today.Year)
	if candidate.Before(today) {
		candidate = Occurrence(birthDate, today.Year+1)
	}
	return candidate
}

// DaysUntilNext returns the number of whole days from today until the next
// birthday. It returns 0 when today is the birthday.
func DaysUntilNext(birthDate, today civil.Date) int {
	return Next(birthDate, today).DaysSince(today)
}

// IsLeapYear reports whether year has a Feb 29.
func IsLeapYear(year int) bool {
	return civil.Date{Year: year, Month: time.February, Day: 29}.IsValid()
}
