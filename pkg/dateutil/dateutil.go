package dateutil

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// DateLayout is the layout used for printing calendar dates
const DateLayout = "2006-01-02"

var parseLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// CivilDate returns midnight UTC of the calendar date the given time falls on in its own location.
// Stepping a civil date with AddDate never crosses a DST transition.
func CivilDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstDayOfMonth returns the start of the first day of the month of the given date
func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// LastDayOfMonth returns the start of the last day of the month of the given date
func LastDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), DaysInMonth(date), 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of days in the month of the given date
func DaysInMonth(date time.Time) int {
	return int(datetime.DaysInMonth(date.Year(), datetime.Month(date.Month())))
}

// ISOWeekday returns the weekday with Monday = 1 and Sunday = 7
func ISOWeekday(date time.Time) int {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	return weekday
}

// StartOfWeek returns the Monday of the week for the given date
func StartOfWeek(date time.Time) time.Time {
	daysFromMonday := ISOWeekday(date) - 1
	return StartOfDay(date.AddDate(0, 0, -daysFromMonday))
}

// EndOfWeek returns the Sunday of the week for the given date (start of day)
func EndOfWeek(date time.Time) time.Time {
	return StartOfWeek(date).AddDate(0, 0, 6)
}

// GetWeekNumber returns the ISO week number for the given date
func GetWeekNumber(date time.Time) (year int, week int) {
	year, week = date.ISOWeek()
	return
}

// FormatDate formats date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDateIn parses date string in various formats, interpreting zone-less input in loc.
// Input carrying a zone or offset keeps it.
func ParseDateIn(dateStr string, loc *time.Location) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, dateStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}
