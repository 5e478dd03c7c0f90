// Package dateutils provides the date parsing used by the statement parsers.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layout constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutStatement = "2 Jan 2006"
	DateLayoutIndian    = "02/01/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
)

// CommonFormats is the list of formats tried by ParseDate, in order.
// Day-first layouts come before month-first ones because the supported banks
// print dates day first.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z07:00",
	DateLayoutStatement,
	"02 Jan 2006",
	"2 January 2006",
	DateLayoutWithMonth,
	"02-Jan-06",
	"2 Jan 06",
	DateLayoutIndian,
	"02-01-2006",
	"02.01.2006",
	"02/01/06",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using CommonFormats.
// The result is truncated to UTC midnight.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("unable to parse date: empty value")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return Midnight(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseWithLayout parses a date with a single layout after cleaning it.
// The result is truncated to UTC midnight.
func ParseWithLayout(layout, dateStr string) (time.Time, error) {
	t, err := time.Parse(layout, CleanDateString(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q with layout %q: %w", dateStr, layout, err)
	}
	return Midnight(t), nil
}

// CleanDateString trims a date string and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// Midnight drops the clock part of a time, keeping the calendar day, in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// DayKey returns the calendar day of a date as YYYY-MM-DD; used to group
// records per day.
func DayKey(date time.Time) string {
	return Midnight(date).Format(DateLayoutISO)
}
