package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/tracklit/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// DateIn returns the calendar date (YYYY-MM-DD) of t as seen in loc.
func DateIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD string and returns midnight UTC of that day.
// Calendar arithmetic on the result is free of DST shifts.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ValidateDateFormat checks if the string is a real YYYY-MM-DD calendar date.
func ValidateDateFormat(dateStr string) bool {
	t, err := ParseDate(dateStr)
	return err == nil && t.Format(constants.DateFormat) == dateStr
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// DaysBetween returns the whole number of calendar days from a to b.
// Both are YYYY-MM-DD strings; the result is negative when b precedes a.
func DaysBetween(a, b string) (int, error) {
	start, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start).Hours() / 24), nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}
