package utils

import (
	"fmt"
	"strings"
	"time"
)

// LoadLocation returns the IANA zone or UTC when the name is empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func ValidTimezone(name string) bool {
	if name == "" || strings.EqualFold(name, "local") {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// CalendarDate strips the clock from t in its own location and returns the
// date at UTC midnight, which is how dates are stored.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseClock parses "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
