package duedate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DayKeyLayout = "2006-01-02"

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidDay      = errors.New("invalid due day")
)

// EndOfDay returns 23:59:59.999 on t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

// DayKey is the wall-clock calendar day of t.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDueDay reads a user-entered day: YYYY-MM-DD, "today", "tomorrow" or
// "next-week". The result is end of that day in loc.
func ParseDueDay(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return EndOfDay(now), nil
	case "tomorrow":
		return EndOfDay(now.AddDate(0, 0, 1)), nil
	case "next-week", "nextweek":
		return EndOfDay(now.AddDate(0, 0, 7)), nil
	}
	day, err := time.ParseInLocation(DayKeyLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return EndOfDay(day), nil
}

// LoadLocation accepts "", "UTC", "Local", IANA names and fixed offsets like "+03:00".
func LoadLocation(tz string) (*time.Location, error) {
	switch tz {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err == nil {
		return loc, nil
	}
	if loc, ok := parseOffsetLocation(tz); ok {
		return loc, nil
	}
	return nil, ErrInvalidTimezone
}

func parseOffsetLocation(tz string) (*time.Location, bool) {
	if len(tz) != 6 || (tz[0] != '+' && tz[0] != '-') || tz[3] != ':' {
		return nil, false
	}
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil || hours > 23 {
		return nil, false
	}
	minutes, err := strconv.Atoi(tz[4:6])
	if err != nil || minutes > 59 {
		return nil, false
	}
	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}
	return time.FixedZone(tz, offset), true
}
