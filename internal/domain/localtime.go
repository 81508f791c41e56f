package domain

import (
	"bytes"
	"fmt"
	"time"
)

// LocalTimeLayout is the wire format for timestamps: wall-clock time with
// millisecond precision and no zone offset.
const LocalTimeLayout = "2006-01-02T15:04:05.000"

var localTimeLayouts = []string{
	LocalTimeLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// LocalTime is a timestamp that serialises without an offset, so the server
// reads it as local wall-clock time.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) *LocalTime {
	return &LocalTime{Time: t}
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(LocalTimeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("local time: not a string: %s", b)
	}
	parsed, err := ParseLocalTime(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseLocalTime accepts the wire layout, shorter variants and RFC 3339.
// Offset-less values are read in time.Local.
func ParseLocalTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("local time: unrecognised value %q", s)
}
