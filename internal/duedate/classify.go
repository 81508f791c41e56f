// Package duedate maps due timestamps to display buckets.
package duedate

import (
	"time"
)

type Severity int

const (
	Neutral Severity = iota
	Muted
	Info
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Muted:
		return "neutral-muted"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "neutral"
	}
}

// Color is the display color name for the severity.
func (s Severity) Color() string {
	switch s {
	case Muted:
		return "lightgray"
	case Info:
		return "blue"
	case Warning:
		return "orange"
	case Critical:
		return "red"
	default:
		return "gray"
	}
}

type Classification struct {
	Label    string
	Severity Severity
}

const NoDueDate = "No due date"

type Classifier struct {
	now func() time.Time
	loc *time.Location
}

type Option func(*Classifier)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) { c.now = now }
}

// WithLocation sets the zone calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(c *Classifier) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Classifier) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Classifier) Location() *time.Location {
	return c.loc
}

// Classify buckets a due date. Rules are checked in order and the first
// match wins; the overdue check has to come before the same-week check.
func (c *Classifier) Classify(due *time.Time) Classification {
	if due == nil {
		return Classification{Label: NoDueDate, Severity: Neutral}
	}
	now := c.Now()
	d := due.In(c.loc)
	today := startOfDay(now)
	day := startOfDay(d)

	switch {
	case day.Equal(today):
		return Classification{Label: "Today", Severity: Warning}
	case day.Equal(today.AddDate(0, 0, 1)):
		return Classification{Label: "Tomorrow", Severity: Info}
	case d.Before(now):
		return Classification{Label: "Overdue - " + d.Format("Jan 2"), Severity: Critical}
	case sameWeek(d, now):
		return Classification{Label: d.Format("Monday"), Severity: Muted}
	default:
		return Classification{Label: d.Format("Jan 2, 2006"), Severity: Muted}
	}
}

// HeaderLabel formats a YYYY-MM-DD group key for a date-group header.
func (c *Classifier) HeaderLabel(key string) string {
	day, err := time.ParseInLocation(DayKeyLayout, key, c.loc)
	if err != nil {
		return key
	}
	today := startOfDay(c.Now())
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return day.Format("Mon, Jan 2")
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Weeks start on Sunday.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func sameWeek(a, b time.Time) bool {
	return startOfWeek(a).Equal(startOfWeek(b.In(a.Location())))
}
