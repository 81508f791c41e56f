package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Color names used by renderers.
const (
	ColorGreen   = "green"
	ColorOrange  = "orange"
	ColorRed     = "red"
	ColorDarkRed = "darkred"
	ColorGray    = "gray"
)

// ParsePriority upper-cases and trims s. Unknown labels are kept as-is.
func ParsePriority(s string) Priority {
	return Priority(strings.ToUpper(strings.TrimSpace(s)))
}

func (p Priority) Valid() bool {
	switch ParsePriority(string(p)) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities for display, higher first. HIGH deliberately
// outranks URGENT. Absent and unknown values rank as MEDIUM.
func (p Priority) Rank() int {
	switch ParsePriority(string(p)) {
	case PriorityHigh:
		return 4
	case PriorityUrgent:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// DisplayText title-cases the label, "Medium" when absent.
func (p Priority) DisplayText() string {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	if s == "" {
		return "Medium"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func (p Priority) Color() string {
	switch ParsePriority(string(p)) {
	case PriorityLow:
		return ColorGreen
	case PriorityMedium:
		return ColorOrange
	case PriorityHigh:
		return ColorRed
	case PriorityUrgent:
		return ColorDarkRed
	default:
		return ColorGray
	}
}
