// Package render draws views as styled terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"example.com/taskdesk/internal/domain"
	"example.com/taskdesk/internal/view"
)

// palette maps the color names used by duedate and domain to terminal colors.
var palette = map[string]lipgloss.Color{
	"red":       lipgloss.Color("#EF4444"),
	"darkred":   lipgloss.Color("#991B1B"),
	"orange":    lipgloss.Color("#F97316"),
	"green":     lipgloss.Color("#22C55E"),
	"blue":      lipgloss.Color("#3B82F6"),
	"gray":      lipgloss.Color("#6B7280"),
	"lightgray": lipgloss.Color("#9CA3AF"),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(palette["gray"])
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(palette["lightgray"])
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(palette["red"])
	noticeStyle = lipgloss.NewStyle().Foreground(palette["orange"])
)

func colored(name string) lipgloss.Style {
	c, ok := palette[name]
	if !ok {
		c = palette["gray"]
	}
	return lipgloss.NewStyle().Foreground(c)
}

// Color returns the terminal color for a color name or a #RRGGBB value.
func Color(name string) lipgloss.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name)
	}
	return palette["gray"]
}

// ListNames indexes list names by id for row annotations.
func ListNames(lists []domain.List) map[int64]string {
	names := make(map[int64]string, len(lists))
	for _, l := range lists {
		names[l.ID] = l.Name
	}
	return names
}

// Row renders one task line: checkbox, id, title, priority, due label and list.
func Row(r view.Row, lists map[int64]string) string {
	t := r.Task
	box := "[ ]"
	title := titleStyle.Render(t.Title)
	if t.Completed() {
		box = "[x]"
		title = doneStyle.Render(t.Title)
	}
	parts := []string{
		box,
		mutedStyle.Render(fmt.Sprintf("#%d", t.ID)),
		title,
		colored(t.Priority.Color()).Render(t.Priority.DisplayText()),
		colored(r.Due.Severity.Color()).Render(r.Due.Label),
	}
	if t.TaskListID != nil {
		if name, ok := lists[*t.TaskListID]; ok {
			parts = append(parts, mutedStyle.Render("@"+name))
		}
	}
	return strings.Join(parts, "  ")
}

func Rows(rows []view.Row, lists map[int64]string) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No tasks") + "\n"
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(Row(r, lists))
		b.WriteByte('\n')
	}
	return b.String()
}

// Groups renders date groups, each under its header.
func Groups(groups []view.DateGroup, lists map[int64]string) string {
	if len(groups) == 0 {
		return mutedStyle.Render("No upcoming tasks") + "\n"
	}
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(headerStyle.Render(g.Header))
		b.WriteByte('\n')
		b.WriteString(Rows(g.Rows, lists))
	}
	return b.String()
}

// Lists renders the list index; the selected list is marked.
func Lists(lists []domain.List, selected int64) string {
	if len(lists) == 0 {
		return mutedStyle.Render("No lists") + "\n"
	}
	var b strings.Builder
	for _, l := range lists {
		marker := "  "
		if l.ID == selected {
			marker = "> "
		}
		swatch := lipgloss.NewStyle().Foreground(Color(l.Color)).Render("●")
		fmt.Fprintf(&b, "%s%s %s %s\n", marker, swatch, mutedStyle.Render(fmt.Sprintf("#%d", l.ID)), titleStyle.Render(l.Name))
	}
	return b.String()
}

func Banner(msg string) string {
	if msg == "" {
		return ""
	}
	return errorStyle.Render("! "+msg) + "\n"
}

// Dialog frames a confirmation prompt.
func Dialog(prompt string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette["orange"]).
		Padding(0, 1).
		Render(prompt) + "\n"
}
