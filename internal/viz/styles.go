package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 46

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	status   lipgloss.Style
	info     lipgloss.Style
	err      lipgloss.Style
	key      lipgloss.Style
	hint     lipgloss.Style
	cursor   lipgloss.Style
	item     lipgloss.Style
	focused  lipgloss.Style
	canvas   lipgloss.Style
	panel    lipgloss.Style
	graph    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(t.Muted),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(16),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		status:   lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		info:     lipgloss.NewStyle().Foreground(t.Success),
		err:      lipgloss.NewStyle().Foreground(t.Error),
		key:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		hint:     lipgloss.NewStyle().Foreground(t.Muted),
		cursor:   lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		item:     lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		focused:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Foreground(t.Primary),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(panelWidth),
		graph: lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0, 0, 0),
	}
}

// hints renders "key action" pairs on one line.
func (s styles) hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.key.Render(pairs[i]))
		b.WriteString(s.hint.Render(" " + pairs[i+1]))
	}
	return b.String()
}

func (s styles) row(label, value string) string {
	return s.label.Render(label) + s.value.Render(value) + "\n"
}

func (s styles) separator(width int) string {
	return s.hint.Render(strings.Repeat("─", width))
}
