package tui

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles bound to one renderer.
type styles struct {
	title        lipgloss.Style
	frame        lipgloss.Style
	label        lipgloss.Style
	focusedLabel lipgloss.Style
	success      lipgloss.Style
	err          lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	label := r.NewStyle().
		Width(10).
		Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}).
			Padding(0, 1),
		label: label,
		focusedLabel: label.
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		err:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
	}
}
