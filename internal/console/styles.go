package console

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/smileynet/addressbook/internal/config"
)

// Styles holds the lipgloss styles for each kind of output line.
type Styles struct {
	Rule    lipgloss.Style
	Menu    lipgloss.Style
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds Styles bound to r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Rule:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		Menu:    r.NewStyle().Bold(true),
		Prompt:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
		Success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		Warning: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"}),
		Error:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
	}
}

// NewRenderer returns a renderer for w honouring the configured colour mode.
// In auto mode colour is only used when w is a terminal.
func NewRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	default:
		if !IsTTY(w) {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	return r
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
