package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/directory"
)

// ErrNotTerminal indicates the full-screen front-end was requested without a terminal.
var ErrNotTerminal = errors.New("tui: output is not a terminal")

// Options configures Run. Nil Input and Output mean the terminal.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
	// Renderer decides the colour profile; nil uses the default renderer.
	Renderer *lipgloss.Renderer
}

// Run starts the Bubble Tea program over dir and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, dir *directory.Directory, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(NewModel(dir, WithRenderer(opts.Renderer)), progOpts...)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
