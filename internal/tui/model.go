// Package tui is the full-screen Bubble Tea front-end for the directory. It
// offers the same operations and flows as the line-oriented console.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/directory"
	"github.com/smileynet/addressbook/internal/store"
)

// mode is the screen the model is showing.
type mode int

const (
	modeMenu mode = iota
	modeName
	modeForm
	modeResults
	modePick
)

// Model is the root Bubble Tea model.
type Model struct {
	dir  *directory.Directory
	mode mode

	pending directory.Command // operation waiting on the name prompt
	input   textinput.Model   // name prompt and pick index
	form    form

	matches []store.Match
	target  *store.Match // record being overwritten; nil while adding

	heading string
	lines   []string

	status    string
	statusErr bool

	keys     keyMap
	styles   styles
	help     help.Model
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRenderer binds the model's styles to r, which decides the colour profile.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		if r != nil {
			m.styles = newStyles(r)
		}
	}
}

// NewModel creates a Model in menu mode over dir.
func NewModel(dir *directory.Directory, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	m := Model{
		dir:    dir,
		mode:   modeMenu,
		input:  ti,
		keys:   defaultKeyMap(),
		styles: newStyles(lipgloss.DefaultRenderer()),
		help:   help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeMenu:
			return m.updateMenu(msg)
		case modeName:
			return m.updateName(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeResults:
			m.mode = modeMenu
			return m, nil
		case modePick:
			return m.updatePick(msg)
		}
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Menu.Quit):
		m.quitting = true
		return m, tea.Quit
	case !key.Matches(msg, m.keys.Menu.Select):
		m.setError(directory.ErrInvalidSelection)
		return m, nil
	}
	cmd, err := directory.ParseCommand(msg.String())
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.clearStatus()

	switch cmd {
	case directory.CmdAdd:
		if err := m.dir.CheckCapacity(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.target = nil
		m.matches = nil
		return m.openForm()

	case directory.CmdList:
		all, err := m.dir.List()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.heading = fmt.Sprintf("Contacts in directory: %d", len(all))
		m.lines = m.lines[:0]
		for _, c := range all {
			m.lines = append(m.lines, c.String())
		}
		m.mode = modeResults
		return m, nil

	case directory.CmdRemove, directory.CmdSearch, directory.CmdModify:
		if m.dir.Size() == 0 {
			m.setError(directory.ErrEmptyDirectory)
			return m, nil
		}
		m.pending = cmd
		m.mode = modeName
		m.input.Reset()
		m.input.Placeholder = "name"
		return m, m.input.Focus()

	case directory.CmdClear:
		m.dir.Clear()
		m.setSuccess("Directory cleared.")
		return m, nil
	}

	return m, nil
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Input.Back):
		m.input.Blur()
		m.mode = modeMenu
		return m, nil
	case key.Matches(msg, m.keys.Input.Confirm):
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	name := strings.TrimSpace(m.input.Value())
	if name == "" {
		return m, nil
	}
	m.input.Blur()
	m.mode = modeMenu

	switch m.pending {
	case directory.CmdRemove:
		if err := m.dir.Remove(name); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setSuccess("Contact removed.")
		return m, nil

	case directory.CmdSearch:
		matches, err := m.dir.Search(name)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.heading = fmt.Sprintf("Search results for %q", name)
		m.lines = m.lines[:0]
		for _, mt := range matches {
			m.lines = append(m.lines, mt.Contact.String())
		}
		m.mode = modeResults
		return m, nil

	case directory.CmdModify:
		matches, err := m.dir.Search(name)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.matches = matches
		if len(matches) == 1 {
			m.target = &m.matches[0]
			return m.openForm()
		}
		return m.openPick()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Input.Back):
		return m.closeForm()
	case key.Matches(msg, m.keys.Input.Confirm):
		if !m.form.advance() {
			return m, m.form.fields[m.form.focus].Focus()
		}
	default:
		return m, m.form.update(msg)
	}

	c := m.form.contact()
	if m.target == nil {
		if err := m.dir.Add(c); err != nil {
			m.setError(err)
		} else {
			m.setSuccess("Contact added.")
		}
		return m.closeForm()
	}
	if err := m.dir.Overwrite(*m.target, c); err != nil {
		m.setError(err)
	} else {
		m.setSuccess("Contact modified.")
		m.target.Contact = c
	}
	return m.closeForm()
}

func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Input.Back):
		m.input.Blur()
		m.mode = modeMenu
		m.matches = nil
		return m, nil
	case key.Matches(msg, m.keys.Input.Confirm):
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	picked, done, err := directory.Pick(m.matches, m.input.Value())
	m.input.Reset()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if done {
		m.input.Blur()
		m.mode = modeMenu
		m.matches = nil
		return m, nil
	}
	m.clearStatus()
	for i := range m.matches {
		if m.matches[i].ID == picked.ID {
			m.target = &m.matches[i]
		}
	}
	return m.openForm()
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.input.Blur()
	m.form = newForm()
	m.mode = modeForm
	return m, m.form.fields[fieldName].Focus()
}

// closeForm returns to the pick list after editing one of several matches,
// otherwise to the menu.
func (m Model) closeForm() (tea.Model, tea.Cmd) {
	m.target = nil
	if len(m.matches) > 1 {
		return m.openPick()
	}
	m.matches = nil
	m.mode = modeMenu
	return m, nil
}

func (m Model) openPick() (tea.Model, tea.Cmd) {
	m.mode = modePick
	m.input.Reset()
	m.input.Placeholder = fmt.Sprintf("1-%d, -1 to finish", len(m.matches))
	return m, m.input.Focus()
}

func (m *Model) setError(err error) {
	m.status = directory.Describe(err)
	m.statusErr = true
}

func (m *Model) setSuccess(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// View renders the current screen, status line and help bar.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye.\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(fmt.Sprintf("Address Book  %d/%d", m.dir.Size(), m.dir.Capacity())))
	b.WriteString("\n")
	b.WriteString(m.styles.frame.Render(strings.TrimRight(m.viewBody(), "\n")))
	b.WriteString("\n")
	if m.status != "" {
		style := m.styles.success
		if m.statusErr {
			style = m.styles.err
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys.forMode(m.mode)))
	return b.String()
}

func (m Model) viewBody() string {
	var b strings.Builder
	switch m.mode {
	case modeMenu:
		for _, cmd := range directory.Commands() {
			fmt.Fprintf(&b, "%d. %s\n", int(cmd), cmd.Label())
		}
	case modeName:
		fmt.Fprintf(&b, "%s: enter a name\n\n%s\n", m.pending.Label(), m.input.View())
	case modeForm:
		switch {
		case m.target == nil:
			b.WriteString(m.styles.title.Render("New contact") + "\n\n")
		case len(m.matches) == 1:
			// A single match skips the pick list, so show it here.
			b.WriteString("Found the following contacts:\n")
			fmt.Fprintf(&b, "1. %s\n\n", m.matches[0].Contact)
			b.WriteString(m.styles.title.Render("Modify: "+m.target.Contact.Name) + "\n\n")
		default:
			b.WriteString(m.styles.title.Render("Modify: "+m.target.Contact.String()) + "\n\n")
		}
		b.WriteString(m.form.view(m.styles))
	case modeResults:
		b.WriteString(m.styles.title.Render(m.heading) + "\n")
		for _, l := range m.lines {
			b.WriteString(l + "\n")
		}
	case modePick:
		b.WriteString("Found the following contacts:\n")
		for i, mt := range m.matches {
			fmt.Fprintf(&b, "%d. %s\n", i+1, mt.Contact)
		}
		fmt.Fprintf(&b, "\n%s\n", m.input.View())
	}
	return b.String()
}
