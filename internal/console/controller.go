// Package console runs the line-oriented menu session over a reader and a
// writer, typically stdin and stdout.
package console

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/directory"
	"github.com/smileynet/addressbook/internal/store"
)

const farewell = "Goodbye."

// DefaultMaxLine is the longest input line accepted, in bytes. Longer lines
// are discarded and the prompt is repeated.
const DefaultMaxLine = 1 << 20

// input is one line delivered by the reader goroutine.
type input struct {
	text     string
	overlong bool
	err      error
}

// Controller drives one interactive session against a Directory.
type Controller struct {
	dir      *directory.Directory
	in       *bufio.Scanner
	out      io.Writer
	styles   Styles
	log      *zap.Logger
	handlers map[directory.Command]func(context.Context) error

	maxLine    int
	discarding bool // inside a line longer than maxLine
	overlong   bool // the last token closed such a line
	lines      chan input
	done       chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithStyles overrides the output styles.
func WithStyles(s Styles) Option {
	return func(c *Controller) {
		c.styles = s
	}
}

// WithLogger sets the logger for session events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMaxLine sets the longest accepted input line. Non-positive values are ignored.
func WithMaxLine(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxLine = n
		}
	}
}

// New creates a Controller reading from in and writing to out. Styles
// default to colourless output.
func New(dir *directory.Directory, in io.Reader, out io.Writer, opts ...Option) *Controller {
	c := &Controller{
		dir:     dir,
		out:     out,
		styles:  NewStyles(NewRenderer(out, config.ColorNever)),
		log:     zap.NewNop(),
		maxLine: DefaultMaxLine,
	}
	c.handlers = map[directory.Command]func(context.Context) error{
		directory.CmdAdd:    c.add,
		directory.CmdList:   c.list,
		directory.CmdRemove: c.remove,
		directory.CmdSearch: c.search,
		directory.CmdModify: c.modify,
		directory.CmdClear:  c.clear,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.in = bufio.NewScanner(in)
	c.in.Buffer(make([]byte, 0, min(4096, c.maxLine+1)), c.maxLine+1)
	c.in.Split(c.splitLines)
	return c
}

// Run shows the menu and dispatches selections until the user enters 0 or
// input ends. End of input is a normal exit. A cancelled ctx stops the
// session at the next prompt and Run returns ctx.Err(). Run must only be
// called once.
func (c *Controller) Run(ctx context.Context) error {
	c.lines = make(chan input)
	c.done = make(chan struct{})
	defer close(c.done)
	go c.pump()

	c.showMenu()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := c.readField(ctx, "Enter your choice: ")
		if err != nil {
			return c.finish(err)
		}
		cmd, err := directory.ParseCommand(line)
		if err != nil {
			c.log.Debug("selection rejected", zap.String("input", line))
			c.report(err)
			continue
		}
		if cmd == directory.CmdExit {
			c.println(c.styles.Menu, farewell)
			return nil
		}
		if err := c.handlers[cmd](ctx); err != nil {
			return c.finish(err)
		}
	}
}

// finish ends the session after a read failure.
func (c *Controller) finish(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		c.log.Debug("input closed, ending session")
		c.printPlain("")
		c.println(c.styles.Menu, farewell)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.log.Debug("session interrupted", zap.Error(err))
		c.printPlain("")
		c.println(c.styles.Menu, farewell)
		return err
	}
	return fmt.Errorf("console: reading input: %w", err)
}

func (c *Controller) showMenu() {
	rule := strings.Repeat("*", 32)
	c.println(c.styles.Rule, rule)
	for _, cmd := range directory.Commands() {
		c.println(c.styles.Menu, fmt.Sprintf("*****   %d. %-16s *****", int(cmd), cmd.Label()))
	}
	c.println(c.styles.Rule, rule)
}

func (c *Controller) add(ctx context.Context) error {
	if err := c.dir.CheckCapacity(); err != nil {
		c.report(err)
		return nil
	}
	p, err := c.readContact(ctx)
	if err != nil {
		return err
	}
	if err := c.dir.Add(p); err != nil {
		c.report(err)
		return nil
	}
	c.println(c.styles.Success, "Contact added.")
	return nil
}

func (c *Controller) list(context.Context) error {
	all, err := c.dir.List()
	if err != nil {
		c.report(err)
		return nil
	}
	c.println(c.styles.Menu, fmt.Sprintf("Contacts in directory: %d", len(all)))
	for _, p := range all {
		c.printPlain(p.String())
	}
	return nil
}

func (c *Controller) remove(ctx context.Context) error {
	if c.dir.Size() == 0 {
		c.report(directory.ErrEmptyDirectory)
		return nil
	}
	name, err := c.readField(ctx, "Enter the name to remove: ")
	if err != nil {
		return err
	}
	if err := c.dir.Remove(name); err != nil {
		c.report(err)
		return nil
	}
	c.println(c.styles.Success, "Contact removed.")
	return nil
}

func (c *Controller) search(ctx context.Context) error {
	if c.dir.Size() == 0 {
		c.report(directory.ErrEmptyDirectory)
		return nil
	}
	name, err := c.readField(ctx, "Enter the name to search: ")
	if err != nil {
		return err
	}
	matches, err := c.dir.Search(name)
	if err != nil {
		c.report(err)
		return nil
	}
	for _, m := range matches {
		c.printPlain(m.Contact.String())
	}
	return nil
}

func (c *Controller) modify(ctx context.Context) error {
	if c.dir.Size() == 0 {
		c.report(directory.ErrEmptyDirectory)
		return nil
	}
	name, err := c.readField(ctx, "Enter the name to modify: ")
	if err != nil {
		return err
	}
	matches, err := c.dir.Search(name)
	if err != nil {
		c.report(err)
		return nil
	}

	c.println(c.styles.Menu, "Found the following contacts:")
	for i, m := range matches {
		c.printPlain(fmt.Sprintf("%d. %s", i+1, m.Contact))
	}

	if len(matches) == 1 {
		return c.overwrite(ctx, matches[0])
	}

	prompt := fmt.Sprintf("Enter the number of the contact to modify (1-%d), -1 to finish: ", len(matches))
	for {
		line, err := c.readField(ctx, prompt)
		if err != nil {
			return err
		}
		m, done, err := directory.Pick(matches, line)
		if err != nil {
			c.report(err)
			continue
		}
		if done {
			return nil
		}
		if err := c.overwrite(ctx, m); err != nil {
			return err
		}
	}
}

// overwrite collects a new record and writes it over m.
func (c *Controller) overwrite(ctx context.Context, m store.Match) error {
	p, err := c.readContact(ctx)
	if err != nil {
		return err
	}
	if err := c.dir.Overwrite(m, p); err != nil {
		c.report(err)
		return nil
	}
	c.println(c.styles.Success, "Contact modified.")
	return nil
}

func (c *Controller) clear(context.Context) error {
	c.dir.Clear()
	c.println(c.styles.Success, "Directory cleared.")
	return nil
}

// readContact runs the record entry flow: name, age, sex, phone, address.
// It never looks at the directory.
func (c *Controller) readContact(ctx context.Context) (contact.Contact, error) {
	var p contact.Contact
	var err error

	if p.Name, err = c.readField(ctx, "Enter name: "); err != nil {
		return contact.Contact{}, err
	}
	for {
		line, err := c.readField(ctx, "Enter age: ")
		if err != nil {
			return contact.Contact{}, err
		}
		if p.Age, err = strconv.Atoi(line); err == nil {
			break
		}
		c.println(c.styles.Error, "Age must be a whole number.")
	}
	for {
		line, err := c.readField(ctx, "Enter sex (1: Male, 2: Female): ")
		if err != nil {
			return contact.Contact{}, err
		}
		if p.Sex, err = contact.ParseSex(line); err == nil {
			break
		}
		c.report(err)
	}
	if p.Phone, err = c.readField(ctx, "Enter phone: "); err != nil {
		return contact.Contact{}, err
	}
	if p.Address, err = c.readField(ctx, "Enter address: "); err != nil {
		return contact.Contact{}, err
	}
	return p, nil
}

// readField prints prompt and returns the next non-blank input line,
// trimmed. It returns io.EOF when input ends and ctx.Err() when ctx is
// cancelled while waiting. Overlong lines are reported and the prompt repeated.
func (c *Controller) readField(ctx context.Context, prompt string) (string, error) {
	_, _ = fmt.Fprint(c.out, c.styles.Prompt.Render(prompt))
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case in, ok := <-c.lines:
			if !ok {
				return "", io.EOF
			}
			if in.err != nil {
				return "", in.err
			}
			if in.overlong {
				c.log.Info("input line discarded", zap.Int("limit", c.maxLine))
				c.printPlain("")
				c.println(c.styles.Error, fmt.Sprintf("Input too long, the limit is %d bytes.", c.maxLine))
				_, _ = fmt.Fprint(c.out, c.styles.Prompt.Render(prompt))
				continue
			}
			if line := strings.TrimSpace(in.text); line != "" {
				return line, nil
			}
		}
	}
}

// pump feeds scanned lines to readField until input ends or Run returns.
func (c *Controller) pump() {
	defer close(c.lines)
	for c.in.Scan() {
		in := input{text: c.in.Text(), overlong: c.overlong}
		c.overlong = false
		select {
		case c.lines <- in:
		case <-c.done:
			return
		}
	}
	if err := c.in.Err(); err != nil {
		select {
		case c.lines <- input{err: err}:
		case <-c.done:
		}
	}
}

// splitLines is bufio.ScanLines that discards lines longer than maxLine
// instead of failing. The discarded line yields one empty token with
// overlong set.
func (c *Controller) splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		if c.discarding {
			c.discarding = false
			c.overlong = true
			return i + 1, []byte{}, nil
		}
		return bufio.ScanLines(data, atEOF)
	}
	if c.discarding || len(data) > c.maxLine {
		c.discarding = true
		if atEOF {
			c.discarding = false
			c.overlong = true
			return len(data), []byte{}, nil
		}
		return len(data), nil, nil
	}
	return bufio.ScanLines(data, atEOF)
}

func (c *Controller) println(style lipgloss.Style, s string) {
	_, _ = fmt.Fprintln(c.out, style.Render(s))
}

func (c *Controller) printPlain(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

// report prints the message for a recoverable condition.
func (c *Controller) report(err error) {
	style := c.styles.Warning
	switch {
	case errors.Is(err, directory.ErrInvalidSelection),
		errors.Is(err, directory.ErrInvalidIndex),
		errors.Is(err, contact.ErrInvalidSexCode),
		errors.Is(err, store.ErrStaleMatch):
		style = c.styles.Error
	}
	c.println(style, directory.Describe(err))
}
