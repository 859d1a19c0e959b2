package directory

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is a menu selection.
type Command int

const (
	CmdExit Command = iota
	CmdAdd
	CmdList
	CmdRemove
	CmdSearch
	CmdModify
	CmdClear
)

var commandLabels = map[Command]string{
	CmdExit:   "Exit",
	CmdAdd:    "Add contact",
	CmdList:   "List contacts",
	CmdRemove: "Remove contact",
	CmdSearch: "Search contact",
	CmdModify: "Modify contact",
	CmdClear:  "Clear contacts",
}

// Label returns the menu text for c.
func (c Command) Label() string {
	if l, ok := commandLabels[c]; ok {
		return l
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Commands returns the menu entries in display order: the six operations
// followed by Exit.
func Commands() []Command {
	return []Command{CmdAdd, CmdList, CmdRemove, CmdSearch, CmdModify, CmdClear, CmdExit}
}

// ParseCommand parses a typed menu selection.
func ParseCommand(text string) (Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, text)
	}
	c := Command(n)
	if c < CmdExit || c > CmdClear {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSelection, n)
	}
	return c, nil
}
