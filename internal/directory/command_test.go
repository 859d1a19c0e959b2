package directory

import (
	"errors"
	"testing"
)

func TestParseCommand_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"0", CmdExit},
		{"1", CmdAdd},
		{"2", CmdList},
		{"3", CmdRemove},
		{"4", CmdSearch},
		{"5", CmdModify},
		{" 6\t", CmdClear},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.input)
		if err != nil {
			t.Errorf("ParseCommand(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCommand(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseCommand_Invalid(t *testing.T) {
	for _, input := range []string{"7", "-1", "99", "one", ""} {
		_, err := ParseCommand(input)
		if !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("ParseCommand(%q) error = %v, want ErrInvalidSelection", input, err)
		}
	}
}

func TestCommands_MenuOrder(t *testing.T) {
	cmds := Commands()
	if len(cmds) != 7 {
		t.Fatalf("Commands() len = %d, want 7", len(cmds))
	}
	if cmds[0] != CmdAdd {
		t.Errorf("first command = %v, want CmdAdd", cmds[0])
	}
	if cmds[len(cmds)-1] != CmdExit {
		t.Errorf("last command = %v, want CmdExit", cmds[len(cmds)-1])
	}
	for _, c := range cmds {
		if c.Label() == "" {
			t.Errorf("command %d has empty label", int(c))
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrEmptyDirectory, "The directory is empty."},
		{ErrNotFound, "Contact not found."},
		{ErrCapacityExceeded, "The directory is full, no more contacts can be added."},
		{ErrInvalidSelection, "Invalid selection, please choose 0-6."},
		{ErrInvalidIndex, "Invalid number, please try again."},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := Describe(tt.err); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestDescribe_WrappedErrors(t *testing.T) {
	_, err := ParseCommand("9")
	if got := Describe(err); got != Describe(ErrInvalidSelection) {
		t.Errorf("Describe(wrapped) = %q, want %q", got, Describe(ErrInvalidSelection))
	}
}
