package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/tui"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

// isolate points config discovery and env overrides at empty locations.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{"ADDRESSBOOK_CAPACITY", "ADDRESSBOOK_COLOR", "ADDRESSBOOK_LOG_LEVEL", "ADDRESSBOOK_LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	k, err := kong.New(&cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}
	kctx, err := k.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return &cli, kctx
}

func TestCLI_VersionFlag(t *testing.T) {
	// Given: a CLI parser with version, commit, and date
	var cli CLI
	var buf bytes.Buffer
	versionStr := "v1.0.0 abc1234 2026-01-01T00:00:00Z"
	k, err := kong.New(&cli,
		kong.Vars{"version": versionStr},
		kong.Writers(&buf, &buf),
		kong.Exit(func(int) { panic(errExitCalled) }),
	)
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic from --version flag")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, errExitCalled) {
			panic(r)
		}

		// Then: version, commit, and date are all present in output
		output := buf.String()
		for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
			if !strings.Contains(output, want) {
				t.Errorf("version output = %q, want to contain %q", output, want)
			}
		}
	}()

	// When: -V is passed
	k.Parse([]string{"-V"}) //nolint:errcheck // -V triggers panic via Exit hook
}

func TestCLI_DefaultsToShell(t *testing.T) {
	// Given/When: no arguments
	_, kctx := parse(t)

	// Then: the shell command is selected
	if got := kctx.Command(); got != "shell" {
		t.Errorf("Command() = %q, want %q", got, "shell")
	}
}

func TestCLI_ShellFlags(t *testing.T) {
	// When: shell is invoked with overrides and a global config path
	cli, kctx := parse(t, "--config", "extra.yaml", "shell", "--capacity", "5", "--color", "never")

	// Then: every flag lands in its field
	if got := kctx.Command(); got != "shell" {
		t.Errorf("Command() = %q, want %q", got, "shell")
	}
	if cli.Shell.Capacity != 5 {
		t.Errorf("Capacity = %d, want 5", cli.Shell.Capacity)
	}
	if cli.Shell.Color != "never" {
		t.Errorf("Color = %q, want %q", cli.Shell.Color, "never")
	}
	if !strings.HasSuffix(cli.Config, "extra.yaml") {
		t.Errorf("Config = %q, want suffix %q", cli.Config, "extra.yaml")
	}
}

func TestCLI_TUICommand(t *testing.T) {
	cli, kctx := parse(t, "tui", "--no-alt-screen")

	if got := kctx.Command(); got != "tui" {
		t.Errorf("Command() = %q, want %q", got, "tui")
	}
	if !cli.TUI.NoAltScreen {
		t.Error("NoAltScreen = false, want true")
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	var cli CLI
	k, err := kong.New(&cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := k.Parse([]string{"export"}); err == nil {
		t.Error("Parse(export) error = nil, want error")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults when no files exist", func(t *testing.T) {
		isolate(t)

		cfg, err := loadConfig("", Overrides{})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Directory.Capacity != 1000 {
			t.Errorf("Capacity = %d, want 1000", cfg.Directory.Capacity)
		}
		if cfg.Display.Color != config.ColorAuto {
			t.Errorf("Color = %q, want %q", cfg.Display.Color, config.ColorAuto)
		}
	})

	t.Run("project file, env, then flags", func(t *testing.T) {
		// Given: a project config and an env override
		isolate(t)
		if err := os.MkdirAll(".addressbook", 0o755); err != nil {
			t.Fatal(err)
		}
		yaml := "directory:\n  capacity: 50\ndisplay:\n  color: always\n"
		if err := os.WriteFile(filepath.Join(".addressbook", "config.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("ADDRESSBOOK_CAPACITY", "20")

		// When: a flag overrides the colour only
		cfg, err := loadConfig("", Overrides{Color: "never"})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}

		// Then: env beats the file and the flag beats both
		if cfg.Directory.Capacity != 20 {
			t.Errorf("Capacity = %d, want 20", cfg.Directory.Capacity)
		}
		if cfg.Display.Color != config.ColorNever {
			t.Errorf("Color = %q, want %q", cfg.Display.Color, config.ColorNever)
		}
	})

	t.Run("flag capacity wins over env", func(t *testing.T) {
		isolate(t)
		t.Setenv("ADDRESSBOOK_CAPACITY", "20")

		cfg, err := loadConfig("", Overrides{Capacity: 3})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Directory.Capacity != 3 {
			t.Errorf("Capacity = %d, want 3", cfg.Directory.Capacity)
		}
	})

	t.Run("invalid colour flag fails validation", func(t *testing.T) {
		isolate(t)

		if _, err := loadConfig("", Overrides{Color: "sometimes"}); err == nil {
			t.Error("loadConfig() error = nil, want validation error")
		}
	})

	t.Run("negative capacity flag fails validation", func(t *testing.T) {
		isolate(t)

		if _, err := loadConfig("", Overrides{Capacity: -1}); err == nil {
			t.Error("loadConfig() error = nil, want validation error")
		}
	})

	t.Run("unknown field in explicit file", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "extra.yaml")
		if err := os.WriteFile(path, []byte("persist: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := loadConfig(path, Overrides{}); err == nil {
			t.Error("loadConfig() error = nil, want unknown field error")
		}
	})
}

func TestShellCmd_Session(t *testing.T) {
	t.Run("scripted add, list, exit", func(t *testing.T) {
		// Given: an isolated environment and a scripted session
		isolate(t)
		in := strings.NewReader(strings.Join([]string{
			"1", "Alice", "30", "2", "555-0101", "1 Main St",
			"2",
			"0",
		}, "\n") + "\n")
		var out bytes.Buffer

		// When: the shell runs with colour disabled
		cmd := ShellCmd{Overrides: Overrides{Color: config.ColorNever}}
		err := cmd.run(context.Background(), &Globals{}, in, &out)

		// Then: the session ends cleanly and shows the stored record
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
		got := out.String()
		for _, want := range []string{
			"Contact added.",
			"Contacts in directory: 1",
			"Name: Alice, Age: 30, Sex: Female, Phone: 555-0101, Address: 1 Main St",
			"Goodbye.",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q\n--- output ---\n%s", want, got)
			}
		}
		if strings.Contains(got, "\x1b[") {
			t.Errorf("output contains ANSI escapes with colour disabled:\n%q", got)
		}
	})

	t.Run("capacity flag limits adds", func(t *testing.T) {
		isolate(t)
		in := strings.NewReader(strings.Join([]string{
			"1", "A", "1", "1", "p", "a",
			"1",
			"0",
		}, "\n") + "\n")
		var out bytes.Buffer

		cmd := ShellCmd{Overrides: Overrides{Capacity: 1, Color: config.ColorNever}}
		if err := cmd.run(context.Background(), &Globals{}, in, &out); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if !strings.Contains(out.String(), "The directory is full") {
			t.Errorf("output missing full-directory message:\n%s", out.String())
		}
	})

	t.Run("empty input exits cleanly", func(t *testing.T) {
		isolate(t)
		var out bytes.Buffer

		cmd := ShellCmd{Overrides: Overrides{Color: config.ColorNever}}
		if err := cmd.run(context.Background(), &Globals{}, strings.NewReader(""), &out); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if !strings.Contains(out.String(), "Goodbye.") {
			t.Errorf("output missing farewell:\n%s", out.String())
		}
	})

	t.Run("bad config is a setup error", func(t *testing.T) {
		isolate(t)
		t.Setenv("ADDRESSBOOK_CAPACITY", "many")
		var out bytes.Buffer

		cmd := ShellCmd{}
		err := cmd.run(context.Background(), &Globals{}, strings.NewReader("0\n"), &out)
		if err == nil {
			t.Fatal("run() error = nil, want config error")
		}
		if !strings.HasPrefix(err.Error(), "shell: config:") {
			t.Errorf("error = %q, want prefix %q", err, "shell: config:")
		}
		if out.Len() != 0 {
			t.Errorf("output = %q, want nothing before setup succeeds", out.String())
		}
		if code := exitCode(err); code != exitSetup {
			t.Errorf("exitCode() = %d, want %d", code, exitSetup)
		}
	})

	t.Run("interrupt ends the session with a clean exit code", func(t *testing.T) {
		// Given: a session whose context is already cancelled
		isolate(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var out bytes.Buffer

		// When: the shell runs
		cmd := ShellCmd{Overrides: Overrides{Color: config.ColorNever}}
		err := cmd.run(ctx, &Globals{}, strings.NewReader("2\n0\n"), &out)

		// Then: the cancellation surfaces and maps to exit status 0
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("run() error = %v, want context.Canceled", err)
		}
		if code := exitCode(err); code != exitSuccess {
			t.Errorf("exitCode() = %d, want %d", code, exitSuccess)
		}
	})

	t.Run("log file receives diagnostics", func(t *testing.T) {
		isolate(t)
		logPath := filepath.Join(t.TempDir(), "addressbook.log")
		t.Setenv("ADDRESSBOOK_LOG_FILE", logPath)
		t.Setenv("ADDRESSBOOK_LOG_LEVEL", "debug")
		var out bytes.Buffer

		cmd := ShellCmd{Overrides: Overrides{Color: config.ColorNever}}
		if err := cmd.run(context.Background(), &Globals{}, strings.NewReader("0\n"), &out); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("reading log: %v", err)
		}
		if !strings.Contains(string(data), "session started") {
			t.Errorf("log = %q, want to contain %q", data, "session started")
		}
		if strings.Contains(out.String(), "session started") {
			t.Error("diagnostics leaked onto the session output")
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"cancelled", fmt.Errorf("console: %w", context.Canceled), exitSuccess},
		{"not a terminal", fmt.Errorf("tui: %w", tui.ErrNotTerminal), exitSetup},
		{"config", errors.New("config: directory.capacity must be positive, got 0"), exitSetup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
