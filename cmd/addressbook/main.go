package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/console"
	"github.com/smileynet/addressbook/internal/directory"
	"github.com/smileynet/addressbook/internal/logging"
	"github.com/smileynet/addressbook/internal/store"
	"github.com/smileynet/addressbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Extra config file, applied after the user and project layers." type:"path"`
}

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Run the line-oriented menu on stdin/stdout."`
	TUI     TUICmd           `cmd:"" name:"tui" help:"Open the full-screen interface."`
}

// Overrides are per-run settings that take priority over config files.
type Overrides struct {
	Capacity int    `help:"Maximum number of contacts (0 keeps the configured value)." default:"0"`
	Color    string `help:"Colour output: auto, always or never (empty keeps the configured value)."`
}

// ShellCmd runs the menu over standard input and output.
type ShellCmd struct {
	Overrides
}

// TUICmd runs the Bubble Tea interface.
type TUICmd struct {
	Overrides
	NoAltScreen bool `help:"Render inline instead of using the alternate screen." default:"false"`
}

const (
	exitSuccess = 0
	exitSetup   = 1
)

// Run executes the shell command.
func (s *ShellCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.run(ctx, g, os.Stdin, os.Stdout)
}

// run wires a session over in and out, enabling testable wiring.
func (s *ShellCmd) run(ctx context.Context, g *Globals, in io.Reader, out io.Writer) error {
	cfg, err := loadConfig(g.Config, s.Overrides)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	logger, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer cleanup()

	dir := newDirectory(cfg, logger)
	styles := console.NewStyles(console.NewRenderer(out, cfg.Display.Color))
	ctrl := console.New(dir, in, out,
		console.WithStyles(styles),
		console.WithLogger(logger.Named("console")),
	)
	logger.Debug("session started", zap.Int("capacity", dir.Capacity()))
	return ctrl.Run(ctx)
}

// Run executes the tui command.
func (c *TUICmd) Run(g *Globals) error {
	if !console.IsTTY(os.Stdout) {
		return fmt.Errorf("tui: %w", tui.ErrNotTerminal)
	}
	cfg, err := loadConfig(g.Config, c.Overrides)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	logger, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return tui.Run(ctx, newDirectory(cfg, logger), tui.Options{
		AltScreen: !c.NoAltScreen,
		Renderer:  console.NewRenderer(os.Stdout, cfg.Display.Color),
	})
}

// loadConfig loads layered config from user, project and explicit paths,
// then applies env and flag overrides and validates the result.
func loadConfig(extra string, o Overrides) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook/config.yaml",
		extra,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if o.Capacity != 0 {
		cfg.Directory.Capacity = o.Capacity
	}
	if o.Color != "" {
		cfg.Display.Color = o.Color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newDirectory(cfg *config.Config, logger *zap.Logger) *directory.Directory {
	return directory.New(store.New(),
		directory.WithCapacity(cfg.Directory.Capacity),
		directory.WithLogger(logger.Named("directory")),
	)
}

// exitCode maps a command error to a process exit code. An interrupt is a
// normal exit. Any other error reaching main is a setup failure; directory
// conditions never leave a session.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, context.Canceled) {
		return exitSuccess
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("An in-memory contact directory with a text menu."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	code := exitCode(err)
	if code != exitSuccess {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}
	os.Exit(code)
}
