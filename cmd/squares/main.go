package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/squares/cmd/squares/shared"
	"github.com/lox/squares/internal/config"
	"github.com/lox/squares/internal/service"
	"github.com/lox/squares/internal/store"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config  string           `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	Debug   bool             `short:"d" help:"Enable debug logging"`
	NoColor bool             `help:"Render the board without colors"`
	Version kong.VersionFlag `short:"v" help:"Show version"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Players          PlayersCmd          `cmd:"" help:"Manage players"`
	Claim            ClaimCmd            `cmd:"" help:"Claim squares for a player"`
	Unclaim          UnclaimCmd          `cmd:"" help:"Release a player's squares"`
	Clear            ClearCmd            `cmd:"" help:"Release squares whoever owns them"`
	Autofill         AutofillCmd         `cmd:"" help:"Fill a player's remaining quota with random squares"`
	Extras           ExtrasCmd           `cmd:"" help:"Hand out the leftover squares"`
	Lock             LockCmd             `cmd:"" help:"Lock the board and draw the row and column numbers"`
	Unlock           UnlockCmd           `cmd:"" help:"Unlock the board, keeping the drawn numbers"`
	RandomizeNumbers RandomizeNumbersCmd `cmd:"randomize-numbers" help:"Redraw the numbers on a locked, full board"`
	Flip             FlipCmd             `cmd:"" help:"Swap which team labels the columns"`
	Winner           WinnerCmd           `cmd:"" help:"Resolve and record checkpoint winners"`
	Board            BoardCmd            `cmd:"" help:"Show the board"`
	Status           StatusCmd           `cmd:"" help:"Summarize allocation progress"`
	Backup           BackupCmd           `cmd:"" help:"Export or restore a backup document"`
	Simulate         SimulateCmd         `cmd:"" help:"Measure the fairness of the extra-square draw"`
}

func parserOptions(ctx context.Context) []kong.Option {
	return []kong.Option{
		kong.Name("squares"),
		kong.Description("Football squares pool manager"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, parserOptions(shared.SetupSignalHandler())...)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// session is everything a command needs once config has been loaded.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	kv     store.KV
	svc    *service.Service
	out    io.Writer
}

func (g *Globals) stdout() io.Writer {
	if g.Stdout != nil {
		return g.Stdout
	}
	return os.Stdout
}

func (g *Globals) stderr() io.Writer {
	if g.Stderr != nil {
		return g.Stderr
	}
	return os.Stderr
}

// loadConfig reads and validates the configuration file.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", g.Config, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", g.Config, err)
	}
	return cfg, nil
}

func (g *Globals) logger(cfg *config.Config) *log.Logger {
	return shared.NewLogger(g.stderr(), cfg.Level(), g.Debug)
}

// open loads config, opens the configured store and builds the service.
func (g *Globals) open() (*session, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := g.logger(cfg)

	kv, err := store.Open(store.Backend(cfg.Store.Backend), cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	logger.Debug("Store opened", "backend", cfg.Store.Backend, "path", cfg.Store.Path)

	opts := []service.Option{
		service.WithLogger(logger.WithPrefix("BOARD")),
		service.WithPayouts(cfg.PayoutMap()),
	}
	if cfg.Seed != nil {
		opts = append(opts, service.WithSeed(*cfg.Seed))
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		kv:     kv,
		svc:    service.New(kv, opts...),
		out:    g.stdout(),
	}, nil
}

func (s *session) Close() error {
	return s.kv.Close()
}

// withSession opens a session for the duration of fn.
func (g *Globals) withSession(fn func(s *session) error) (err error) {
	s, err := g.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	return fn(s)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
