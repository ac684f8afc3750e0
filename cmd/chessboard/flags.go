// flags.go - Command-line flag definitions and configuration
package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/lgbarn/chessboard-go/internal/config"
)

// errUsage marks command-line mistakes; run exits with exitUsage for them.
var errUsage = errors.New("usage error")

// globalFlags are accepted before the command name. They are applied on top
// of the environment, so only flags given explicitly take effect.
type globalFlags struct {
	envFile   string
	logLevel  string
	logFormat string
	placement string
	selfCheck bool
	version   bool
}

func newGlobalFlags(fs *flag.FlagSet) *globalFlags {
	g := &globalFlags{}
	fs.StringVar(&g.envFile, "env", "", "dotenv file to read (default: .env if present)")
	fs.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&g.logFormat, "log-format", "", "log format: console or json")
	fs.StringVar(&g.placement, "placement", "", "starting placement (default: initial position)")
	fs.BoolVar(&g.selfCheck, "self-check", false, "reject moves that leave the mover's king attacked")
	fs.BoolVar(&g.version, "version", false, "print version and exit")
	return g
}

// apply copies the explicitly set flags onto cfg.
func (g *globalFlags) apply(cfg *config.Config, set map[string]bool) {
	b := config.From(cfg)
	if set["log-level"] {
		b.WithLogLevel(g.logLevel)
	}
	if set["log-format"] {
		b.WithLogFormat(g.logFormat)
	}
	if set["placement"] {
		b.WithPlacement(g.placement)
	}
	if set["self-check"] {
		b.WithSelfCheckFilter(g.selfCheck)
	}
}

// visited returns the names of the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// commandFlags are the flags of one command that override configuration.
type commandFlags interface {
	apply(b *config.ConfigBuilder, set map[string]bool)
}

// parseCommand parses command flags, copies the explicitly set ones onto cfg
// and validates the resulting configuration.
func parseCommand(fs *flag.FlagSet, cfg *config.Config, cf commandFlags, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%s: %w", fs.Name(), errUsage)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "%s: unexpected arguments %q\n", fs.Name(), fs.Args())
		return fmt.Errorf("%s: %w", fs.Name(), errUsage)
	}
	cf.apply(config.From(cfg), visited(fs))
	return cfg.Validate()
}

type serveFlags struct {
	addr           string
	dbPath         string
	tokenSecret    string
	tokenTTL       time.Duration
	requestTimeout time.Duration
	squareSize     int
}

func newServeFlags(fs *flag.FlagSet, cfg *config.Config) *serveFlags {
	f := &serveFlags{}
	fs.StringVar(&f.addr, "addr", cfg.Server.Addr, "listen address")
	fs.StringVar(&f.dbPath, "db", cfg.Store.DBPath, "SQLite database file (default: in-memory sessions)")
	fs.StringVar(&f.tokenSecret, "token-secret", cfg.Token.Secret, "seat token signing secret (default: random per process)")
	fs.DurationVar(&f.tokenTTL, "token-ttl", cfg.Token.TTL, "seat token lifetime, 0 for no expiry")
	fs.DurationVar(&f.requestTimeout, "request-timeout", cfg.Server.RequestTimeout, "per-request timeout")
	fs.IntVar(&f.squareSize, "square-size", cfg.Render.SquareSize, "diagram square size in pixels")
	return f
}

func (f *serveFlags) apply(b *config.ConfigBuilder, set map[string]bool) {
	if set["addr"] {
		b.WithAddr(f.addr)
	}
	if set["db"] {
		b.WithDBPath(f.dbPath)
	}
	if set["token-secret"] {
		b.WithTokenSecret(f.tokenSecret)
	}
	if set["token-ttl"] {
		b.WithTokenTTL(f.tokenTTL)
	}
	if set["request-timeout"] {
		b.WithRequestTimeout(f.requestTimeout)
	}
	if set["square-size"] {
		b.WithSquareSize(f.squareSize)
	}
}

type playFlags struct {
	squareSize int
}

func newPlayFlags(fs *flag.FlagSet, cfg *config.Config) *playFlags {
	f := &playFlags{}
	fs.IntVar(&f.squareSize, "square-size", cfg.Render.SquareSize, "SVG square size in pixels")
	return f
}

func (f *playFlags) apply(b *config.ConfigBuilder, set map[string]bool) {
	if set["square-size"] {
		b.WithSquareSize(f.squareSize)
	}
}

type analyzeFlags struct {
	workers int
	format  string
	dedupe  bool
	unique  bool
}

func newAnalyzeFlags(fs *flag.FlagSet, cfg *config.Config) *analyzeFlags {
	f := &analyzeFlags{}
	fs.IntVar(&f.workers, "workers", cfg.Analyze.Workers, "number of workers (0: one per CPU)")
	fs.StringVar(&f.format, "format", cfg.Analyze.Format, "report format: text or json")
	fs.BoolVar(&f.dedupe, "dedupe", cfg.Analyze.Dedupe, "mark records whose position appeared earlier")
	fs.BoolVar(&f.unique, "unique", false, "omit duplicate records from the report (implies -dedupe)")
	return f
}

func (f *analyzeFlags) apply(b *config.ConfigBuilder, set map[string]bool) {
	if set["workers"] {
		b.WithWorkers(f.workers)
	}
	if set["format"] {
		b.WithReportFormat(f.format)
	}
	if set["dedupe"] {
		b.WithDedupe(f.dedupe)
	}
	if f.unique {
		b.WithDedupe(true)
	}
}
