// chessboard serves, plays and analyzes positions on a two-sided chess board.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

const programVersion = "0.1.0"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("chessboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	global := newGlobalFlags(fs)
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if global.version {
		fmt.Fprintf(stdout, "chessboard version %s\n", programVersion)
		return exitOK
	}

	if fs.NArg() == 0 {
		usage(fs)
		return exitUsage
	}

	cfg, err := config.Load(global.envFile)
	if err != nil {
		fmt.Fprintf(stderr, "chessboard: %v\n", err)
		return exitError
	}
	global.apply(cfg, visited(fs))

	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "chessboard: %v\n", err)
		return exitError
	}

	command, cmdArgs := fs.Arg(0), fs.Args()[1:]
	logger = logger.With().Str("command", command).Logger()

	switch command {
	case "serve":
		err = runServe(ctx, cfg, logger, cmdArgs, stderr)
	case "play":
		err = runPlay(cfg, logger, cmdArgs, stdout, stderr)
	case "analyze":
		err = runAnalyze(ctx, cfg, logger, cmdArgs, stdin, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "chessboard: unknown command %q\n", command)
		usage(fs)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		logger.Error().Err(err).Msg("command failed")
		return exitError
	}
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "chessboard version %s\n\n", programVersion)
	fmt.Fprintln(w, "Usage: chessboard [flags] <command> [command flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve     run the HTTP game server")
	fmt.Fprintln(w, "  play      apply moves to a placement and print the result")
	fmt.Fprintln(w, "  analyze   summarize placements read one per line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}

// newEngine builds an engine from the configured placement.
func newEngine(cfg *config.Config, logger zerolog.Logger) (*engine.Engine, error) {
	placement := cfg.Engine.Placement
	if placement == "" {
		placement = engine.InitialPlacement
	}
	return engine.New(placement, engineOptions(cfg, logger)...)
}

func engineOptions(cfg *config.Config, logger zerolog.Logger) []engine.Option {
	return []engine.Option{
		engine.WithLogger(logger),
		engine.WithSelfCheckFilter(cfg.Engine.SelfCheckFilter),
	}
}
