package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/output"
	"github.com/lgbarn/chessboard-go/internal/render"
)

// ply is one requested move.
type ply struct {
	from, to chess.Square
	text     string
}

// parseMoves reads a comma-separated list of "from-to" pairs. Squares are
// either indices ("52-36") or names ("e7-e5").
func parseMoves(list string) ([]ply, error) {
	var plies []ply
	for i, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fromText, toText, ok := strings.Cut(part, "-")
		if !ok {
			return nil, errors.Wrapf(errors.ErrInvalidSquare, "move %d %q: want from-to", i+1, part)
		}
		from, err := chess.ParseSquare(strings.TrimSpace(fromText))
		if err != nil {
			return nil, errors.Wrapf(err, "move %d", i+1)
		}
		to, err := chess.ParseSquare(strings.TrimSpace(toText))
		if err != nil {
			return nil, errors.Wrapf(err, "move %d", i+1)
		}
		plies = append(plies, ply{from: from, to: to, text: part})
	}
	return plies, nil
}

func runPlay(cfg *config.Config, logger zerolog.Logger, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	moves := fs.String("moves", "", `comma-separated moves, e.g. "52-36,e2-e4"`)
	svgFile := fs.String("svg", "", "write an SVG diagram of the final board to this file")
	diagram := fs.Bool("diagram", false, "print a text diagram of the final board")
	reversed := fs.Bool("reversed", false, "draw diagrams from the other side")
	pf := newPlayFlags(fs, cfg)
	if err := parseCommand(fs, cfg, pf, args); err != nil {
		return err
	}

	plies, err := parseMoves(*moves)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	for i, p := range plies {
		if _, ok := e.Move(p.from, p.to); !ok {
			fmt.Fprintf(stdout, "move %d (%s) rejected\n", i+1, p.text)
		}
	}

	writeState(stdout, e)
	if *diagram {
		board := e.Board()
		fmt.Fprint(stdout, output.FormatBoard(&board, *reversed))
	}
	if *svgFile != "" {
		if err := writeSVGFile(*svgFile, e, cfg, *reversed); err != nil {
			return err
		}
		logger.Info().Str("file", *svgFile).Msg("diagram written")
	}
	return nil
}

func writeState(w io.Writer, e *engine.Engine) {
	s := e.Summary()
	fmt.Fprintf(w, "placement: %s\n", e.Placement())
	fmt.Fprintf(w, "turn: %s\n", strings.ToLower(s.Turn.String()))
	fmt.Fprintf(w, "en passant: %s\n", s.EnPassant)
	fmt.Fprintf(w, "in check: first=%t second=%t\n", s.InCheck[chess.First], s.InCheck[chess.Second])
	fmt.Fprintf(w, "mobility: first=%d second=%d\n", s.Mobility[chess.First], s.Mobility[chess.Second])
	fmt.Fprintf(w, "pieces: first=%d second=%d\n", s.Pieces[chess.First], s.Pieces[chess.Second])
}

func writeSVGFile(path string, e *engine.Engine, cfg *config.Config, reversed bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create diagram")
	}

	opts := render.DefaultOptions()
	opts.SquareSize = cfg.Render.SquareSize
	opts.AssetPrefix = cfg.Render.AssetPrefix
	opts.Reversed = reversed
	opts.Title = e.Placement()

	if err := render.WriteBoardSVG(f, e.Board(), opts); err != nil {
		f.Close()
		return errors.Wrap(err, "write diagram")
	}
	return f.Close()
}
