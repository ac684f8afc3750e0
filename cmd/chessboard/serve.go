package main

import (
	"context"
	"crypto/rand"
	"flag"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/config"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/httpapi"
	"github.com/lgbarn/chessboard-go/internal/session"
)

func runServe(ctx context.Context, cfg *config.Config, logger zerolog.Logger, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sf := newServeFlags(fs, cfg)
	if err := parseCommand(fs, cfg, sf, args); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", cfg.Server.Addr)
	}
	return serve(ctx, cfg, logger, ln)
}

// serve runs the HTTP API on ln until ctx is done, then shuts down
// gracefully within the configured timeout.
func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger, ln net.Listener) error {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		ln.Close()
		return err
	}
	defer closeStore()

	secret := []byte(cfg.Token.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			ln.Close()
			return errors.Wrap(err, "generate token secret")
		}
		logger.Warn().Msg("no token secret configured, seat tokens will not survive a restart")
	}
	tokens, err := session.NewTokens(secret, cfg.Token.TTL)
	if err != nil {
		ln.Close()
		return err
	}

	games := session.NewManager(store, logger, engineOptions(cfg, logger)...)
	games.SetDefaultPlacement(cfg.Engine.Placement)

	api := httpapi.New(games, tokens, logger, httpapi.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		SquareSize:     cfg.Render.SquareSize,
		AssetPrefix:    cfg.Render.AssetPrefix,
	})
	srv := &http.Server{
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// openStore returns the configured session store and its release function.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (session.Store, func(), error) {
	if cfg.Store.DBPath == "" {
		logger.Info().Msg("using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	}

	db, err := session.OpenSQLite(ctx, cfg.Store.DBPath, logger)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("close session store")
		}
	}, nil
}
