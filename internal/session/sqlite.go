package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	placement  TEXT    NOT NULL,
	turn       INTEGER NOT NULL,
	en_passant INTEGER NOT NULL,
	created_at TEXT    NOT NULL,
	updated_at TEXT    NOT NULL
);`

// SQLiteStore persists snapshots in a single SQLite table. The board is
// stored in placement-string form.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// OpenSQLite opens (and creates if missing) the database at path and applies
// the schema.
func OpenSQLite(ctx context.Context, path string, logger zerolog.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info().Str("path", path).Msg("session store opened")
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts or replaces a snapshot.
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, placement, turn, en_passant, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			placement  = excluded.placement,
			turn       = excluded.turn,
			en_passant = excluded.en_passant,
			updated_at = excluded.updated_at`,
		snap.ID,
		engine.PlacementString(snap.Position.Board),
		int(snap.Position.Turn),
		int(snap.Position.EnPassant),
		snap.CreatedAt.UTC().Format(time.RFC3339Nano),
		snap.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save game %q: %w", snap.ID, err)
	}
	return nil
}

// Load reads a snapshot back.
func (s *SQLiteStore) Load(ctx context.Context, id string) (Snapshot, error) {
	var (
		placement        string
		turn, enPassant  int
		created, updated string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT placement, turn, en_passant, created_at, updated_at FROM games WHERE id = ?`, id,
	).Scan(&placement, &turn, &enPassant, &created, &updated)
	if err == sql.ErrNoRows {
		return Snapshot{}, notFound(id)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load game %q: %w", id, err)
	}

	board, err := engine.ParsePlacement(placement)
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, "load game %q", id)
	}
	pos := engine.Position{
		Board:     board,
		Turn:      chess.Color(turn),
		EnPassant: chess.Square(enPassant),
	}
	if err := pos.Validate(); err != nil {
		return Snapshot{}, errors.Wrapf(err, "load game %q", id)
	}

	snap := Snapshot{ID: id, Position: pos}
	if snap.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		s.logger.Warn().Err(err).Str("game_id", id).Msg("bad created_at")
	}
	if snap.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		s.logger.Warn().Err(err).Str("game_id", id).Msg("bad updated_at")
	}
	return snap, nil
}

// Delete removes a snapshot.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game %q: %w", id, err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}
