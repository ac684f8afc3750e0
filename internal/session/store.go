// Package session keeps game positions between requests.
//
// A session is identified by a random ID and holds only the current Position;
// no move history is kept. Stores persist snapshots and the Manager serializes
// every mutation of a single game.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Snapshot is a stored game.
type Snapshot struct {
	ID        string
	Position  engine.Position
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists snapshots. Load and Delete of an unknown ID return an error
// wrapping errors.ErrGameNotFound.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is a map-backed Store. Its contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]Snapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string]Snapshot)}
}

// Save adds or replaces a snapshot.
func (m *MemoryStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[snap.ID] = snap
	return nil
}

// Load returns a copy of the stored snapshot.
func (m *MemoryStore) Load(ctx context.Context, id string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.games[id]
	if !ok {
		return Snapshot{}, notFound(id)
	}
	return snap, nil
}

// Delete removes a snapshot.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return notFound(id)
	}
	delete(m.games, id)
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("game %q: %w", id, errors.ErrGameNotFound)
}
