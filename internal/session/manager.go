package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Manager is the single writer for every stored game. Update holds a
// per-game lock across load, mutate and save; View shares it.
type Manager struct {
	store  Store
	logger zerolog.Logger
	opts   []engine.Option

	// defaultPlacement is used by Create when no placement is given.
	defaultPlacement string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex

	now   func() time.Time
	newID func() (string, error)
}

// NewManager creates a manager over store. The engine options are applied to
// every engine the manager builds.
func NewManager(store Store, logger zerolog.Logger, opts ...engine.Option) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
		opts:   opts,

		defaultPlacement: engine.InitialPlacement,

		locks: make(map[string]*sync.RWMutex),
		now:   time.Now,
		newID: randomID,
	}
}

// SetDefaultPlacement changes the placement Create uses when given none.
// An empty placement restores the initial position. Call before serving.
func (m *Manager) SetDefaultPlacement(placement string) {
	if placement == "" {
		placement = engine.InitialPlacement
	}
	m.defaultPlacement = placement
}

// Create stores a new game. An empty placement starts from the default
// placement, the initial position unless SetDefaultPlacement changed it.
func (m *Manager) Create(ctx context.Context, placement string) (Snapshot, error) {
	if placement == "" {
		placement = m.defaultPlacement
	}
	e, err := engine.New(placement, m.opts...)
	if err != nil {
		return Snapshot{}, err
	}

	id, err := m.newID()
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "generate game id")
	}

	now := m.now().UTC()
	snap := Snapshot{
		ID:        id,
		Position:  e.Position(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Save(ctx, snap); err != nil {
		return Snapshot{}, err
	}

	m.logger.Info().Str("game_id", id).Str("placement", placement).Msg("game created")
	return snap, nil
}

// View runs fn on an engine restored from the stored game. Changes fn makes
// to the engine are discarded.
func (m *Manager) View(ctx context.Context, id string, fn func(*engine.Engine) error) error {
	lock := m.lock(id)
	lock.RLock()
	defer lock.RUnlock()

	e, _, err := m.restore(ctx, id)
	if err != nil {
		return err
	}
	return fn(e)
}

// Update runs fn on an engine restored from the stored game and saves the
// resulting position. Updates to one game are applied one at a time. If fn
// returns an error nothing is saved; errors.ErrNoChange skips the save and
// returns the stored snapshot without error.
func (m *Manager) Update(ctx context.Context, id string, fn func(*engine.Engine) error) (Snapshot, error) {
	lock := m.lock(id)
	lock.Lock()
	defer lock.Unlock()

	e, snap, err := m.restore(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	if err := fn(e); err != nil {
		if errors.Is(err, errors.ErrNoChange) {
			return snap, nil
		}
		return Snapshot{}, err
	}

	snap.Position = e.Position()
	snap.UpdatedAt = m.now().UTC()
	if err := m.store.Save(ctx, snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Delete removes a game.
func (m *Manager) Delete(ctx context.Context, id string) error {
	lock := m.lock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.locks, id)
	m.mu.Unlock()

	m.logger.Info().Str("game_id", id).Msg("game deleted")
	return nil
}

func (m *Manager) restore(ctx context.Context, id string) (*engine.Engine, Snapshot, error) {
	snap, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, Snapshot{}, err
	}
	e, err := engine.FromPosition(snap.Position, m.opts...)
	if err != nil {
		return nil, Snapshot{}, errors.Wrapf(err, "game %q", id)
	}
	return e, snap, nil
}

// lock returns the lock for one game, creating it on first use.
func (m *Manager) lock(id string) *sync.RWMutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.RWMutex{}
		m.locks[id] = l
	}
	return l
}

// randomID returns 16 random bytes, hex encoded.
func randomID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
