package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	pkgredis "github.com/cadefab1n/cardapio-backend/pkg/redis"
)

// SnapshotStore persists cart snapshots between process restarts. Satisfied by
// pkg/redis.Client.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// ManagerOptions configures the session registry.
type ManagerOptions struct {
	Snapshots   SnapshotStore // optional; nil disables persistence
	SnapshotTTL time.Duration
	Logger      *logger.Logger
}

// Manager owns one Store per client session for the lifetime of the process.
// Stores are created on first access, rehydrated from the snapshot store when
// one is configured, and persisted again after every mutation through the
// store's subscription mechanism.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*sessionEntry

	snapshots SnapshotStore
	ttl       time.Duration
	logg      *logger.Logger
}

// sessionEntry defers rehydration until the first caller, and makes every
// caller wait for it: nobody may see the store before its contents are
// restored and the persistence subscription is registered.
type sessionEntry struct {
	once  sync.Once
	store *Store
}

// NewManager builds an empty registry.
func NewManager(opts ManagerOptions) *Manager {
	return &Manager{
		stores:    map[string]*sessionEntry{},
		snapshots: opts.Snapshots,
		ttl:       opts.SnapshotTTL,
		logg:      opts.Logger,
	}
}

type persistedCart struct {
	Items []Item `json:"items"`
}

// Get returns the store for the session, creating (and, when possible,
// rehydrating) it on first access. Concurrent first accesses block until the
// winner finished restoring, so no mutation can race the rehydration.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	entry, ok := m.stores[sessionID]
	if !ok {
		entry = &sessionEntry{store: NewStore()}
		m.stores[sessionID] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		if m.snapshots == nil {
			return
		}
		if items, ok := m.loadSnapshot(ctx, sessionID); ok {
			entry.store.Restore(items)
		}
		entry.store.Subscribe(func(snap Snapshot) {
			m.persist(sessionID, snap)
		})
	})

	return entry.store
}

func (m *Manager) loadSnapshot(ctx context.Context, sessionID string) ([]Item, bool) {
	raw, err := m.snapshots.Get(ctx, m.snapshots.CartKey(sessionID))
	if err != nil {
		if !errors.Is(err, pkgredis.Nil) && m.logg != nil {
			m.logg.Warn(m.logg.WithCartSession(ctx, sessionID), "cart snapshot load failed")
		}
		return nil, false
	}

	var persisted persistedCart
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		if m.logg != nil {
			m.logg.Warn(m.logg.WithCartSession(ctx, sessionID), "cart snapshot corrupt, starting empty")
		}
		return nil, false
	}
	return persisted.Items, true
}

func (m *Manager) persist(sessionID string, snap Snapshot) {
	ctx := context.Background()
	key := m.snapshots.CartKey(sessionID)

	if len(snap.Items) == 0 {
		if err := m.snapshots.Del(ctx, key); err != nil && m.logg != nil {
			m.logg.Warn(m.logg.WithCartSession(ctx, sessionID), "cart snapshot delete failed")
		}
		return
	}

	payload, err := json.Marshal(persistedCart{Items: snap.Items})
	if err != nil {
		if m.logg != nil {
			m.logg.Error(m.logg.WithCartSession(ctx, sessionID), "cart snapshot encode failed", err)
		}
		return
	}
	if err := m.snapshots.Set(ctx, key, string(payload), m.ttl); err != nil && m.logg != nil {
		m.logg.Warn(m.logg.WithCartSession(ctx, sessionID), "cart snapshot write failed")
	}
}
