// Package session resolves and persists the identifier that scopes
// every backend call made on behalf of this client.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptySession = errors.New("session: identifier is empty")

// Manager owns the active session identifier. Resolve and Install are
// its only mutators; the rest of the client reads through Active.
type Manager struct {
	mu     sync.Mutex
	store  Store
	active string
	log    *zap.Logger
}

func NewManager(store Store, log *zap.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Resolve returns the durably stored identifier, generating and
// persisting a fresh one when none exists. Repeated calls return the
// same identifier. A failing store degrades to a non-persisted id so
// the client stays usable.
func (m *Manager) Resolve(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != "" {
		return m.active
	}

	stored, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn("session store unreadable, using ephemeral id", zap.Error(err))
		m.active = newID()
		return m.active
	}
	if stored != "" {
		m.active = stored
		return m.active
	}

	m.active = newID()
	if err := m.store.Save(ctx, m.active); err != nil {
		m.log.Warn("session store unwritable, id will not survive restart", zap.Error(err))
	}
	return m.active
}

// Install replaces the active identifier with a user-supplied one.
func (m *Manager) Install(ctx context.Context, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ErrEmptySession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, trimmed); err != nil {
		m.log.Warn("session store unwritable, id will not survive restart", zap.Error(err))
	}
	m.active = trimmed
	return nil
}

// Active returns the current identifier, or "" before the first Resolve.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func newID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackID()
	}
	return id.String()
}

// fallbackID is practically unique within a session lifetime, not
// cryptographically strong.
func fallbackID() string {
	return fmt.Sprintf("%x-%08x", time.Now().UnixMilli(), rand.Uint32())
}
