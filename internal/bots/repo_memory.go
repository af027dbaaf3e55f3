package bots

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// maxTurnsPerSession caps how much history one session accumulates;
// older turns are dropped first.
const maxTurnsPerSession = 200

type sessionRecord struct {
	BotID   string
	History []ChatTurn
}

// MemoryRepo keeps everything in process. Blueprints live until
// restart; idle sessions expire after sessionTTL, with the TTL sliding
// on every touch.
type MemoryRepo struct {
	mu         sync.Mutex
	blueprints *cache.Cache
	sessions   *cache.Cache
}

func NewMemoryRepo(sessionTTL time.Duration) *MemoryRepo {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &MemoryRepo{
		blueprints: cache.New(cache.NoExpiration, 0),
		sessions:   cache.New(sessionTTL, 10*time.Minute),
	}
}

func (r *MemoryRepo) SaveBlueprint(_ context.Context, blueprint *Blueprint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blueprints.Set(blueprint.BotID, blueprint.Clone(), cache.NoExpiration)
	return nil
}

func (r *MemoryRepo) GetBlueprint(_ context.Context, botID string) (*Blueprint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.blueprints.Get(botID)
	if !ok {
		return nil, ErrBlueprintNotFound
	}
	return stored.(*Blueprint).Clone(), nil
}

func (r *MemoryRepo) AssignSession(_ context.Context, botID, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.sessions.Get(sessionID); ok {
		rec := stored.(*sessionRecord)
		if rec.BotID == botID {
			r.sessions.SetDefault(sessionID, rec) // refresh TTL
			return nil
		}
	}
	r.sessions.SetDefault(sessionID, &sessionRecord{BotID: botID})
	return nil
}

func (r *MemoryRepo) GetSessionState(_ context.Context, sessionID string) (*SessionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions.Get(sessionID)
	if !ok {
		return &SessionState{}, nil
	}
	rec := stored.(*sessionRecord)

	state := &SessionState{History: append([]ChatTurn(nil), rec.History...)}
	if blueprint, ok := r.blueprints.Get(rec.BotID); ok {
		state.Blueprint = blueprint.(*Blueprint).Clone()
	}
	return state, nil
}

func (r *MemoryRepo) ResetHistory(_ context.Context, botID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for sessionID, item := range r.sessions.Items() {
		if rec, ok := item.Object.(*sessionRecord); ok && rec.BotID == botID {
			r.sessions.SetDefault(sessionID, &sessionRecord{BotID: botID})
		}
	}
	return nil
}

func (r *MemoryRepo) AppendTurn(_ context.Context, botID, sessionID string, turn ChatTurn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := &sessionRecord{BotID: botID}
	if stored, ok := r.sessions.Get(sessionID); ok {
		if existing := stored.(*sessionRecord); existing.BotID == botID {
			rec = existing
		}
	}

	rec.History = append(rec.History, turn)
	if len(rec.History) > maxTurnsPerSession {
		rec.History = rec.History[len(rec.History)-maxTurnsPerSession:]
	}
	r.sessions.SetDefault(sessionID, rec)
	return nil
}

func (r *MemoryRepo) GetHistory(_ context.Context, botID, sessionID string) ([]ChatTurn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions.Get(sessionID)
	if !ok {
		return nil, nil
	}
	rec := stored.(*sessionRecord)
	if rec.BotID != botID {
		return nil, nil
	}
	return append([]ChatTurn(nil), rec.History...), nil
}
