package session

import "context"

// Store is the durable backing for the active session identifier.
// Implementations hold a single plain string value.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, id string) error
}
