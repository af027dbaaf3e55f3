package ai

import "context"

// AI is the text-generation model behind blueprint and playground
// calls. It knows nothing about bots, sessions, or storage.
type AI interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
