package studio

import (
	"context"

	"github.com/BatyaBracha/IntegrAIte/internal/bots"
	"github.com/BatyaBracha/IntegrAIte/internal/gateway"
	"github.com/BatyaBracha/IntegrAIte/internal/notify"
)

// Gateway is the backend surface the studio drives.
type Gateway interface {
	GenerateBlueprint(ctx context.Context, answers bots.InterviewAnswers) (*bots.Blueprint, error)
	SendChatMessage(ctx context.Context, botID, sessionID, content string) (gateway.Payload, error)
	FetchSnippet(ctx context.Context, botID, language string) (*bots.Snippet, error)
	FetchSessionState(ctx context.Context, sessionID string) (*bots.SessionState, error)
}

// Notifier surfaces transient notifications to the user.
type Notifier interface {
	Push(kind notify.Kind, message string) string
}

// Sessions owns the active session identifier.
type Sessions interface {
	Resolve(ctx context.Context) string
	Install(ctx context.Context, id string) error
	Active() string
}
