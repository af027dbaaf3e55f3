package bots

import "context"

// Repo is persistence for blueprints, session links, and conversation
// history.
type Repo interface {
	SaveBlueprint(ctx context.Context, blueprint *Blueprint) error
	GetBlueprint(ctx context.Context, botID string) (*Blueprint, error)

	// AssignSession links a session to a bot. Re-linking to another bot
	// starts the session's history over; re-linking to the same bot
	// keeps it.
	AssignSession(ctx context.Context, botID, sessionID string) error
	GetSessionState(ctx context.Context, sessionID string) (*SessionState, error)

	ResetHistory(ctx context.Context, botID string) error
	AppendTurn(ctx context.Context, botID, sessionID string, turn ChatTurn) error
	GetHistory(ctx context.Context, botID, sessionID string) ([]ChatTurn, error)
}

// Service is the persona backend's application logic.
type Service interface {
	CreateBlueprint(ctx context.Context, answers InterviewAnswers, sessionID string) (*Blueprint, error)
	Chat(ctx context.Context, botID, sessionID, content string) (string, error)
	Snippet(ctx context.Context, botID, language string) (*Snippet, error)
	SessionState(ctx context.Context, sessionID string) (*SessionState, error)
}
