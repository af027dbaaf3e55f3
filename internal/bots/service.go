package bots

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BatyaBracha/IntegrAIte/internal/ai"
)

type service struct {
	repo  Repo
	ai    ai.AI
	model string
	log   *zap.Logger
}

// NewService wires the persona backend. model names the generation
// model so snippets can reference it.
func NewService(repo Repo, aiClient ai.AI, model string, log *zap.Logger) Service {
	return &service{
		repo:  repo,
		ai:    aiClient,
		model: model,
		log:   log,
	}
}

// CreateBlueprint asks the model to turn interview answers into a
// persona and stores the result under a fresh bot id. Any history the
// bot had is wiped: a regenerated persona starts its conversations
// over.
func (s *service) CreateBlueprint(ctx context.Context, answers InterviewAnswers, sessionID string) (*Blueprint, error) {
	answers.Normalize()
	if err := answers.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.ai.Generate(ctx, buildBlueprintPrompt(answers))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		s.log.Warn("unparseable blueprint response", zap.Error(err), zap.String("raw", truncate(raw, 200)))
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	var blueprint Blueprint
	if err := json.Unmarshal(payload, &blueprint); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	blueprint.BotID = uuid.NewString()
	applyBlueprintDefaults(&blueprint)

	if err := s.repo.SaveBlueprint(ctx, &blueprint); err != nil {
		return nil, err
	}
	if err := s.repo.ResetHistory(ctx, blueprint.BotID); err != nil {
		return nil, err
	}
	if sessionID != "" {
		if err := s.repo.AssignSession(ctx, blueprint.BotID, sessionID); err != nil {
			return nil, err
		}
	}

	s.log.Info("blueprint created",
		zap.String("bot_id", blueprint.BotID),
		zap.String("bot_name", blueprint.BotName))
	return &blueprint, nil
}

// Chat runs one playground turn and persists the user/assistant pair.
func (s *service) Chat(ctx context.Context, botID, sessionID, content string) (string, error) {
	blueprint, err := s.repo.GetBlueprint(ctx, botID)
	if err != nil {
		return "", err
	}

	if err := s.repo.AssignSession(ctx, botID, sessionID); err != nil {
		return "", err
	}
	turns, err := s.repo.GetHistory(ctx, botID, sessionID)
	if err != nil {
		return "", err
	}

	raw, err := s.ai.Generate(ctx, buildPlaygroundPrompt(blueprint, turns, content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	reply := strings.TrimSpace(raw)
	if reply == "" {
		return "", fmt.Errorf("%w: model returned an empty response", ErrAIUnavailable)
	}

	if err := s.repo.AppendTurn(ctx, botID, sessionID, ChatTurn{Role: RoleUser, Content: content}); err != nil {
		return "", err
	}
	if err := s.repo.AppendTurn(ctx, botID, sessionID, ChatTurn{Role: RoleAssistant, Content: reply}); err != nil {
		return "", err
	}

	return reply, nil
}

func (s *service) Snippet(ctx context.Context, botID, language string) (*Snippet, error) {
	blueprint, err := s.repo.GetBlueprint(ctx, botID)
	if err != nil {
		return nil, err
	}
	return buildSnippet(blueprint, language, s.model)
}

func (s *service) SessionState(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.repo.GetSessionState(ctx, sessionID)
}

// applyBlueprintDefaults fills whatever the model left out so a thin
// response still yields a usable persona.
func applyBlueprintDefaults(b *Blueprint) {
	if b.BotName == "" {
		b.BotName = "Custom AI Buddy"
	}
	if b.Tagline == "" {
		b.Tagline = "An assistant tailored to your business"
	}
	if b.Tone == "" {
		b.Tone = "friendly"
	}
	if b.Language == "" {
		b.Language = "he"
	}
	if b.SystemPrompt == "" {
		b.SystemPrompt = "You are a helpful assistant."
	}
	if b.KnowledgeBase == nil {
		b.KnowledgeBase = []string{}
	}
	if b.SampleQuestions == nil {
		b.SampleQuestions = []string{}
	}
	if b.SampleResponses == nil {
		b.SampleResponses = []string{}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
