// Package studio is the interaction core of the IntegrAIte client: it
// owns the blueprint, transcript, and snippet shown to the user, drives
// backend calls in response to user intents, and reports every outcome
// through the notifier.
package studio

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/BatyaBracha/IntegrAIte/internal/bots"
	"github.com/BatyaBracha/IntegrAIte/internal/gateway"
	"github.com/BatyaBracha/IntegrAIte/internal/notify"
)

type op int

const (
	opGenerate op = iota
	opSend
	opSnippet
	opSwitch
)

// Studio serializes all state mutation behind one mutex; backend calls
// happen outside it. Each operation runs begin / execute / commit-or-
// abort / end, and the end phase always runs.
type Studio struct {
	gateway  Gateway
	toasts   Notifier
	sessions Sessions
	log      *zap.Logger

	mu       sync.Mutex
	state    State
	epoch    uint64
	onChange func(State)
}

func New(gw Gateway, toasts Notifier, sessions Sessions, log *zap.Logger) *Studio {
	return &Studio{
		gateway:  gw,
		toasts:   toasts,
		sessions: sessions,
		log:      log,
	}
}

// OnChange registers the observer that receives a state snapshot after
// every mutation. Replaces framework reactivity; pass nil to detach.
func (s *Studio) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns a deep copy of the current state.
func (s *Studio) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// RestoreSession resolves the durable session id and loads whatever the
// backend remembers for it. Failures are logged, not toasted: a fresh
// session legitimately has no remote state yet.
func (s *Studio) RestoreSession(ctx context.Context) {
	id := s.sessions.Resolve(ctx)

	s.mu.Lock()
	s.state.SessionID = id
	epoch := s.epoch
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.emit(snapshot)

	state, err := s.gateway.FetchSessionState(ctx, id)
	if err != nil {
		s.log.Warn("failed to restore session state", zap.String("session_id", id), zap.Error(err))
		return
	}

	s.commitSessionState(epoch, id, state)
}

// GenerateBlueprint turns interview answers into a fresh persona. A new
// blueprint replaces the old one wholesale and wipes the transcript and
// snippet that belonged to it.
func (s *Studio) GenerateBlueprint(ctx context.Context, answers bots.InterviewAnswers) {
	epoch, ok := s.begin(opGenerate, "Generating a bespoke bot blueprint…")
	if !ok {
		return
	}
	defer s.end(opGenerate)

	blueprint, err := s.gateway.GenerateBlueprint(ctx, answers)
	if err != nil {
		s.fail("generate blueprint", err, "Failed to create blueprint")
		return
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.state.Blueprint = blueprint
		s.state.History = nil
		s.state.Snippet = nil
	}
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.emit(snapshot)

	s.toasts.Push(notify.KindSuccess,
		fmt.Sprintf("Blueprint ready for %s. Jump into the playground!", blueprint.BotName))
}

// SendMessage posts one playground message and appends the user turn
// followed by the assistant turn. Without an active blueprint this is a
// silent no-op.
func (s *Studio) SendMessage(ctx context.Context, content string) {
	s.mu.Lock()
	blueprint := s.state.Blueprint
	s.mu.Unlock()
	if blueprint == nil {
		return
	}

	epoch, ok := s.begin(opSend, "Messaging your new bot persona…")
	if !ok {
		return
	}
	defer s.end(opSend)

	sessionID := s.sessions.Resolve(ctx)
	payload, err := s.gateway.SendChatMessage(ctx, blueprint.BotID, sessionID, content)
	if err != nil {
		s.fail("send message", err, "Playground request failed")
		return
	}

	reply := assistantContent(payload)

	s.mu.Lock()
	if s.epoch == epoch {
		s.state.History = append(s.state.History,
			bots.ChatTurn{Role: bots.RoleUser, Content: content},
			bots.ChatTurn{Role: bots.RoleAssistant, Content: reply},
		)
	}
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.emit(snapshot)

	s.toasts.Push(notify.KindSuccess, "Reply received. Keep iterating!")
}

// FetchSnippet replaces the snippet wholesale with one rendered for the
// active blueprint. Without a blueprint this is a silent no-op.
func (s *Studio) FetchSnippet(ctx context.Context, language string) {
	s.mu.Lock()
	blueprint := s.state.Blueprint
	s.mu.Unlock()
	if blueprint == nil {
		return
	}

	epoch, ok := s.begin(opSnippet, "Preparing code snippet…")
	if !ok {
		return
	}
	defer s.end(opSnippet)

	snippet, err := s.gateway.FetchSnippet(ctx, blueprint.BotID, language)
	if err != nil {
		s.fail("fetch snippet", err, "Failed to generate snippet")
		return
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.state.Snippet = snippet
	}
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.emit(snapshot)

	s.toasts.Push(notify.KindSuccess, "Snippet ready. Drop it into your stack.")
}

// SwitchSession installs a user-supplied session id and loads its
// remote state. The snippet survives only when the restored blueprint
// is the one it was generated for.
func (s *Studio) SwitchSession(ctx context.Context, id string) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		s.toasts.Push(notify.KindError, "Session ID cannot be empty.")
		return
	}
	if trimmed == s.sessions.Active() {
		s.toasts.Push(notify.KindInfo, "Already on that session.")
		return
	}

	_, ok := s.begin(opSwitch, "")
	if !ok {
		return
	}
	defer s.end(opSwitch)

	if err := s.sessions.Install(ctx, trimmed); err != nil {
		s.fail("switch session", err, "Failed to load that session")
		return
	}

	// The active session changed: commits of calls issued under the
	// previous session are stale from here on.
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.state.SessionID = trimmed
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.emit(snapshot)

	state, err := s.gateway.FetchSessionState(ctx, trimmed)
	if err != nil {
		s.fail("switch session", err, "Failed to load that session")
		return
	}

	s.commitSessionState(epoch, trimmed, state)
	s.toasts.Push(notify.KindSuccess, "Session restored.")
}

func (s *Studio) commitSessionState(epoch uint64, id string, state *bots.SessionState) {
	s.mu.Lock()
	if s.epoch == epoch {
		s.state.SessionID = id
		s.state.Blueprint = state.Blueprint
		s.state.History = state.History
		switch {
		case state.Blueprint == nil:
			s.state.Snippet = nil
		case s.state.Snippet != nil && s.state.Snippet.BotID != state.Blueprint.BotID:
			s.state.Snippet = nil
		}
	}
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.emit(snapshot)
}

// begin sets the operation's busy flag and pushes the opening info
// toast. It reports false when the same kind is already in flight.
func (s *Studio) begin(kind op, message string) (uint64, bool) {
	s.mu.Lock()
	if s.busy(kind) {
		s.mu.Unlock()
		return 0, false
	}
	s.setBusy(kind, true)
	epoch := s.epoch
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.emit(snapshot)

	if message != "" {
		s.toasts.Push(notify.KindInfo, message)
	}
	return epoch, true
}

func (s *Studio) end(kind op) {
	s.mu.Lock()
	s.setBusy(kind, false)
	snapshot := s.state.clone()
	s.mu.Unlock()
	s.emit(snapshot)
}

func (s *Studio) fail(action string, err error, fallback string) {
	s.log.Warn(action+" failed", zap.Error(err))
	s.toasts.Push(notify.KindError, errMessage(err, fallback))
}

func (s *Studio) busy(kind op) bool {
	switch kind {
	case opGenerate:
		return s.state.Busy.Generating
	case opSend:
		return s.state.Busy.Sending
	case opSnippet:
		return s.state.Busy.FetchingSnippet
	default:
		return s.state.Busy.SwitchingSession
	}
}

func (s *Studio) setBusy(kind op, value bool) {
	switch kind {
	case opGenerate:
		s.state.Busy.Generating = value
	case opSend:
		s.state.Busy.Sending = value
	case opSnippet:
		s.state.Busy.FetchingSnippet = value
	default:
		s.state.Busy.SwitchingSession = value
	}
}

func (s *Studio) emit(snapshot State) {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}

// assistantContent reads the reply field out of a playground response,
// falling back to the raw payload when the shape is off so a malformed
// backend answer still reaches the user.
func assistantContent(p gateway.Payload) string {
	if p.IsJSON() {
		var envelope struct {
			Reply *string `json:"reply"`
		}
		if err := p.Decode(&envelope); err == nil && envelope.Reply != nil {
			return *envelope.Reply
		}
		var text string
		if err := p.Decode(&text); err == nil {
			return text
		}
	}
	return p.Text()
}

func errMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
