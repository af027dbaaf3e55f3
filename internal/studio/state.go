package studio

import "github.com/BatyaBracha/IntegrAIte/internal/bots"

// Flags gate re-entrant invocation per operation kind. A set flag only
// blocks the same kind of operation, never a different one.
type Flags struct {
	Generating       bool `json:"generating"`
	Sending          bool `json:"sending"`
	FetchingSnippet  bool `json:"fetching_snippet"`
	SwitchingSession bool `json:"switching_session"`
}

// State is everything the UI renders: the blueprint, its dependent
// transcript and snippet, and the busy flags.
type State struct {
	SessionID string          `json:"session_id"`
	Blueprint *bots.Blueprint `json:"blueprint,omitempty"`
	History   []bots.ChatTurn `json:"history"`
	Snippet   *bots.Snippet   `json:"snippet,omitempty"`
	Busy      Flags           `json:"busy"`
}

// clone deep-copies the state so observers never alias owned data.
func (s State) clone() State {
	out := s
	out.Blueprint = s.Blueprint.Clone()
	if s.History != nil {
		out.History = make([]bots.ChatTurn, len(s.History))
		copy(out.History, s.History)
	}
	if s.Snippet != nil {
		snippet := *s.Snippet
		out.Snippet = &snippet
	}
	return out
}
