// Package bots holds the persona domain: blueprints generated from an
// interview, playground conversations scoped by session, and embeddable
// snippets rendered from a blueprint.
package bots

import "strings"

// InterviewAnswers is what the interview stage collects.
type InterviewAnswers struct {
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description"`
	DesiredBotRole      string `json:"desired_bot_role"`
	TargetAudience      string `json:"target_audience,omitempty"`
	PreferredTone       string `json:"preferred_tone,omitempty"`
	PreferredLanguage   string `json:"preferred_language,omitempty"`
}

// Normalize applies the language default and lowercasing expected by
// the prompt templates.
func (a *InterviewAnswers) Normalize() {
	if strings.TrimSpace(a.PreferredLanguage) == "" {
		a.PreferredLanguage = "he"
	}
	a.PreferredLanguage = strings.ToLower(a.PreferredLanguage)
}

// Validate reports the first field that makes the interview unusable.
func (a InterviewAnswers) Validate() error {
	switch {
	case len(strings.TrimSpace(a.BusinessName)) < 2:
		return &ValidationError{Detail: "business_name must be at least 2 characters"}
	case len(strings.TrimSpace(a.BusinessDescription)) < 20:
		return &ValidationError{Detail: "business_description must be at least 20 characters"}
	case len(strings.TrimSpace(a.DesiredBotRole)) < 10:
		return &ValidationError{Detail: "desired_bot_role must be at least 10 characters"}
	}
	return nil
}

// Blueprint is the structured definition of a generated bot persona.
// BotID never changes once assigned; a regenerated persona gets a new
// Blueprint with a new id.
type Blueprint struct {
	BotID           string   `json:"bot_id"`
	BotName         string   `json:"bot_name"`
	Tagline         string   `json:"tagline"`
	Tone            string   `json:"tone"`
	Language        string   `json:"language"`
	KnowledgeBase   []string `json:"knowledge_base"`
	SystemPrompt    string   `json:"system_prompt"`
	SampleQuestions []string `json:"sample_questions"`
	SampleResponses []string `json:"sample_responses"`
}

// Clone returns a deep copy so shared stores never alias caller data.
func (b *Blueprint) Clone() *Blueprint {
	if b == nil {
		return nil
	}
	out := *b
	out.KnowledgeBase = append([]string(nil), b.KnowledgeBase...)
	out.SampleQuestions = append([]string(nil), b.SampleQuestions...)
	out.SampleResponses = append([]string(nil), b.SampleResponses...)
	return &out
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one message of a playground conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Snippet is a copy-paste ready integration sample for one blueprint.
type Snippet struct {
	BotID        string `json:"bot_id"`
	Language     string `json:"language"`
	Code         string `json:"code"`
	Instructions string `json:"instructions"`
}

// SessionState is everything the backend remembers about a session.
type SessionState struct {
	Blueprint *Blueprint `json:"blueprint,omitempty"`
	History   []ChatTurn `json:"history"`
}

// ChatReply is the playground response envelope.
type ChatReply struct {
	Reply string `json:"reply"`
}
