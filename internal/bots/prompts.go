package bots

import (
	"fmt"
	"strings"
)

const blueprintPromptTemplate = `You are an expert AI product designer.
Given the following business context, craft a detailed persona and system prompt for a
custom chatbot. Respond ONLY with minified JSON following this schema:
{
  "bot_name": "string",
  "tagline": "string",
  "tone": "string",
  "language": "string",
  "knowledge_base": ["string"],
  "system_prompt": "string",
  "sample_questions": ["string"],
  "sample_responses": ["string"]
}
Avoid markdown fences. Be concise but vivid.

Business name: %s
Business description: %s
Desired bot role: %s
Target audience: %s
Preferred tone: %s
Preferred language: %s
`

const playgroundPromptTemplate = `You are now acting as %s, a bespoke AI assistant.
Persona mission: %s
Tone of voice: %s
Language: %s

System instructions:
%s

Conversation so far:
%s

Latest user message:
%s

Guidelines:
- Respond naturally in %s.
- Maintain the persona above.
- Offer concrete suggestions or questions that move the user toward their goal.
- Keep responses under 180 words unless the user explicitly requests more detail.
`

func buildBlueprintPrompt(a InterviewAnswers) string {
	audience := a.TargetAudience
	if audience == "" {
		audience = "not specified"
	}
	tone := a.PreferredTone
	if tone == "" {
		tone = "balanced professional"
	}
	return fmt.Sprintf(blueprintPromptTemplate,
		a.BusinessName,
		a.BusinessDescription,
		a.DesiredBotRole,
		audience,
		tone,
		a.PreferredLanguage,
	)
}

func buildPlaygroundPrompt(b *Blueprint, turns []ChatTurn, userMessage string) string {
	return fmt.Sprintf(playgroundPromptTemplate,
		b.BotName,
		b.Tagline,
		b.Tone,
		b.Language,
		b.SystemPrompt,
		formatHistory(b, turns),
		userMessage,
		b.Language,
	)
}

func formatHistory(b *Blueprint, turns []ChatTurn) string {
	if len(turns) == 0 {
		return "(no previous messages)"
	}
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		speaker := "User"
		if turn.Role == RoleAssistant {
			speaker = b.BotName
		}
		lines = append(lines, speaker+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}
