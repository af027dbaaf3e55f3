package bots

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	SnippetPython     = "py"
	SnippetJavaScript = "js"
)

const pythonSnippetTemplate = `import os
from openai import OpenAI

MODEL = os.getenv("OPENAI_MODEL", %q)
SYSTEM_PROMPT = %s


def ask_%s(message, history=None):
    history = history or []
    client = OpenAI(api_key=os.environ["OPENAI_API_KEY"])
    messages = [
        {"role": "system", "content": "System: %s | %s"},
        {"role": "system", "content": SYSTEM_PROMPT},
        *history,
        {"role": "user", "content": message},
    ]
    response = client.chat.completions.create(model=MODEL, messages=messages)
    return response.choices[0].message.content.strip()


if __name__ == "__main__":
    print(ask_%s("Hi there! What can you do?"))
`

const javascriptSnippetTemplate = `import 'dotenv/config';
import OpenAI from 'openai';

const model = process.env.OPENAI_MODEL || %q;
const systemPrompt = %s;

export async function %s(message, history = []) {
  const client = new OpenAI({ apiKey: process.env.OPENAI_API_KEY });
  const response = await client.chat.completions.create({
    model,
    messages: [
      { role: 'system', content: 'System: %s | %s' },
      { role: 'system', content: systemPrompt },
      ...history,
      { role: 'user', content: message },
    ],
  });
  return response.choices[0].message.content.trim();
}
`

// buildSnippet renders the copy-paste sample for one blueprint.
func buildSnippet(b *Blueprint, language, model string) (*Snippet, error) {
	if language != SnippetPython && language != SnippetJavaScript {
		return nil, &ValidationError{Detail: fmt.Sprintf("unsupported snippet language %q", language)}
	}

	promptLiteral, err := json.Marshal(b.SystemPrompt)
	if err != nil {
		return nil, err
	}
	name := strings.ReplaceAll(b.BotName, `"`, "'")
	tagline := strings.ReplaceAll(b.Tagline, `"`, "'")

	var code, instructions string
	if language == SnippetPython {
		fn := strings.ReplaceAll(b.BotID, "-", "_")
		code = fmt.Sprintf(pythonSnippetTemplate,
			model, promptLiteral, fn, name, tagline, fn)
		instructions = "Set OPENAI_API_KEY (and optionally OPENAI_MODEL), install the openai package, then copy this snippet into your project."
	} else {
		code = fmt.Sprintf(javascriptSnippetTemplate,
			model, promptLiteral, exportName(b.BotID), name, tagline)
		instructions = "Install openai and dotenv, set OPENAI_API_KEY, then import the exported function."
	}

	return &Snippet{
		BotID:        b.BotID,
		Language:     language,
		Code:         code,
		Instructions: instructions,
	}, nil
}

// exportName turns a bot id into a camel-ish JS identifier, e.g.
// "bot-77" -> "askBot77".
func exportName(botID string) string {
	var sb strings.Builder
	sb.WriteString("ask")
	upperNext := true
	for _, r := range botID {
		if r == '-' || r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			sb.WriteString(strings.ToUpper(string(r)))
			upperNext = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
