package bots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPlainObject(t *testing.T) {
	out, err := extractJSON(`{"bot_name":"Muse"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bot_name":"Muse"}`, string(out))
}

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "Here you go:\n```json\n{\"bot_name\": \"Muse\"}\n```\nEnjoy!"
	out, err := extractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bot_name":"Muse"}`, string(out))
}

func TestExtractJSONBracedFallback(t *testing.T) {
	raw := `Sure! The persona is {"bot_name": "Muse", "tone": "warm"} — hope that helps.`
	out, err := extractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bot_name":"Muse","tone":"warm"}`, string(out))
}

func TestExtractJSONNestedBraces(t *testing.T) {
	raw := `prefix {"outer": {"inner": 1}} suffix`
	out, err := extractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"outer":{"inner":1}}`, string(out))
}

func TestExtractJSONRejectsEmpty(t *testing.T) {
	_, err := extractJSON("   ")
	assert.Error(t, err)
}

func TestExtractJSONRejectsProse(t *testing.T) {
	_, err := extractJSON("I cannot answer that.")
	assert.Error(t, err)
}
