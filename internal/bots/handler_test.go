package bots

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBackend(t *testing.T, model *fakeAI) *httptest.Server {
	t.Helper()

	repo := NewMemoryRepo(time.Hour)
	svc := NewService(repo, model, "gpt-4o-mini", zap.NewNop())

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const interviewBody = `{
	"business_name": "Muse Atelier",
	"business_description": "A boutique studio crafting bespoke AI personas for founders.",
	"desired_bot_role": "Concierge that answers product questions"
}`

func TestBackendBlueprintToSessionStateFlow(t *testing.T) {
	model := &fakeAI{response: `{"bot_name": "Muse", "tagline": "Creative sidekick"}`}
	srv := newTestBackend(t, model)

	resp := postJSON(t, srv.URL+"/bots/blueprint", interviewBody, map[string]string{"X-Session-ID": "sess-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var blueprint Blueprint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&blueprint))
	require.NotEmpty(t, blueprint.BotID)
	assert.Equal(t, "Muse", blueprint.BotName)

	model.response = "Pong"
	chat := postJSON(t, srv.URL+"/bots/"+blueprint.BotID+"/playground",
		`{"content": "Ping"}`, map[string]string{"X-Session-ID": "sess-1"})
	require.Equal(t, http.StatusOK, chat.StatusCode)

	var reply ChatReply
	require.NoError(t, json.NewDecoder(chat.Body).Decode(&reply))
	assert.Equal(t, "Pong", reply.Reply)

	state, err := http.Get(srv.URL + "/bots/session/sess-1")
	require.NoError(t, err)
	defer state.Body.Close()
	require.Equal(t, http.StatusOK, state.StatusCode)

	var sessionState SessionState
	require.NoError(t, json.NewDecoder(state.Body).Decode(&sessionState))
	require.NotNil(t, sessionState.Blueprint)
	assert.Equal(t, blueprint.BotID, sessionState.Blueprint.BotID)
	require.Len(t, sessionState.History, 2)
	assert.Equal(t, "Ping", sessionState.History[0].Content)
	assert.Equal(t, "Pong", sessionState.History[1].Content)
}

func TestBackendSnippetEndpoint(t *testing.T) {
	model := &fakeAI{response: `{"bot_name": "Muse", "system_prompt": "You are Muse."}`}
	srv := newTestBackend(t, model)

	resp := postJSON(t, srv.URL+"/bots/blueprint", interviewBody, nil)
	var blueprint Blueprint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&blueprint))

	snip, err := http.Get(srv.URL + "/bots/" + blueprint.BotID + "/snippet?lang=py")
	require.NoError(t, err)
	defer snip.Body.Close()
	require.Equal(t, http.StatusOK, snip.StatusCode)

	var snippet Snippet
	require.NoError(t, json.NewDecoder(snip.Body).Decode(&snippet))
	assert.Equal(t, "py", snippet.Language)
	assert.Contains(t, snippet.Code, "OpenAI")
}

func TestBackendDetailEnvelopes(t *testing.T) {
	model := &fakeAI{response: `{"bot_name": "Muse"}`}
	srv := newTestBackend(t, model)

	t.Run("unknown bot is 404", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/bots/ghost/playground", `{"content": "hi"}`, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"detail": "bot not found"}`, string(raw))
	})

	t.Run("thin interview is 422", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/bots/blueprint", `{"business_name": "A"}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var envelope map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Contains(t, envelope["detail"], "business_name")
	})

	t.Run("empty chat content is 422", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/bots/ghost/playground", `{}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("unknown snippet language is 422", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/bots/blueprint", interviewBody, nil)
		var blueprint Blueprint
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&blueprint))

		snip, err := http.Get(srv.URL + "/bots/" + blueprint.BotID + "/snippet?lang=rb")
		require.NoError(t, err)
		defer snip.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, snip.StatusCode)
	})

	t.Run("model outage is 503 with detail", func(t *testing.T) {
		model.err = assert.AnError
		defer func() { model.err = nil }()

		resp := postJSON(t, srv.URL+"/bots/blueprint", interviewBody, nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var envelope map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.NotEmpty(t, envelope["detail"])
	})
}

func TestBackendUnknownSessionIsEmptyState(t *testing.T) {
	srv := newTestBackend(t, &fakeAI{response: `{}`})

	resp, err := http.Get(srv.URL + "/bots/session/never-seen")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"history": []}`, string(raw))
}
