package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BatyaBracha/IntegrAIte/internal/bots"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zap.NewNop())
}

func TestGenerateBlueprintDecodesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bots/blueprint", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var answers bots.InterviewAnswers
		require.NoError(t, json.NewDecoder(r.Body).Decode(&answers))
		assert.Equal(t, "Muse Atelier", answers.BusinessName)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bots.Blueprint{BotID: "bot-77", BotName: "Muse"})
	})

	blueprint, err := client.GenerateBlueprint(context.Background(), bots.InterviewAnswers{
		BusinessName: "Muse Atelier",
	})

	require.NoError(t, err)
	assert.Equal(t, "bot-77", blueprint.BotID)
	assert.Equal(t, "Muse", blueprint.BotName)
}

func TestSendChatMessageCarriesSessionHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bots/bot-77/playground", r.URL.Path)
		assert.Equal(t, "sess-1", r.Header.Get("X-Session-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ping", body["content"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bots.ChatReply{Reply: "Pong"})
	})

	payload, err := client.SendChatMessage(context.Background(), "bot-77", "sess-1", "Ping")
	require.NoError(t, err)
	require.True(t, payload.IsJSON())

	var reply bots.ChatReply
	require.NoError(t, payload.Decode(&reply))
	assert.Equal(t, "Pong", reply.Reply)
}

func TestFetchSnippetBuildsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bots/bot-77/snippet", r.URL.Path)
		assert.Equal(t, "py", r.URL.Query().Get("lang"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bots.Snippet{BotID: "bot-77", Language: "py", Code: "print('hi')"})
	})

	snippet, err := client.FetchSnippet(context.Background(), "bot-77", "py")
	require.NoError(t, err)
	assert.Equal(t, "py", snippet.Language)
	assert.Equal(t, "print('hi')", snippet.Code)
}

func TestFailureUsesJSONDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail": "Boom"}`))
	})

	_, err := client.GenerateBlueprint(context.Background(), bots.InterviewAnswers{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.Equal(t, "Boom", reqErr.Message)
}

func TestFailureKeepsStructuredDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": {"field": "business_name"}}`))
	})

	_, err := client.GenerateBlueprint(context.Background(), bots.InterviewAnswers{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.JSONEq(t, `{"field": "business_name"}`, reqErr.Message)
}

func TestFailureFallsBackToRawBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("backend melted"))
	})

	_, err := client.FetchSnippet(context.Background(), "bot-77", "js")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "backend melted", reqErr.Message)
}

func TestFailureWithEmptyBodyUsesGenericMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchSessionState(context.Background(), "sess-1")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Request failed", reqErr.Message)
}

func TestTransportFailureIsNetworkUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore

	client := NewClient(srv.URL, zap.NewNop())
	_, err := client.FetchSessionState(context.Background(), "sess-1")

	require.ErrorIs(t, err, ErrNetworkUnavailable)
}
