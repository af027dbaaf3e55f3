package studio

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BatyaBracha/IntegrAIte/internal/bots"
	"github.com/BatyaBracha/IntegrAIte/internal/notify"
	"github.com/BatyaBracha/IntegrAIte/internal/session"
)

func newTestServer(t *testing.T, gw *fakeGateway) (*httptest.Server, *notify.Scheduler) {
	t.Helper()

	toasts := notify.NewScheduler(nil)
	t.Cleanup(toasts.Close)

	sessions := session.NewManager(session.NewMemoryStore(), zap.NewNop())
	s := New(gw, toasts, sessions, zap.NewNop())

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(s, toasts))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, toasts
}

func getState(t *testing.T, srv *httptest.Server) State {
	t.Helper()
	resp, err := http.Get(srv.URL + "/studio/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

func TestHandlerBlueprintFlow(t *testing.T) {
	gw := &fakeGateway{
		generateFn: func(answers bots.InterviewAnswers) (*bots.Blueprint, error) {
			assert.Equal(t, "Muse Atelier", answers.BusinessName)
			return museBlueprint(), nil
		},
	}
	srv, _ := newTestServer(t, gw)

	resp, err := http.Post(srv.URL+"/studio/blueprint", "application/json",
		strings.NewReader(`{"business_name":"Muse Atelier"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.NotNil(t, state.Blueprint)
	assert.Equal(t, "bot-77", state.Blueprint.BotID)
	assert.False(t, state.Busy.Generating)
}

func TestHandlerRejectsBadJSON(t *testing.T) {
	srv, _ := newTestServer(t, &fakeGateway{})

	resp, err := http.Post(srv.URL+"/studio/chat", "application/json", strings.NewReader(`{broken`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerRejectsEmptyChatContent(t *testing.T) {
	srv, _ := newTestServer(t, &fakeGateway{})

	resp, err := http.Post(srv.URL+"/studio/chat", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerToastLifecycle(t *testing.T) {
	srv, toasts := newTestServer(t, &fakeGateway{})

	id := toasts.PushTTL(notify.KindInfo, "hello there", time.Hour)

	resp, err := http.Get(srv.URL + "/studio/toasts")
	require.NoError(t, err)
	defer resp.Body.Close()

	var listed []notify.Toast
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "hello there", listed[0].Message)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/studio/toasts/"+id, nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	assert.Empty(t, toasts.Toasts())
}

func TestHandlerSwitchSessionSurfacesToast(t *testing.T) {
	gw := &fakeGateway{
		stateFn: func(string) (*bots.SessionState, error) {
			return &bots.SessionState{}, nil
		},
	}
	srv, toasts := newTestServer(t, gw)

	resp, err := http.Post(srv.URL+"/studio/session", "application/json",
		strings.NewReader(`{"session_id":"friend-session"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var state State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, "friend-session", state.SessionID)
	assert.Nil(t, state.Blueprint)

	queue := toasts.Toasts()
	require.NotEmpty(t, queue)
	assert.Equal(t, "Session restored.", queue[len(queue)-1].Message)

	after := getState(t, srv)
	assert.Equal(t, "friend-session", after.SessionID)
}
