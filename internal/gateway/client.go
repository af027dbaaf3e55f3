// Package gateway is the HTTP client for the persona backend. Every
// operation settles into either a typed payload or one normalized
// error shape; nothing here retries or validates response schemas.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BatyaBracha/IntegrAIte/internal/bots"
)

// ErrNetworkUnavailable means the backend could not be reached at all.
var ErrNetworkUnavailable = errors.New("gateway: backend unreachable")

// RequestError is a reachable backend answering with a non-success
// status. Message follows the backend's detail convention.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// GenerateBlueprint turns interview answers into a persona blueprint.
func (c *Client) GenerateBlueprint(ctx context.Context, answers bots.InterviewAnswers) (*bots.Blueprint, error) {
	payload, err := c.do(ctx, http.MethodPost, "/bots/blueprint", nil, answers)
	if err != nil {
		return nil, err
	}

	var blueprint bots.Blueprint
	if err := payload.Decode(&blueprint); err != nil {
		return nil, fmt.Errorf("gateway: decode blueprint: %w", err)
	}
	return &blueprint, nil
}

// SendChatMessage posts one playground message. The body is returned
// undecoded: the caller decides how to read a reply out of it.
func (c *Client) SendChatMessage(ctx context.Context, botID, sessionID, content string) (Payload, error) {
	headers := map[string]string{"X-Session-ID": sessionID}
	body := map[string]string{"content": content}
	return c.do(ctx, http.MethodPost, "/bots/"+url.PathEscape(botID)+"/playground", headers, body)
}

// FetchSnippet renders an embeddable code sample for the bot.
func (c *Client) FetchSnippet(ctx context.Context, botID, language string) (*bots.Snippet, error) {
	path := "/bots/" + url.PathEscape(botID) + "/snippet?lang=" + url.QueryEscape(language)
	payload, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var snippet bots.Snippet
	if err := payload.Decode(&snippet); err != nil {
		return nil, fmt.Errorf("gateway: decode snippet: %w", err)
	}
	return &snippet, nil
}

// FetchSessionState loads whatever the backend remembers for a session.
func (c *Client) FetchSessionState(ctx context.Context, sessionID string) (*bots.SessionState, error) {
	payload, err := c.do(ctx, http.MethodGet, "/bots/session/"+url.PathEscape(sessionID), nil, nil)
	if err != nil {
		return nil, err
	}

	var state bots.SessionState
	if err := payload.Decode(&state); err != nil {
		return nil, fmt.Errorf("gateway: decode session state: %w", err)
	}
	return &state, nil
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body any) (Payload, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Payload{}, fmt.Errorf("gateway: marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Payload{}, fmt.Errorf("gateway: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("transport failure", zap.String("path", path), zap.Error(err))
		return Payload{}, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}

	payload := Payload{
		raw:    raw,
		isJSON: strings.Contains(resp.Header.Get("Content-Type"), "application/json"),
	}

	if resp.StatusCode >= 300 {
		return Payload{}, &RequestError{
			Status:  resp.StatusCode,
			Message: failureMessage(payload),
		}
	}

	return payload, nil
}

// failureMessage extracts a human-readable message from a failed
// response: a JSON detail field when present, then the raw body, then
// a generic fallback.
func failureMessage(p Payload) string {
	if p.isJSON {
		var envelope struct {
			Detail json.RawMessage `json:"detail"`
		}
		if err := json.Unmarshal(p.raw, &envelope); err == nil && len(envelope.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
				return detail
			}
			// Structured detail, keep it intact for the user.
			return string(envelope.Detail)
		}
	}
	if text := strings.TrimSpace(string(p.raw)); text != "" {
		return text
	}
	return "Request failed"
}
