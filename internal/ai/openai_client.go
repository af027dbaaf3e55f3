package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

// NewOpenAIClient builds the production model client. apiKey must be
// set; model falls back to a small default when empty.
func NewOpenAIClient(apiKey, model string, log *zap.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("ai: api key not set")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log,
	}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.log.Warn("completion failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("ai: model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
