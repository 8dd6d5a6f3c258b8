package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"excel-analytics-api/config"
)

// One synchronous attempt per request, no retries, no streaming.
const (
	requestTimeout = 45 * time.Second
	maxTokens      = 1000
)

var (
	ErrUnavailable       = errors.New("completion service unavailable")
	ErrMalformedResponse = errors.New("completion response missing content")
)

type Client struct {
	logger *zap.Logger
	api    *openai.Client
	model  string
}

// New builds a chat-completions client. OpenRouter speaks the same wire
// format, so only the base URL differs.
func New(logger *zap.Logger, cfg config.AI) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		logger: logger,
		api:    openai.NewClientWithConfig(apiCfg),
		model:  cfg.Model,
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrMalformedResponse
	}

	return resp.Choices[0].Message.Content, nil
}
