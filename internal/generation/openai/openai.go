package openai

import (
	"context"
	"errors"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"newsrag/internal/domain"
)

const providerName = "chat_completion"

// Client sends single-message chat completions to an OpenAI-compatible endpoint,
// such as the Hugging Face inference router.
type Client struct {
	client *goopenai.Client
	model  string
}

// Config configures the chat completion client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// NewClient creates a chat completion client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewConfigError("generator.api_key_env", "resolved to an empty key")
	}
	if cfg.Model == "" {
		return nil, domain.NewConfigError("generator.model", "is empty")
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Client{client: goopenai.NewClientWithConfig(clientCfg), model: cfg.Model}, nil
}

// Name returns the identifier of this provider.
func (c *Client) Name() string { return "openai" }

// Complete sends prompt as the only user message and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", domain.NewProviderError(providerName, "complete", describe(err))
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewProviderError(providerName, "complete", errors.New("no completions returned"))
	}
	answer := resp.Choices[0].Message.Content
	if answer == "" {
		return "", domain.NewProviderError(providerName, "complete", errors.New("empty completion content"))
	}
	return answer, nil
}

func describe(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("status %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	return err
}
