package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Options konfiguriert einen OpenAI-kompatiblen Endpunkt (OpenAI selbst oder lokal, z.B. Ollama).
type Options struct {
	Name      string
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	// Lokale Server kennen max_completion_tokens oft nicht und erwarten max_tokens.
	Local bool
}

// Client spricht die Chat-Completions-API.
type Client struct {
	client *openai.Client
	Logger *zap.Logger
	opts   Options
}

// NewClient erstellt einen neuen Client. Ein leerer API-Key ist für lokale Server erlaubt.
func NewClient(opts Options, logger *zap.Logger) *Client {
	key := opts.APIKey
	if key == "" && opts.Local {
		key = "local"
	}
	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	return &Client{client: openai.NewClientWithConfig(cfg), Logger: logger, opts: opts}
}

// Name gibt den Namen des Providers zurück.
func (c *Client) Name() string {
	return c.opts.Name
}

// Generate sendet System- und Benutzernachricht als eine Chat-Completion.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	req := openai.ChatCompletionRequest{
		Model:    c.opts.Model,
		Messages: messages,
	}
	if c.opts.MaxTokens > 0 {
		if c.opts.Local {
			req.MaxTokens = c.opts.MaxTokens
		} else {
			req.MaxCompletionTokens = c.opts.MaxTokens
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.opts.Name, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("model returned an empty response")
	}
	c.Logger.Debug("Chat completion finished",
		zap.String("provider", c.opts.Name),
		zap.String("model", c.opts.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens))
	return resp.Choices[0].Message.Content, nil
}
