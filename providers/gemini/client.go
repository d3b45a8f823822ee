package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Options konfiguriert den Gemini-Client.
type Options struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// Client kapselt die Gemini-API über das offizielle SDK.
type Client struct {
	client *genai.Client
	Model  string
	Logger *zap.Logger
	opts   Options
}

// NewClient erstellt einen neuen Gemini-Client.
func NewClient(ctx context.Context, opts Options, logger *zap.Logger) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, Model: opts.Model, Logger: logger, opts: opts}, nil
}

// Name gibt den Namen des Providers zurück.
func (c *Client) Name() string {
	return "gemini"
}

// Generate setzt System-Anweisung und Prompt zu einem Text zusammen und ruft das Modell einmal auf.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	full := prompt
	if systemPrompt != "" {
		full = systemPrompt + "\n\n" + prompt
	}

	var genCfg *genai.GenerateContentConfig
	if c.opts.MaxTokens > 0 {
		genCfg = &genai.GenerateContentConfig{MaxOutputTokens: int32(c.opts.MaxTokens)}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.Model, genai.Text(full), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	c.Logger.Debug("Gemini generation finished", zap.String("model", c.Model), zap.Int("chars", len(text)))
	return text, nil
}
