package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"thesis-hand/config"
	"thesis-hand/providers/gemini"
	"thesis-hand/providers/openaicompat"

	"go.uber.org/zap"
)

// Provider ist das Interface, das jedes Sprachmodell-Backend (z.B. Gemini, OpenAI, Ollama) implementieren muss.
type Provider interface {
	// Generate schickt einen Prompt mit System-Anweisung und liefert den erzeugten Text.
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "gemini").
	Name() string
}

// ErrNotConfigured wird geliefert, wenn für den gewählten Provider die Zugangsdaten fehlen.
var ErrNotConfigured = errors.New("AI provider is not configured")

const (
	KindGemini = "gemini"
	KindOpenAI = "openai"
	KindLocal  = "local"

	DefaultGeminiModel = "gemini-pro-latest"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultLocalModel  = "llama3"

	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultLocalBaseURL  = "http://localhost:11434/v1"
)

// Config wird einmal beim Start gelesen und an New übergeben.
type Config struct {
	Kind         string
	Model        string
	BaseURL      string
	GeminiAPIKey string
	OpenAIAPIKey string
	MaxTokens    int
}

// ConfigFrom übernimmt die KI-Einstellungen aus der Prozesskonfiguration.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Kind:         cfg.AIProvider,
		Model:        cfg.AIModelName,
		BaseURL:      cfg.AIBaseURL,
		GeminiAPIKey: cfg.GeminiAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		MaxTokens:    cfg.AIMaxTokens,
	}
}

// New wählt das Backend anhand von cfg.Kind. Fehlt ein benötigter Schlüssel, kommt ErrNotConfigured.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	switch kind {
	case KindGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, ErrNotConfigured
		}
		client, err := gemini.NewClient(ctx, gemini.Options{
			APIKey:    cfg.GeminiAPIKey,
			Model:     orDefault(cfg.Model, DefaultGeminiModel),
			BaseURL:   cfg.BaseURL,
			MaxTokens: cfg.MaxTokens,
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case KindOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, ErrNotConfigured
		}
		return openaicompat.NewClient(openaicompat.Options{
			Name:      KindOpenAI,
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   orDefault(cfg.BaseURL, DefaultOpenAIBaseURL),
			Model:     orDefault(cfg.Model, DefaultOpenAIModel),
			MaxTokens: cfg.MaxTokens,
		}, logger), nil
	case KindLocal:
		return openaicompat.NewClient(openaicompat.Options{
			Name:      KindLocal,
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   orDefault(cfg.BaseURL, DefaultLocalBaseURL),
			Model:     orDefault(cfg.Model, DefaultLocalModel),
			MaxTokens: cfg.MaxTokens,
			Local:     true,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Kind)
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
