// Package chat forwards a user's instruction to a hosted language model and
// returns its reply.
package chat

import (
	"context"
	"fmt"
	"strings"
)

// Chatter answers a single instruction.
type Chatter interface {
	Chat(ctx context.Context, instruction string) (string, error)
}

// Config selects and authenticates a provider. It is handed to the
// constructors explicitly; nothing is read from the environment here.
type Config struct {
	Provider  string `json:"Provider"`
	Model     string `json:"Model"`
	APIKey    string `json:"APIKey"`
	BaseURL   string `json:"BaseURL"`
	MaxTokens int    `json:"MaxTokens"`
}

const defaultMaxTokens = 300

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return defaultMaxTokens
	}
	return c.MaxTokens
}

// New builds the Chatter for cfg.Provider.
func New(ctx context.Context, cfg Config) (Chatter, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "openai":
		return NewOpenAI(cfg)
	case "anthropic":
		return NewAnthropic(cfg)
	case "gemini", "google":
		return NewGemini(ctx, cfg)
	case "cohere":
		return NewCohere(cfg)
	case "":
		return nil, fmt.Errorf("chat provider not set")
	default:
		return nil, fmt.Errorf("unknown chat provider %q", cfg.Provider)
	}
}

func requireKey(provider, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%s client requires an API key", provider)
	}
	return key, nil
}
