package chat

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type Gemini struct {
	client    *genai.Client
	model     string
	maxTokens int
}

func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	key, err := requireKey("gemini", cfg.APIKey)
	if err != nil {
		return nil, err
	}
	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	return &Gemini{client: client, model: model, maxTokens: cfg.maxTokens()}, nil
}

func (c *Gemini) Chat(ctx context.Context, instruction string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(instruction), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(c.maxTokens),
	})
	if err != nil {
		return "", &Error{Provider: "gemini", Kind: FailedToRequest, Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &Error{Provider: "gemini", Kind: EmptyResponse}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &Error{Provider: "gemini", Kind: EmptyResponse}
	}
	return sb.String(), nil
}
