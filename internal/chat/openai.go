package chat

import (
	"context"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

type OpenAI struct {
	client    openai.Client
	model     string
	maxTokens int
}

func NewOpenAI(cfg Config) (*OpenAI, error) {
	key, err := requireKey("openai", cfg.APIKey)
	if err != nil {
		return nil, err
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAI{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: cfg.maxTokens(),
	}, nil
}

func (c *OpenAI) Chat(ctx context.Context, instruction string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(instruction),
		},
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", &Error{Provider: "openai", Kind: FailedToRequest, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: "openai", Kind: EmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}
