package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultCohereURL = "https://api.cohere.ai/v1/generate"

// coherePrompt frames the instruction as the next line of a dialog so the
// completion model answers it as an assistant would.
const coherePrompt = `Transcript of a dialog, where the User interacts with an Assistant named Bob. Bob is helpful, kind, honest, good at writing, and never fails to answer the User's requests immediately and with precision.

User: Hello, Bob.
Bob: Hello. How may I help you today?
User: Please tell me the largest city in Europe.
Bob: Sure. The largest city in Europe is Moscow, the capital of Russia.
User: %s
Bob:`

type Cohere struct {
	httpClient *http.Client
	url        string
	token      string
	model      string
	maxTokens  int
}

type cohereRequest struct {
	Prompt            string `json:"prompt"`
	Model             string `json:"model,omitempty"`
	MaxTokens         int    `json:"max_tokens"`
	ReturnLikelihoods string `json:"return_likelihoods"`
}

type cohereResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

func NewCohere(cfg Config) (*Cohere, error) {
	key, err := requireKey("cohere", cfg.APIKey)
	if err != nil {
		return nil, err
	}
	url := cfg.BaseURL
	if url == "" {
		url = defaultCohereURL
	}
	return &Cohere{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		url:        url,
		token:      key,
		model:      strings.TrimSpace(cfg.Model),
		maxTokens:  cfg.maxTokens(),
	}, nil
}

func (c *Cohere) Chat(ctx context.Context, instruction string) (string, error) {
	body, err := json.Marshal(cohereRequest{
		Prompt:            fmt.Sprintf(coherePrompt, instruction),
		Model:             c.model,
		MaxTokens:         c.maxTokens,
		ReturnLikelihoods: "NONE",
	})
	if err != nil {
		return "", &Error{Provider: "cohere", Kind: FailedToRequest, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Provider: "cohere", Kind: FailedToRequest, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Provider: "cohere", Kind: FailedToRequest, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &Error{
			Provider: "cohere",
			Kind:     Non200Response,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		}
	}

	var out cohereResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &Error{Provider: "cohere", Kind: MalformedResponse, Err: err}
	}
	if len(out.Generations) == 0 {
		return "", &Error{Provider: "cohere", Kind: EmptyResponse}
	}
	return strings.TrimSpace(out.Generations[0].Text), nil
}
