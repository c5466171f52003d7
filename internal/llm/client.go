package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// lookupMaxTokens caps a reply. Lookups answer with a county name or a number.
const lookupMaxTokens = 64

// maxErrorBody bounds how much of a failed response is kept in a StatusError.
const maxErrorBody = 512

// ChatClient generates text with an OpenAI-compatible chat completions API
// (llama.cpp, vLLM, OpenAI).
type ChatClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// ChatOption configures a ChatClient.
type ChatOption func(*ChatClient)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) ChatOption {
	return func(c *ChatClient) {
		c.http = hc
	}
}

// NewChatClient creates a client for the completions endpoint under baseURL.
func NewChatClient(baseURL, apiKey, model string, opts ...ChatOption) *ChatClient {
	c := &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *ChatClient) Configured() bool {
	return c.apiKey != ""
}

// Model returns the model name sent with each request.
func (c *ChatClient) Model() string {
	return c.model
}

// Generate sends prompt as a single user message at temperature zero and
// returns the first choice.
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: lookupMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}
