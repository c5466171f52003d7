package llm

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient generates text with the Gemini API.
// The SDK client is created on first use, so a missing key only fails the calls that need it.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a Gemini text generator. baseURL overrides the API
// endpoint and is normally empty.
func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
	}
}

// Configured reports whether an API key is set.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

// Model returns the model name sent with each request.
func (c *GeminiClient) Model() string {
	return c.model
}

// Generate sends prompt to the model and returns the response text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrMissingAPIKey
	}

	client, err := c.sdk(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return resp.Text(), nil
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return client, nil
}
