package llm

import (
	"context"
	"fmt"
)

// Generator turns a prompt into free text.
type Generator interface {
	// Configured reports whether the credentials needed for Generate are present.
	Configured() bool
	// Generate returns the model's reply to prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options selects and configures a Generator.
type Options struct {
	// Provider is "gemini" or "openai".
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewGenerator builds the Generator for opts.Provider.
func NewGenerator(opts Options) (Generator, error) {
	switch opts.Provider {
	case "", "gemini":
		return NewGeminiClient(opts.APIKey, opts.Model, opts.BaseURL), nil
	case "openai":
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("base URL is required for the openai provider")
		}
		return NewChatClient(opts.BaseURL, opts.APIKey, opts.Model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", opts.Provider)
	}
}
