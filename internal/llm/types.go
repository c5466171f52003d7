package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by Generate when no API key is configured.
// No request is sent.
var ErrMissingAPIKey = errors.New("API key not set")

// StatusError is a non-200 answer from a completions endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status %d: %s", e.Code, e.Body)
}

// chatMessage is one message of a chat completions request or choice.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Choices []chatChoice `json:"choices"`
}
