package ai

import "context"

// Request is a single completion request to an LLM backend.
type Request struct {
	Model       string
	System      string // system prompt
	Prompt      string // user prompt
	Temperature float64
	MaxTokens   int            // 0 means backend default
	Schema      map[string]any // non-nil requests JSON output conforming to this schema
	SchemaName  string         // schema identifier for backends that require one
}

// LLMProvider sends a completion request to an LLM and returns the raw text response.
// Decorators (retry, rate limiting) wrap this interface.
type LLMProvider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
