// Package ai calls a hosted language model with one forced function tool and
// hands back the tool-call arguments untouched.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"medassist/config"

	"github.com/sirupsen/logrus"
)

// Error texts for 429 and 402 are returned to callers as-is.
var (
	ErrRateLimited       = errors.New("Rate limit exceeded. Please try again later.")
	ErrPaymentRequired   = errors.New("Payment required. Please add credits to your workspace.")
	ErrAPIKeyMissing     = errors.New("AI API key is not configured")
	ErrUpstream          = errors.New("AI gateway error")
	ErrNoToolCall        = errors.New("no tool call in model response")
	ErrMalformedToolCall = errors.New("model returned malformed tool arguments")
)

// ToolCaller sends a system and user prompt and forces the model to answer
// through tool. The returned arguments are a JSON object exactly as produced.
type ToolCaller interface {
	CallTool(ctx context.Context, systemPrompt, userPrompt string, tool Tool) (json.RawMessage, error)
}

// NewToolCaller builds the client selected by cfg.Provider
func NewToolCaller(cfg config.AIConfig, log *logrus.Logger) (ToolCaller, error) {
	switch cfg.Provider {
	case config.AIProviderGateway:
		return NewGatewayClient(cfg, log), nil
	case config.AIProviderGemini:
		return NewGeminiClient(context.Background(), cfg, log)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// statusError maps the two upstream statuses callers care about
func statusError(code int) error {
	switch code {
	case 429:
		return ErrRateLimited
	case 402:
		return ErrPaymentRequired
	default:
		return nil
	}
}

// checkArguments accepts only a JSON object
func checkArguments(args []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, ErrMalformedToolCall
	}
	return json.RawMessage(trimmed), nil
}
