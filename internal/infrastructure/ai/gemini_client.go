package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medassist/config"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiClient calls the Gemini API directly with function calling mode ANY
type GeminiClient struct {
	client *genai.Client
	model  string
	log    *logrus.Logger
}

// NewGeminiClient leaves the SDK client unset when no key is configured so the
// server still boots; every call then fails with ErrAPIKeyMissing.
func NewGeminiClient(ctx context.Context, cfg config.AIConfig, log *logrus.Logger) (*GeminiClient, error) {
	return newGeminiClient(ctx, cfg, log, genai.HTTPOptions{})
}

func newGeminiClient(ctx context.Context, cfg config.AIConfig, log *logrus.Logger, opts genai.HTTPOptions) (*GeminiClient, error) {
	// gateway model ids carry a vendor prefix the Gemini API does not accept
	gc := &GeminiClient{model: strings.TrimPrefix(cfg.Model, "google/"), log: log}
	if cfg.GeminiAPIKey == "" {
		return gc, nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.GeminiAPIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: timeout},
		HTTPOptions: opts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	gc.client = client
	return gc, nil
}

func (c *GeminiClient) CallTool(ctx context.Context, systemPrompt, userPrompt string, tool Tool) (json.RawMessage, error) {
	if c.client == nil {
		return nil, ErrAPIKeyMissing
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Tools: []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:                 tool.Name,
				Description:          tool.Description,
				ParametersJsonSchema: tool.Parameters,
			}},
		}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingConfigModeAny,
				AllowedFunctionNames: []string{tool.Name},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}, genConfig)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			if mapped := statusError(apiErr.Code); mapped != nil {
				c.log.WithFields(logrus.Fields{"tool": tool.Name, "status": apiErr.Code}).Warn("Gemini refused request")
				return nil, mapped
			}
			c.log.WithFields(logrus.Fields{
				"tool":   tool.Name,
				"status": apiErr.Code,
				"body":   apiErr.Message,
			}).Error("Gemini API error")
			return nil, ErrUpstream
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	calls := resp.FunctionCalls()
	if len(calls) == 0 {
		return nil, ErrNoToolCall
	}

	args, err := json.Marshal(calls[0].Args)
	if err != nil {
		return nil, ErrMalformedToolCall
	}
	return checkArguments(args)
}
