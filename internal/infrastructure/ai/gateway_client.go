package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medassist/config"

	"github.com/sirupsen/logrus"
)

// GatewayClient talks to an OpenAI-compatible chat-completions endpoint
type GatewayClient struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *logrus.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type chatToolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type chatRequest struct {
	Model      string         `json:"model"`
	Messages   []chatMessage  `json:"messages"`
	Tools      []chatTool     `json:"tools"`
	ToolChoice chatToolChoice `json:"tool_choice"`
}

type chatToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role      string         `json:"role"`
			Content   string         `json:"content"`
			ToolCalls []chatToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

func NewGatewayClient(cfg config.AIConfig, log *logrus.Logger) *GatewayClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GatewayClient{
		url:    cfg.GatewayURL,
		apiKey: cfg.GatewayAPIKey,
		model:  cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *GatewayClient) CallTool(ctx context.Context, systemPrompt, userPrompt string, tool Tool) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Tools: []chatTool{{
			Type: "function",
			Function: chatFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		}},
	}
	reqBody.ToolChoice.Type = "function"
	reqBody.ToolChoice.Function.Name = tool.Name

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if mapped := statusError(resp.StatusCode); mapped != nil {
			c.log.WithFields(logrus.Fields{"tool": tool.Name, "status": resp.StatusCode}).Warn("AI gateway refused request")
			return nil, mapped
		}
		c.log.WithFields(logrus.Fields{
			"tool":   tool.Name,
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("AI gateway error")
		return nil, ErrUpstream
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.log.WithFields(logrus.Fields{"tool": tool.Name, "elapsed": time.Since(startTime).String()}).Info("AI response received")

	if len(chatResp.Choices) == 0 || len(chatResp.Choices[0].Message.ToolCalls) == 0 {
		return nil, ErrNoToolCall
	}

	return checkArguments([]byte(chatResp.Choices[0].Message.ToolCalls[0].Function.Arguments))
}
