package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medassist/config"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *GatewayClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewGatewayClient(config.AIConfig{
		GatewayURL:    server.URL + "/v1/chat/completions",
		GatewayAPIKey: "test-key",
		Model:         "google/gemini-2.5-flash",
		Timeout:       5 * time.Second,
	}, quietLogger())
	t.Cleanup(client.httpClient.CloseIdleConnections)
	return client
}

func toolCallResponse(arguments string) string {
	resp := map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"role": "assistant",
					"tool_calls": []any{
						map[string]any{
							"id":   "call_1",
							"type": "function",
							"function": map[string]any{
								"name":      ToolProvideDiagnosis,
								"arguments": arguments,
							},
						},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGatewayClient_CallTool_RequestShape(t *testing.T) {
	var got chatRequest
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(toolCallResponse(`{"primary_diagnosis":"Migraine"}`)))
	})

	_, err := client.CallTool(context.Background(), "system text", "user text", DiagnosisTool)
	require.NoError(t, err)

	assert.Equal(t, "google/gemini-2.5-flash", got.Model)
	wantMessages := []chatMessage{
		{Role: "system", Content: "system text"},
		{Role: "user", Content: "user text"},
	}
	if diff := cmp.Diff(wantMessages, got.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "function", got.Tools[0].Type)
	assert.Equal(t, ToolProvideDiagnosis, got.Tools[0].Function.Name)
	assert.Equal(t, "function", got.ToolChoice.Type)
	assert.Equal(t, ToolProvideDiagnosis, got.ToolChoice.Function.Name)
	assert.ElementsMatch(t,
		[]any{"primary_diagnosis", "confidence", "reasoning", "differential_diagnoses"},
		got.Tools[0].Function.Parameters["required"])
}

func TestGatewayClient_CallTool_ReturnsArgumentsVerbatim(t *testing.T) {
	args := `{"primary_diagnosis":"Tension headache","confidence":"high","reasoning":"Bilateral pressing pain","differential_diagnoses":["Migraine","Sinusitis"],"red_flags":[]}`
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(toolCallResponse(args)))
	})

	got, err := client.CallTool(context.Background(), "s", "u", DiagnosisTool)
	require.NoError(t, err)
	assert.Equal(t, args, string(got))
}

func TestGatewayClient_CallTool_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: ErrRateLimited},
		{name: "payment required", status: http.StatusPaymentRequired, wantErr: ErrPaymentRequired},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrUpstream},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":"upstream says no"}`))
			})

			_, err := client.CallTool(context.Background(), "s", "u", TreatmentTool)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGatewayClient_CallTool_MissingOrMalformedToolCall(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "no choices", body: `{"choices":[]}`, wantErr: ErrNoToolCall},
		{name: "plain content", body: `{"choices":[{"message":{"content":"I think it is a migraine"}}]}`, wantErr: ErrNoToolCall},
		{name: "arguments not json", body: toolCallResponse(`{"primary_diagnosis":`), wantErr: ErrMalformedToolCall},
		{name: "arguments not an object", body: toolCallResponse(`["a","b"]`), wantErr: ErrMalformedToolCall},
		{name: "empty arguments", body: toolCallResponse(``), wantErr: ErrMalformedToolCall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			got, err := client.CallTool(context.Background(), "s", "u", SummaryTool)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGatewayClient_CallTool_MissingAPIKey(t *testing.T) {
	called := false
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	client.apiKey = ""

	_, err := client.CallTool(context.Background(), "s", "u", DiagnosisTool)
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
	assert.False(t, called, "upstream must not be contacted without a key")
}

func TestGatewayClient_CallTool_InvalidResponseBody(t *testing.T) {
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.CallTool(context.Background(), "s", "u", DiagnosisTool)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestGatewayClient_CallTool_ContextCanceled(t *testing.T) {
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(toolCallResponse(`{}`)))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CallTool(ctx, "s", "u", DiagnosisTool)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
