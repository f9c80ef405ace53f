package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with fresh viper state
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, AIProviderGateway, cfg.AI.Provider)
	assert.Equal(t, "https://ai.gateway.lovable.dev/v1/chat/completions", cfg.AI.GatewayURL)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
}

func TestLoadConfig_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("AI_PROVIDER", AIProviderGemini)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("AI_TIMEOUT", "15s")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("DB_NAME", "medassist")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, AIProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "g-key", cfg.AI.GeminiAPIKey)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, "postgres://:@localhost:5432/medassist?sslmode=disable", cfg.DB.URL())
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AI_GATEWAY_API_KEY=from-file\nAPP_PORT=9090\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.AI.GatewayAPIKey)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	isolate(t)
	t.Setenv("AI_PROVIDER", "openai")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, `unknown AI_PROVIDER "openai"`)
}
