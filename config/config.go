package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// AI provider names accepted by AI_PROVIDER
const (
	AIProviderGateway = "gateway"
	AIProviderGemini  = "gemini"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	AI    AIConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// URL returns the connection URL used by the migration driver
func (c DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AIConfig configures the hosted language-model upstream.
// GatewayAPIKey may be empty; the function endpoints then fail per request
// instead of refusing to boot.
type AIConfig struct {
	Provider      string
	GatewayURL    string
	GatewayAPIKey string
	GeminiAPIKey  string
	Model         string
	Timeout       time.Duration
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("AI_PROVIDER", AIProviderGateway)
	viper.SetDefault("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions")
	viper.SetDefault("AI_MODEL", "google/gemini-2.5-flash")
}

func LoadConfig() (*Config, error) {
	setDefaults()
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// .env is optional, the environment alone is enough
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	aiTimeout, err := time.ParseDuration(viper.GetString("AI_TIMEOUT"))
	if err != nil {
		aiTimeout = 60 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		AI: AIConfig{
			Provider:      viper.GetString("AI_PROVIDER"),
			GatewayURL:    viper.GetString("AI_GATEWAY_URL"),
			GatewayAPIKey: viper.GetString("AI_GATEWAY_API_KEY"),
			GeminiAPIKey:  viper.GetString("GEMINI_API_KEY"),
			Model:         viper.GetString("AI_MODEL"),
			Timeout:       aiTimeout,
		},
	}

	if config.AI.Provider != AIProviderGateway && config.AI.Provider != AIProviderGemini {
		return nil, fmt.Errorf("unknown AI_PROVIDER %q", config.AI.Provider)
	}

	return config, nil
}
