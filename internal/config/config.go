package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"8000"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Format     string `envconfig:"LOG_FORMAT" default:"console"`
	Output     string `envconfig:"LOG_OUTPUT" default:"stdout"`
	FilePath   string `envconfig:"LOG_FILE_PATH" default:"logs/clanker.log"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"rfc3339"`
}

// ModelConfig holds settings for the chat model used by the agents
type ModelConfig struct {
	Provider       string  `envconfig:"MODEL_PROVIDER" default:"openai"`
	APIKey         string  `envconfig:"OPENAI_API_KEY"`
	BaseURL        string  `envconfig:"MODEL_BASE_URL"`
	Name           string  `envconfig:"MODEL_NAME" default:"gpt-4o-mini"`
	MaxTokens      int     `envconfig:"MODEL_MAX_TOKENS" default:"1500"`
	Temperature    float64 `envconfig:"MODEL_TEMPERATURE" default:"0.1"`
	TimeoutSeconds int     `envconfig:"MODEL_TIMEOUT_SECONDS" default:"120"`
}

// SearchConfig holds settings for the web search call
type SearchConfig struct {
	APIKey         string `envconfig:"SEARCH_API_KEY"`
	BaseURL        string `envconfig:"SEARCH_BASE_URL" default:"https://api.openai.com/v1"`
	Model          string `envconfig:"SEARCH_MODEL" default:"o4-mini"`
	TimeoutSeconds int    `envconfig:"SEARCH_TIMEOUT_SECONDS" default:"180"`
	City           string `envconfig:"SEARCH_CITY" default:"San Francisco"`
	Region         string `envconfig:"SEARCH_REGION" default:"San Francisco Bay Area"`
	Country        string `envconfig:"SEARCH_COUNTRY" default:"us"`
}

// VapiConfig holds settings for the Vapi workflow client
type VapiConfig struct {
	APIKey        string `envconfig:"VAPI_API_KEY"`
	BaseURL       string `envconfig:"VAPI_BASE_URL" default:"https://api.vapi.ai"`
	PublicURL     string `envconfig:"PUBLIC_URL" default:"http://localhost:8000"`
	PhoneNumberID string `envconfig:"VAPI_PHONE_NUMBER_ID"`
}

// SMSConfig holds Twilio credentials for booking notifications
type SMSConfig struct {
	AccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	FromNumber string `envconfig:"TWILIO_NUMBER"`
}

type Config struct {
	Server ServerConfig
	Log    LogConfig
	Model  ModelConfig
	Search SearchConfig
	Vapi   VapiConfig
	SMS    SMSConfig
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %v", err)
	}

	return &config, nil
}

// ModelTimeout returns the model call timeout as a duration.
func (c ModelConfig) ModelTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchTimeout returns the search call timeout as a duration.
func (c SearchConfig) SearchTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
