package main

import (
	"fmt"
	"os"
	"strconv"

	yaml "gopkg.in/yaml.v3"
)

// AppConfig represents the complete configuration for the companion CLI
type AppConfig struct {
	Model           string  `yaml:"model"`             // Gemini model name
	Temperature     float32 `yaml:"temperature"`       // Sampling temperature
	TopP            float32 `yaml:"top_p"`             // Nucleus sampling cutoff
	MaxOutputTokens int32   `yaml:"max_output_tokens"` // Reply length bound
	HistoryWindow   int     `yaml:"history_window"`    // Turns of context kept, 0 = all
	MaxRetries      int     `yaml:"max_retries"`       // Retries for failed requests
	ValidateKey     bool    `yaml:"validate_key"`      // Test-call new API keys
	LogLevel        string  `yaml:"log_level"`         // debug, info, warn, error
}

// DefaultAppConfig returns the stock companion settings.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Model:           "gemini-2.0-flash",
		Temperature:     0.8,
		TopP:            0.95,
		MaxOutputTokens: 1024,
		HistoryWindow:   0,
		MaxRetries:      2,
		ValidateKey:     false,
		LogLevel:        "info",
	}
}

// LoadAppConfig loads configuration from an optional YAML file, then
// applies environment variable overrides. A missing file is not an
// error; the defaults are used.
func LoadAppConfig(path string) (*AppConfig, error) {
	config := DefaultAppConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv()
	return config, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *AppConfig) applyEnv() {
	c.Model = getEnvOrDefault("CHAT_MODEL", c.Model)
	c.Temperature = getEnvFloatOrDefault("CHAT_TEMPERATURE", c.Temperature)
	c.TopP = getEnvFloatOrDefault("CHAT_TOP_P", c.TopP)
	c.MaxOutputTokens = int32(getEnvIntOrDefault("CHAT_MAX_OUTPUT_TOKENS", int(c.MaxOutputTokens)))
	c.HistoryWindow = getEnvIntOrDefault("CHAT_HISTORY_WINDOW", c.HistoryWindow)
	c.MaxRetries = getEnvIntOrDefault("CHAT_MAX_RETRIES", c.MaxRetries)
	c.LogLevel = getEnvOrDefault("CHAT_LOG_LEVEL", c.LogLevel)
}

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloatOrDefault returns the environment variable as float32 or default if not set/invalid
func getEnvFloatOrDefault(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(parsed)
		}
	}
	return defaultValue
}

// getEnvIntOrDefault returns the environment variable as int or default if not set/invalid
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
