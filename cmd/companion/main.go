package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/calmcampus/companion-go/chat"
	"github.com/calmcampus/companion-go/llm"
	"github.com/calmcampus/companion-go/llm/gemini"
	"github.com/calmcampus/companion-go/prompt"
	"github.com/calmcampus/companion-go/sentiment"
)

func main() {
	var (
		configPath = flag.String("config", "companion.yaml", "Path to YAML config file (optional)")
		model      = flag.String("model", "", "Gemini model to use (overrides config)")
		temp       = flag.Float64("temperature", -1, "Response temperature 0.0-1.0 (overrides config)")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	)
	flag.Parse()

	appConfig, err := LoadAppConfig(*configPath)
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Command-line flags win over file and environment
	if *model != "" {
		appConfig.Model = *model
	}
	if *temp >= 0 {
		appConfig.Temperature = float32(*temp)
	}
	if *logLevel != "" {
		appConfig.LogLevel = *logLevel
	}

	logger := newLogger(appConfig.LogLevel)

	sessionConfig := chat.DefaultConfig(prompt.SystemInstruction)
	sessionConfig.Temperature = appConfig.Temperature
	sessionConfig.TopP = appConfig.TopP
	sessionConfig.MaxOutputTokens = appConfig.MaxOutputTokens
	sessionConfig.HistoryWindow = appConfig.HistoryWindow
	sessionConfig.ValidateKey = appConfig.ValidateKey

	factory := func(ctx context.Context, apiKey string) (llm.Provider, error) {
		return gemini.NewGeminiClient(ctx, &gemini.Config{
			APIKey:          apiKey,
			Model:           appConfig.Model,
			Temperature:     appConfig.Temperature,
			TopP:            appConfig.TopP,
			MaxOutputTokens: appConfig.MaxOutputTokens,
			MaxRetries:      appConfig.MaxRetries,
		})
	}

	session := chat.NewSession(sessionConfig, factory, logger)

	ctx := context.Background()
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		if err := session.SetCredential(ctx, key); err != nil {
			logger.Warn().Err(err).Msg("GOOGLE_API_KEY rejected, will prompt for a key")
		}
	}

	app := NewApp(session, sentiment.NewVaderScorer(), os.Stdin, os.Stdout, logger)
	if err := app.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("chat ended with error")
		os.Exit(1)
	}
}

// newLogger builds a console logger at the requested level.
func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
