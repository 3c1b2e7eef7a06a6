package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/calmcampus/companion-go/llm"
)

// GeminiClient implements llm.Provider for Google's Gemini models
type GeminiClient struct {
	genaiClient *genai.Client
	config      *Config

	// Rate limiting
	rateLimiter *time.Ticker
	tokens      chan struct{}
}

// Generate sends the request and returns the complete response text.
func (c *GeminiClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	if len(req.Contents) == 0 {
		return "", fmt.Errorf("no contents to send")
	}

	if err := c.acquireToken(ctx); err != nil {
		return "", err
	}

	contents, err := toGenaiContents(req.Contents)
	if err != nil {
		return "", fmt.Errorf("failed to convert contents: %w", err)
	}
	genCfg := generationConfig(req)

	var response *genai.GenerateContentResponse
	for attempt := 0; ; attempt++ {
		response, err = c.genaiClient.Models.GenerateContent(ctx, c.config.Model, contents, genCfg)
		if err == nil {
			break
		}
		if attempt >= c.config.MaxRetries || ctx.Err() != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}
	}

	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}
	return response.Text(), nil
}

// GenerateStream sends the request and delivers the response as a
// channel of text fragments. Chunks without text (safety annotations,
// usage metadata) are skipped rather than treated as errors; a
// transport failure is delivered as a final chunk carrying the error.
func (c *GeminiClient) GenerateStream(ctx context.Context, req llm.Request) (<-chan llm.StreamChunk, error) {
	if len(req.Contents) == 0 {
		return nil, fmt.Errorf("no contents to send")
	}

	if err := c.acquireToken(ctx); err != nil {
		return nil, err
	}

	contents, err := toGenaiContents(req.Contents)
	if err != nil {
		return nil, fmt.Errorf("failed to convert contents: %w", err)
	}
	genCfg := generationConfig(req)

	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		for response, err := range c.genaiClient.Models.GenerateContentStream(ctx, c.config.Model, contents, genCfg) {
			if err != nil {
				select {
				case out <- llm.StreamChunk{Err: fmt.Errorf("stream failed: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			text := response.Text()
			if text == "" {
				continue
			}
			select {
			case out <- llm.StreamChunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// ValidateKey makes one minimal generation call to verify the credential.
func (c *GeminiClient) ValidateKey(ctx context.Context) error {
	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: "ping"}}},
	}
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: 1}
	if _, err := c.genaiClient.Models.GenerateContent(ctx, c.config.Model, contents, cfg); err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}
	return nil
}

// toGenaiContents converts wire contents to the SDK's content type.
// Only the two wire roles are accepted; anything else is a bug in the
// caller and is rejected instead of being relabeled.
func toGenaiContents(contents []llm.Content) ([]*genai.Content, error) {
	out := make([]*genai.Content, 0, len(contents))
	for _, content := range contents {
		switch content.Role {
		case genai.RoleUser, genai.RoleModel:
		default:
			return nil, fmt.Errorf("unknown wire role %q", content.Role)
		}
		out = append(out, &genai.Content{
			Role: content.Role,
			Parts: []*genai.Part{
				{Text: content.Text},
			},
		})
	}
	return out, nil
}

// generationConfig maps request options onto the SDK config, routing
// the system instruction through its dedicated channel rather than a
// synthetic leading user turn.
func generationConfig(req llm.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Options.Temperature),
		TopP:            genai.Ptr(req.Options.TopP),
		MaxOutputTokens: req.Options.MaxOutputTokens,
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: req.SystemInstruction},
			},
		}
	}
	return cfg
}

// acquireToken blocks until a rate-limit token is available, if rate
// limiting is enabled.
func (c *GeminiClient) acquireToken(ctx context.Context) error {
	if c.tokens == nil {
		return nil
	}
	select {
	case <-c.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetName returns the provider name
func (c *GeminiClient) GetName() string {
	return "gemini"
}

// SetConfig updates the client configuration
func (c *GeminiClient) SetConfig(config map[string]any) error {
	if c.config == nil {
		c.config = &Config{}
	}

	if model, ok := config["model"].(string); ok {
		c.config.Model = model
	}
	if temp, ok := config["temperature"].(float32); ok {
		c.config.Temperature = temp
	}
	if topP, ok := config["topP"].(float32); ok {
		c.config.TopP = topP
	}
	if maxTokens, ok := config["maxOutputTokens"].(int32); ok {
		c.config.MaxOutputTokens = maxTokens
	}
	if apiKey, ok := config["apiKey"].(string); ok {
		c.config.APIKey = apiKey
	}
	if maxRetries, ok := config["maxRetries"].(int); ok {
		c.config.MaxRetries = maxRetries
	}
	if rateLimit, ok := config["rateLimit"].(int); ok {
		c.config.RateLimit = rateLimit
	}
	if rateLimitInterval, ok := config["rateLimitInterval"].(time.Duration); ok {
		c.config.RateLimitInterval = rateLimitInterval
	}

	return nil
}

// NewGeminiClient creates a new Gemini client with the provided configuration
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: config.Backend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	client := &GeminiClient{
		genaiClient: genaiClient,
		config:      config,
	}

	// Initialize rate limiter only if rate limiting is enabled
	if config.RateLimit > 0 {
		tokens := make(chan struct{}, config.RateLimit)
		rateLimiter := time.NewTicker(config.RateLimitInterval / time.Duration(config.RateLimit))

		// Fill initial tokens
		for i := 0; i < config.RateLimit; i++ {
			tokens <- struct{}{}
		}

		client.rateLimiter = rateLimiter
		client.tokens = tokens

		go client.refillTokens()
	}

	return client, nil
}

// NewGeminiClientFromEnv creates a new Gemini client using environment variables
func NewGeminiClientFromEnv(ctx context.Context) (*GeminiClient, error) {
	config, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	return NewGeminiClient(ctx, config)
}

// refillTokens runs in a goroutine to refill the token bucket at the configured rate
func (c *GeminiClient) refillTokens() {
	for range c.rateLimiter.C {
		select {
		case c.tokens <- struct{}{}:
			// Token added successfully
		default:
			// Token bucket is full, skip
		}
	}
}

// Close stops the rate limiter and cleans up resources
func (c *GeminiClient) Close() {
	if c.rateLimiter != nil {
		c.rateLimiter.Stop()
	}
}
