package llm

import "context"

// Content is one wire-level conversation entry sent to the provider.
// Role uses the provider vocabulary ("user" or "model"), not the
// application's internal role names.
type Content struct {
	Role string // "user" or "model"
	Text string // The actual message text
}

// GenerationOptions holds the sampling parameters for a single request.
type GenerationOptions struct {
	Temperature     float32 // Response creativity (0.0 to 1.0)
	TopP            float32 // Nucleus sampling cutoff (0.0 to 1.0)
	MaxOutputTokens int32   // Upper bound on generated tokens
}

// Request is the fully assembled payload for one generation call:
// persistent system instruction, ordered conversation contents and
// sampling options.
type Request struct {
	SystemInstruction string
	Contents          []Content
	Options           GenerationOptions
}

// StreamChunk is one fragment of a streaming response. A chunk with a
// non-nil Err terminates the stream.
type StreamChunk struct {
	Text string
	Err  error
}

// Provider interface defines the contract that all LLM implementations must follow
type Provider interface {
	// Generate sends the request and returns the complete response text.
	Generate(ctx context.Context, req Request) (string, error)

	// GenerateStream sends the request and returns a channel of response
	// fragments. The channel is closed when the provider signals
	// end-of-stream or after an error chunk has been delivered.
	GenerateStream(ctx context.Context, req Request) (<-chan StreamChunk, error)

	// GetName returns the name/identifier of the LLM provider
	GetName() string

	// SetConfig allows dynamic configuration updates for the provider
	SetConfig(config map[string]any) error
}

// KeyValidator is implemented by providers that can verify a credential
// with a single cheap test call.
type KeyValidator interface {
	ValidateKey(ctx context.Context) error
}
