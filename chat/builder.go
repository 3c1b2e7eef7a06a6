package chat

import (
	"fmt"
	"strings"

	"github.com/calmcampus/companion-go/llm"
)

// BuildOptions configures request assembly.
type BuildOptions struct {
	Temperature     float32 // Sampling temperature, 0.0 to 1.0
	TopP            float32 // Nucleus sampling cutoff, 0.0 to 1.0
	MaxOutputTokens int32   // Must be positive
	HistoryWindow   int     // Keep only the last N turns, 0 = unbounded
}

// Validate checks the option ranges.
func (o BuildOptions) Validate() error {
	if o.Temperature < 0.0 || o.Temperature > 1.0 {
		return &ValidationError{Reason: fmt.Sprintf("temperature must be between 0.0 and 1.0, got %f", o.Temperature)}
	}
	if o.TopP < 0.0 || o.TopP > 1.0 {
		return &ValidationError{Reason: fmt.Sprintf("top_p must be between 0.0 and 1.0, got %f", o.TopP)}
	}
	if o.MaxOutputTokens <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("max_output_tokens must be positive, got %d", o.MaxOutputTokens)}
	}
	if o.HistoryWindow < 0 {
		return &ValidationError{Reason: fmt.Sprintf("history window cannot be negative, got %d", o.HistoryWindow)}
	}
	return nil
}

// BuildRequest assembles the outbound payload from a conversation
// snapshot: the system instruction on its dedicated channel, every
// prior turn translated to wire roles in original order, and the new
// prompt as the final user entry.
//
// The output is deterministic: identical (snapshot, prompt, options)
// inputs produce an identical request. History is not truncated unless
// a HistoryWindow is set.
func BuildRequest(snapshot []Turn, systemInstruction, prompt string, opts BuildOptions) (llm.Request, error) {
	if strings.TrimSpace(prompt) == "" {
		return llm.Request{}, &ValidationError{Reason: "prompt is empty"}
	}
	if err := opts.Validate(); err != nil {
		return llm.Request{}, err
	}

	history := snapshot
	if opts.HistoryWindow > 0 && len(history) > opts.HistoryWindow {
		history = history[len(history)-opts.HistoryWindow:]
	}

	contents := make([]llm.Content, 0, len(history)+1)
	for _, turn := range history {
		wire, err := ToWire(turn.Role)
		if err != nil {
			return llm.Request{}, err
		}
		contents = append(contents, llm.Content{Role: wire, Text: turn.Content})
	}
	contents = append(contents, llm.Content{Role: WireUser, Text: prompt})

	return llm.Request{
		SystemInstruction: systemInstruction,
		Contents:          contents,
		Options: llm.GenerationOptions{
			Temperature:     opts.Temperature,
			TopP:            opts.TopP,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	}, nil
}
