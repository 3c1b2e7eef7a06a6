package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider implements Provider for testing purposes.
// It serves scripted responses and fragment sequences and can simulate
// transport failures at configurable points.
type MockProvider struct {
	mu sync.Mutex

	name          string
	responses     []string
	responseIndex int
	fragments     [][]string
	fragmentIndex int
	simulateError bool
	errorMessage  string
	failAfter     int // fragments delivered before a mid-stream error, -1 = disabled
	config        map[string]any
	callCount     int
	requests      []Request // every request seen, in order
}

// NewMockProvider creates a new mock LLM provider with configurable responses
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		name:      name,
		failAfter: -1,
		config:    make(map[string]any),
	}
}

// SetResponses configures the complete responses returned by Generate, in order.
// The last response repeats once the script is exhausted.
func (m *MockProvider) SetResponses(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = responses
	m.responseIndex = 0
}

// SetFragments configures the fragment sequences served by GenerateStream,
// one sequence per call, in order.
func (m *MockProvider) SetFragments(sequences ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragments = sequences
	m.fragmentIndex = 0
}

// SetError makes every subsequent call fail with the given message.
func (m *MockProvider) SetError(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulateError = true
	m.errorMessage = message
}

// ClearError disables error simulation.
func (m *MockProvider) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulateError = false
	m.errorMessage = ""
}

// FailStreamAfter makes GenerateStream deliver n fragments and then an
// error chunk, simulating a mid-stream transport failure.
func (m *MockProvider) FailStreamAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAfter = n
}

// CallCount returns how many generation calls the mock has served.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the most recent request, or false if none was made.
func (m *MockProvider) LastRequest() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return Request{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// Generate returns the next scripted response.
func (m *MockProvider) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.requests = append(m.requests, req)

	if m.simulateError {
		return "", fmt.Errorf("mock error: %s", m.errorMessage)
	}
	if len(req.Contents) == 0 {
		return "", fmt.Errorf("no contents to send")
	}
	if len(m.responses) == 0 {
		return "", nil
	}

	response := m.responses[m.responseIndex]
	if m.responseIndex < len(m.responses)-1 {
		m.responseIndex++
	}
	return response, nil
}

// GenerateStream serves the next scripted fragment sequence over a channel.
func (m *MockProvider) GenerateStream(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	m.mu.Lock()
	m.callCount++
	m.requests = append(m.requests, req)

	if m.simulateError {
		msg := m.errorMessage
		m.mu.Unlock()
		return nil, fmt.Errorf("mock error: %s", msg)
	}

	var sequence []string
	if len(m.fragments) > 0 {
		sequence = m.fragments[m.fragmentIndex]
		if m.fragmentIndex < len(m.fragments)-1 {
			m.fragmentIndex++
		}
	}
	failAfter := m.failAfter
	m.mu.Unlock()

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		for i, fragment := range sequence {
			if failAfter >= 0 && i == failAfter {
				out <- StreamChunk{Err: fmt.Errorf("mock stream failure")}
				return
			}
			select {
			case out <- StreamChunk{Text: fragment}:
			case <-ctx.Done():
				return
			}
		}
		if failAfter >= 0 && failAfter >= len(sequence) {
			out <- StreamChunk{Err: fmt.Errorf("mock stream failure")}
		}
	}()
	return out, nil
}

// GetName returns the provider name
func (m *MockProvider) GetName() string {
	return m.name
}

// SetConfig stores the configuration for later inspection.
func (m *MockProvider) SetConfig(config map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range config {
		m.config[k] = v
	}
	return nil
}
