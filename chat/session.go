package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/calmcampus/companion-go/llm"
)

// Config holds the per-session conversation settings.
type Config struct {
	SystemInstruction string
	Temperature       float32 // Default: 0.8
	TopP              float32 // Default: 0.95
	MaxOutputTokens   int32   // Default: 1024
	HistoryWindow     int     // Default: 0 (unbounded)
	ValidateKey       bool    // Verify a new credential with one test call
}

// DefaultConfig returns the companion's stock generation settings.
func DefaultConfig(systemInstruction string) Config {
	return Config{
		SystemInstruction: systemInstruction,
		Temperature:       0.8,
		TopP:              0.95,
		MaxOutputTokens:   1024,
	}
}

// ProviderFactory builds a provider bound to the given credential.
type ProviderFactory func(ctx context.Context, apiKey string) (llm.Provider, error)

// Session is the per-session context object owning one conversation and
// one credential. Every operation goes through a Session instance; there
// is no process-wide conversation state, so concurrent sessions cannot
// leak into one another.
type Session struct {
	cfg         Config
	store       *Store
	newProvider ProviderFactory
	logger      zerolog.Logger

	mu       sync.Mutex
	provider llm.Provider
}

// NewSession creates a session with an empty conversation and no credential.
func NewSession(cfg Config, factory ProviderFactory, logger zerolog.Logger) *Session {
	return &Session{
		cfg:         cfg,
		store:       NewStore(),
		newProvider: factory,
		logger:      logger,
	}
}

// HasCredential reports whether a credential has been supplied.
func (s *Session) HasCredential() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider != nil
}

// SetCredential binds the session to the supplied API key. When the
// session is configured to validate keys, one minimal test call is made
// before the credential is accepted. The key itself is never logged.
func (s *Session) SetCredential(ctx context.Context, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return &CredentialError{Reason: "API key is empty"}
	}

	provider, err := s.newProvider(ctx, apiKey)
	if err != nil {
		return &CredentialError{Reason: "could not initialize provider", Cause: err}
	}

	if s.cfg.ValidateKey {
		if validator, ok := provider.(llm.KeyValidator); ok {
			if err := validator.ValidateKey(ctx); err != nil {
				return &CredentialError{Reason: "API key rejected by provider", Cause: err}
			}
		}
	}

	s.mu.Lock()
	s.provider = provider
	s.mu.Unlock()

	s.logger.Debug().Str("provider", provider.GetName()).Msg("credential accepted")
	return nil
}

// ClearCredential forgets the credential, returning the session to the
// "absent" state. The conversation is left intact.
func (s *Session) ClearCredential() {
	s.mu.Lock()
	s.provider = nil
	s.mu.Unlock()
}

// History returns the ordered conversation for rendering.
func (s *Session) History() []Turn {
	return s.store.All()
}

// Clear empties the conversation. Any in-flight request keeps working
// against its snapshot but its reply will not be appended.
func (s *Session) Clear() {
	s.store.Clear()
	s.logger.Debug().Msg("conversation cleared")
}

// Send submits a prompt and blocks for the complete reply. The user
// turn is appended before the provider call; the assistant turn is
// appended only when a non-empty reply arrives and the conversation
// was not cleared in the meantime.
func (s *Session) Send(ctx context.Context, prompt string) (string, error) {
	provider, req, epoch, err := s.prepare(prompt)
	if err != nil {
		return "", err
	}

	reply, err := provider.Generate(ctx, req)
	if err != nil {
		err = wrapProvider(err)
		s.logger.Warn().Err(err).Msg("generation failed")
		return "", err
	}

	s.commitReply(epoch, reply)
	return reply, nil
}

// SendStream submits a prompt and streams the reply, invoking onPartial
// with each progressively longer partial. On a mid-stream failure the
// partial text is discarded from the conversation and the error carries
// it for the caller to inspect.
func (s *Session) SendStream(ctx context.Context, prompt string, onPartial func(string)) (string, error) {
	provider, req, epoch, err := s.prepare(prompt)
	if err != nil {
		return "", err
	}

	chunks, err := provider.GenerateStream(ctx, req)
	if err != nil {
		err = wrapProvider(err)
		s.logger.Warn().Err(err).Msg("stream start failed")
		return "", err
	}

	reply, err := Assemble(ctx, chunks, onPartial)
	if err != nil {
		s.logger.Warn().Err(err).Msg("stream interrupted")
		return "", err
	}

	s.commitReply(epoch, reply)
	return reply, nil
}

// prepare validates state, builds the request from a snapshot and
// appends the user turn. The returned epoch gates the reply append.
func (s *Session) prepare(prompt string) (llm.Provider, llm.Request, uint64, error) {
	s.mu.Lock()
	provider := s.provider
	s.mu.Unlock()
	if provider == nil {
		return nil, llm.Request{}, 0, &CredentialError{Reason: "no API key supplied"}
	}

	snapshot, _ := s.store.Snapshot()
	req, err := BuildRequest(snapshot, s.cfg.SystemInstruction, prompt, BuildOptions{
		Temperature:     s.cfg.Temperature,
		TopP:            s.cfg.TopP,
		MaxOutputTokens: s.cfg.MaxOutputTokens,
		HistoryWindow:   s.cfg.HistoryWindow,
	})
	if err != nil {
		return nil, llm.Request{}, 0, err
	}

	if err := s.store.Append(RoleUser, prompt); err != nil {
		return nil, llm.Request{}, 0, err
	}
	_, epoch := s.store.Snapshot()
	return provider, req, epoch, nil
}

// commitReply appends the assistant turn unless the reply is empty
// (safety filtering can yield no text) or the conversation was cleared
// while the request was in flight.
func (s *Session) commitReply(epoch uint64, reply string) {
	if strings.TrimSpace(reply) == "" {
		s.logger.Debug().Msg("empty reply, nothing appended")
		return
	}
	if err := s.store.AppendSince(epoch, RoleAssistant, reply); err != nil {
		s.logger.Debug().Err(err).Msg("reply dropped")
	}
}
