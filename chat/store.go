package chat

import (
	"strings"
	"sync"
)

// Role identifies the author of a Turn using the internal vocabulary.
// The provider's wire vocabulary ("user"/"model") never appears in a
// stored Turn; translation happens at the boundary.
type Role string

const (
	// RoleUser marks a message typed by the student.
	RoleUser Role = "user"
	// RoleAssistant marks a companion reply.
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message in a conversation. Ordering is solely
// by append order; there are no identifiers or timestamps.
type Turn struct {
	Role    Role
	Content string
}

// Store is an ordered, append-only log of Turns for the lifetime of one
// session. Each session owns its own Store; it is never shared across
// sessions. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	turns []Turn
	epoch uint64 // incremented on Clear, used for snapshot isolation
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a Turn to the end of the conversation. Content that is
// empty after trimming is rejected with a ValidationError so every
// stored Turn has displayable text.
func (s *Store) Append(role Role, content string) error {
	if _, err := ToWire(role); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Reason: "message content is empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Role: role, Content: content})
	return nil
}

// AppendSince appends only if the store has not been cleared since the
// given epoch was observed. Returns ErrStaleSnapshot otherwise, so an
// in-flight response cannot land in a conversation the user already
// cleared.
func (s *Store) AppendSince(epoch uint64, role Role, content string) error {
	if _, err := ToWire(role); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Reason: "message content is empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return ErrStaleSnapshot
	}
	s.turns = append(s.turns, Turn{Role: role, Content: content})
	return nil
}

// All returns a copy of the full ordered conversation. Mutating the
// returned slice does not affect the store.
func (s *Store) All() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of stored turns.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Snapshot returns a copy of the conversation together with the current
// epoch. Pass the epoch to AppendSince after an asynchronous operation
// built from this snapshot completes.
func (s *Store) Snapshot() ([]Turn, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out, s.epoch
}

// Clear empties the conversation and advances the epoch, invalidating
// any snapshot taken before the call.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
	s.epoch++
}
