package chat

import (
	"errors"
	"testing"
)

func TestStoreAppendAndAll(t *testing.T) {
	store := NewStore()

	if err := store.Append(RoleUser, "I'm stressed about exams"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := store.Append(RoleAssistant, "That sounds really tough."); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	turns := store.All()
	if len(turns) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Content != "I'm stressed about exams" {
		t.Errorf("Unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != RoleAssistant || turns[1].Content != "That sounds really tough." {
		t.Errorf("Unexpected second turn: %+v", turns[1])
	}
}

func TestStoreRejectsEmptyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty string", ""},
		{"spaces only", "   "},
		{"whitespace mix", " \t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			err := store.Append(RoleUser, tt.content)

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
			if store.Len() != 0 {
				t.Errorf("Expected empty store, got %d turns", store.Len())
			}
		})
	}
}

func TestStoreRejectsUnknownRole(t *testing.T) {
	store := NewStore()
	err := store.Append(Role("system"), "should not land")

	var roleErr *UnknownRoleError
	if !errors.As(err, &roleErr) {
		t.Errorf("Expected UnknownRoleError, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d turns", store.Len())
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	store := NewStore()
	if err := store.Append(RoleUser, "hello"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	turns := store.All()
	turns[0].Content = "mutated"

	if got := store.All()[0].Content; got != "hello" {
		t.Errorf("Store was mutated through All(), got %q", got)
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	for i := 0; i < 4; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		if err := store.Append(role, "turn"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	store.Clear()
	if len(store.All()) != 0 {
		t.Fatalf("Expected empty conversation after Clear, got %d turns", store.Len())
	}

	// A subsequent append starts a fresh sequence of length 1
	if err := store.Append(RoleUser, "fresh start"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 turn after post-clear append, got %d", store.Len())
	}
}

func TestStoreAppendSince(t *testing.T) {
	store := NewStore()
	if err := store.Append(RoleUser, "hello"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, epoch := store.Snapshot()

	// Same epoch: append lands
	if err := store.AppendSince(epoch, RoleAssistant, "hi"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("Expected 2 turns, got %d", store.Len())
	}

	// Clear bumps the epoch, the stale append is dropped
	store.Clear()
	err := store.AppendSince(epoch, RoleAssistant, "late reply")
	if !errors.Is(err, ErrStaleSnapshot) {
		t.Errorf("Expected ErrStaleSnapshot, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Stale append landed, store has %d turns", store.Len())
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	store := NewStore()
	if err := store.Append(RoleUser, "before clear"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	snapshot, _ := store.Snapshot()
	store.Clear()

	// The captured snapshot is unaffected by the clear
	if len(snapshot) != 1 || snapshot[0].Content != "before clear" {
		t.Errorf("Snapshot corrupted by Clear: %+v", snapshot)
	}
}
