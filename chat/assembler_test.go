package chat

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/calmcampus/companion-go/llm"
)

func chunkChannel(fragments ...llm.StreamChunk) <-chan llm.StreamChunk {
	out := make(chan llm.StreamChunk, len(fragments))
	for _, f := range fragments {
		out <- f
	}
	close(out)
	return out
}

func TestAssembleFragmentScenario(t *testing.T) {
	chunks := chunkChannel(
		llm.StreamChunk{Text: "Hi"},
		llm.StreamChunk{Text: " there"},
		llm.StreamChunk{Text: "!"},
	)

	var emitted []string
	final, err := Assemble(context.Background(), chunks, func(partial string) {
		emitted = append(emitted, partial)
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{"Hi", "Hi there", "Hi there!"}
	if !reflect.DeepEqual(emitted, want) {
		t.Errorf("Expected emissions %v, got %v", want, emitted)
	}
	if final != "Hi there!" {
		t.Errorf("Expected final %q, got %q", "Hi there!", final)
	}
}

func TestAssembleMonotonicPrefixGrowth(t *testing.T) {
	fragments := []llm.StreamChunk{
		{Text: "The "}, {Text: "4-7-8 "}, {Text: "technique "}, {Text: "can "}, {Text: "help."},
	}
	chunks := chunkChannel(fragments...)

	prev := ""
	final, err := Assemble(context.Background(), chunks, func(partial string) {
		if !strings.HasPrefix(partial, prev) {
			t.Errorf("Emission %q is not a prefix-extension of %q", partial, prev)
		}
		if len(partial) <= len(prev) {
			t.Errorf("Emission %q did not grow past %q", partial, prev)
		}
		prev = partial
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if final != prev {
		t.Errorf("Final %q differs from last emission %q", final, prev)
	}
}

func TestAssembleEmptyStream(t *testing.T) {
	chunks := chunkChannel()

	calls := 0
	final, err := Assemble(context.Background(), chunks, func(string) { calls++ })
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if final != "" {
		t.Errorf("Expected empty terminal value, got %q", final)
	}
	if calls != 0 {
		t.Errorf("Expected no emissions for empty stream, got %d", calls)
	}
}

func TestAssembleSkipsTextlessChunks(t *testing.T) {
	chunks := chunkChannel(
		llm.StreamChunk{Text: "Take"},
		llm.StreamChunk{}, // safety metadata chunk with no text
		llm.StreamChunk{Text: " a break"},
	)

	var emitted []string
	final, err := Assemble(context.Background(), chunks, func(partial string) {
		emitted = append(emitted, partial)
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(emitted) != 2 {
		t.Errorf("Textless chunk should not emit, got %v", emitted)
	}
	if final != "Take a break" {
		t.Errorf("Expected %q, got %q", "Take a break", final)
	}
}

func TestAssembleMidStreamFailure(t *testing.T) {
	chunks := chunkChannel(
		llm.StreamChunk{Text: "Partial "},
		llm.StreamChunk{Text: "answer"},
		llm.StreamChunk{Err: fmt.Errorf("connection reset")},
	)

	_, err := Assemble(context.Background(), chunks, nil)

	var streamErr *StreamInterruptedError
	if !errors.As(err, &streamErr) {
		t.Fatalf("Expected StreamInterruptedError, got %v", err)
	}
	if streamErr.Partial != "Partial answer" {
		t.Errorf("Expected partial %q, got %q", "Partial answer", streamErr.Partial)
	}
}

func TestAssembleCancellation(t *testing.T) {
	// Channel never closes; cancellation must stop consumption.
	chunks := make(chan llm.StreamChunk)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Assemble(ctx, chunks, nil)

	var streamErr *StreamInterruptedError
	if !errors.As(err, &streamErr) {
		t.Fatalf("Expected StreamInterruptedError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected cause context.Canceled, got %v", streamErr.Cause)
	}
}
