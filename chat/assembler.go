package chat

import (
	"context"
	"strings"

	"github.com/calmcampus/companion-go/llm"
)

// Assemble folds a stream of response fragments into the complete
// response text. After each fragment the accumulated string so far is
// passed to onPartial, so every emission is a prefix-extension of the
// previous one and the last emission equals the returned value.
//
// A stream that closes without delivering any text yields "" with no
// error. Fragments without text are skipped. A fragment carrying a
// transport error, or cancellation of ctx between fragments, aborts
// assembly with a StreamInterruptedError holding the partial text.
func Assemble(ctx context.Context, chunks <-chan llm.StreamChunk, onPartial func(string)) (string, error) {
	var acc strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", &StreamInterruptedError{Partial: acc.String(), Cause: ctx.Err()}
		case chunk, ok := <-chunks:
			if !ok {
				return acc.String(), nil
			}
			if chunk.Err != nil {
				return "", &StreamInterruptedError{Partial: acc.String(), Cause: chunk.Err}
			}
			if chunk.Text == "" {
				continue
			}
			acc.WriteString(chunk.Text)
			if onPartial != nil {
				onPartial(acc.String())
			}
		}
	}
}
