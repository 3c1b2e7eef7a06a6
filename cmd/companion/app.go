package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/calmcampus/companion-go/chat"
	"github.com/calmcampus/companion-go/prompt"
	"github.com/calmcampus/companion-go/sentiment"
)

// App drives the interactive chat loop: reads input, dispatches
// commands, streams replies and surfaces support resources when a
// message reads as distressed.
type App struct {
	session *chat.Session
	scorer  sentiment.Scorer
	in      *bufio.Reader
	out     io.Writer
	logger  zerolog.Logger
}

// NewApp wires the chat loop to its input and output streams.
func NewApp(session *chat.Session, scorer sentiment.Scorer, in io.Reader, out io.Writer, logger zerolog.Logger) *App {
	return &App{
		session: session,
		scorer:  scorer,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger,
	}
}

// Run executes the chat loop until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	if !a.session.HasCredential() {
		if err := a.promptForKey(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.out, "%s\n\n", prompt.WelcomeMessage)
	fmt.Fprintln(a.out, "Commands: /clear  /tips  /key  /help  exit")

	for {
		fmt.Fprint(a.out, "\nYou: ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "":
			fmt.Fprintln(a.out, "Please enter a message, or 'exit' to quit.")
		case "exit", "quit":
			fmt.Fprintln(a.out, "Take care of yourself. Goodbye!")
			return nil
		case "/clear":
			a.session.Clear()
			fmt.Fprintln(a.out, "Chat cleared. Fresh start!")
		case "/tips":
			fmt.Fprintf(a.out, "%s\n", prompt.Tips())
		case "/key":
			a.session.ClearCredential()
			if err := a.promptForKey(ctx); err != nil {
				return err
			}
		case "/help":
			fmt.Fprintln(a.out, "/clear - start the conversation over")
			fmt.Fprintln(a.out, "/tips  - relaxation exercises and crisis resources")
			fmt.Fprintln(a.out, "/key   - enter a different API key")
			fmt.Fprintln(a.out, "exit   - leave the chat")
		default:
			a.handleMessage(ctx, input)
		}
	}
}

// handleMessage sends one user message and streams the reply.
func (a *App) handleMessage(ctx context.Context, input string) {
	score := a.scorer.Score(input)
	a.logger.Debug().Float64("sentiment", score).Msg("scored message")

	fmt.Fprint(a.out, "\nCompanion: ")
	printed := 0
	reply, err := a.session.SendStream(ctx, input, func(partial string) {
		fmt.Fprint(a.out, partial[printed:])
		printed = len(partial)
	})
	if err != nil {
		a.reportError(err)
		return
	}

	if reply == "" {
		fmt.Fprint(a.out, "(I don't have a response for that. Could you rephrase?)")
	}
	fmt.Fprintln(a.out)

	if sentiment.IsNegative(score) {
		fmt.Fprintf(a.out, "\nIt sounds like you're going through a lot. If you need more support:\n%s\n", prompt.CrisisResources)
	}
}

// reportError converts a failure into a user-facing message. Nothing
// here is fatal; the worst outcome is an unanswered turn.
func (a *App) reportError(err error) {
	var streamErr *chat.StreamInterruptedError
	var credErr *chat.CredentialError
	switch {
	case errors.As(err, &streamErr):
		// Whatever partial text reached the screen is unvalidated; tell
		// the user to retry instead of trusting it.
		fmt.Fprintln(a.out, "\n\nSorry, the connection dropped before I could finish. Please try again.")
	case errors.As(err, &credErr):
		fmt.Fprintln(a.out, "\n\nYour API key was not accepted. Use /key to enter a new one.")
	default:
		fmt.Fprintf(a.out, "\n\nSorry, something went wrong: %v\nPlease try again.\n", err)
	}
}

// promptForKey reads an API key from input until one is accepted.
func (a *App) promptForKey(ctx context.Context) error {
	for {
		fmt.Fprint(a.out, "Please enter your Gemini API key: ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("no API key provided")
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		key := strings.TrimSpace(line)
		if key == "" {
			continue
		}
		if err := a.session.SetCredential(ctx, key); err != nil {
			fmt.Fprintf(a.out, "That key was not accepted (%v). Try again.\n", err)
			continue
		}
		return nil
	}
}
