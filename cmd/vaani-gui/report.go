package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oukeidos/vaani/internal/language"
	"github.com/oukeidos/vaani/internal/pipeline"
)

type AppState int

const (
	StateIdle AppState = iota
	StateProcessing
	StateSuccess
	StatePartialSuccess
	StateFailure
	StateCanceled
)

func (s AppState) String() string {
	switch s {
	case StateIdle:
		return "Ready"
	case StateProcessing:
		return "Working..."
	case StateSuccess:
		return "Done"
	case StatePartialSuccess:
		return "Done with warnings"
	case StateCanceled:
		return "Canceled"
	default:
		return "Failed"
	}
}

// stateForReport maps a finished run to the state shown in the status bar.
func stateForReport(rep pipeline.Report, runErr error) AppState {
	if errors.Is(runErr, context.Canceled) {
		return StateCanceled
	}
	switch {
	case rep.Complete():
		return StateSuccess
	case rep.Translation != "" || rep.Summary != "":
		return StatePartialSuccess
	default:
		return StateFailure
	}
}

// formatMessages renders run notices one per line, errors first.
func formatMessages(rep pipeline.Report) string {
	var b strings.Builder
	write := func(prefix string, msgs []pipeline.Message) {
		for _, m := range msgs {
			fmt.Fprintf(&b, "%s %s\n", prefix, m.Text)
		}
	}
	write("✖", rep.Errors())
	write("⚠", rep.Warnings())
	for _, m := range rep.Messages {
		if m.Level == pipeline.LevelInfo {
			fmt.Fprintf(&b, "ℹ %s\n", m.Text)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func translationHeading(code string) string {
	if lang, ok := language.GetLanguage(code); ok {
		return fmt.Sprintf("Translation · %s (%s)", lang.NativeName, lang.Name)
	}
	return "Translation"
}

// languageOptions returns select labels in code order.
func languageOptions() []string {
	langs := language.GetSupportedLanguages()
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		out = append(out, l.Label())
	}
	return out
}
