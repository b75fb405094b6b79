package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/chat"
	"github.com/oukeidos/vaani/internal/config"
	"github.com/oukeidos/vaani/internal/providers"
	"github.com/oukeidos/vaani/internal/sarvam"
	"github.com/oukeidos/vaani/internal/search"
)

func keysFrom(m map[string]string) KeySource {
	return func(service string) (string, string) {
		if k := m[service]; k != "" {
			return k, "test"
		}
		return "", ""
	}
}

type closingCompleter struct {
	chat.MockCompleter
	closed int
}

func (c *closingCompleter) Close() error {
	c.closed++
	return nil
}

func stubConstructors(t *testing.T) *closingCompleter {
	t.Helper()
	prevSearch, prevGroq, prevGemini, prevTr := newSearch, newGroq, newGemini, newTranslator
	t.Cleanup(func() {
		newSearch, newGroq, newGemini, newTranslator = prevSearch, prevGroq, prevGemini, prevTr
	})
	completer := &closingCompleter{}
	newSearch = func(string, string) (search.Searcher, error) { return &search.MockSearcher{}, nil }
	newGroq = func(context.Context, string, string, string) (chat.Completer, error) {
		return &chat.MockCompleter{}, nil
	}
	newGemini = func(context.Context, string, string, string) (chat.Completer, error) { return completer, nil }
	newTranslator = func(string, string) (sarvam.Translator, error) { return &sarvam.MockTranslator{}, nil }
	return completer
}

func TestBuild_AllKeys(t *testing.T) {
	stubConstructors(t)
	set := Build(context.Background(), config.Default(), keysFrom(map[string]string{
		"tavily": "tvly", "groq": "gsk", "sarvam": "sk",
	}))
	if len(set.InitErrors) != 0 {
		t.Fatalf("unexpected init errors %+v", set.InitErrors)
	}
	c := set.Collaborators
	if c.Retriever == nil || c.Summarizer == nil || c.Translator == nil {
		t.Fatalf("expected all collaborators, got %+v", c)
	}
	if !set.Pipeline(config.Default()).Ready() {
		t.Fatal("expected pipeline ready")
	}
}

func TestBuild_MissingKeys(t *testing.T) {
	stubConstructors(t)
	tests := []struct {
		name      string
		keys      map[string]string
		wantLabel string
		wantEnv   string
	}{
		{"tavily", map[string]string{"groq": "g", "sarvam": "s"}, LabelSearch, "TAVILY_API_KEY"},
		{"groq", map[string]string{"tavily": "t", "sarvam": "s"}, "Groq model", "GROQ_API_KEY"},
		{"sarvam", map[string]string{"tavily": "t", "groq": "g"}, LabelTranslator, "SARVAM_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Build(context.Background(), config.Default(), keysFrom(tt.keys))
			if len(set.InitErrors) != 1 {
				t.Fatalf("expected one init error, got %+v", set.InitErrors)
			}
			ie := set.InitErrors[0]
			if ie.Service != tt.wantLabel || !strings.Contains(ie.Message, tt.wantEnv) {
				t.Fatalf("unexpected init error %+v", ie)
			}
			if kind, _ := apperrors.KindOf(ie.Err); kind != apperrors.KindConfig {
				t.Fatalf("kind = %q", kind)
			}
			if set.Pipeline(config.Default()).Ready() {
				t.Fatal("pipeline must not be ready")
			}
		})
	}
}

func TestBuild_ConstructorError(t *testing.T) {
	stubConstructors(t)
	newTranslator = func(string, string) (sarvam.Translator, error) {
		return nil, apperrors.Config("bad key", errors.New("x"))
	}
	set := Build(context.Background(), config.Default(), keysFrom(map[string]string{
		"tavily": "t", "groq": "g", "sarvam": "s",
	}))
	if len(set.InitErrors) != 1 || set.InitErrors[0].Service != LabelTranslator || set.InitErrors[0].Message != "bad key" {
		t.Fatalf("unexpected init errors %+v", set.InitErrors)
	}
	if set.Collaborators.Translator != nil {
		t.Fatal("translator should be nil")
	}
}

func TestBuild_GeminiProviderClosesClient(t *testing.T) {
	completer := stubConstructors(t)
	cfg := config.Default()
	cfg.Summarizer.Provider = providers.Gemini
	set := Build(context.Background(), cfg, keysFrom(map[string]string{
		"tavily": "t", "gemini": "AIza", "sarvam": "s",
	}))
	if len(set.InitErrors) != 0 {
		t.Fatalf("unexpected init errors %+v", set.InitErrors)
	}
	if set.Collaborators.Summarizer != completer {
		t.Fatal("expected gemini completer")
	}
	if err := set.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := set.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if completer.closed != 1 {
		t.Fatalf("closed = %d, want 1", completer.closed)
	}
}

func TestBuild_UnknownProvider(t *testing.T) {
	stubConstructors(t)
	cfg := config.Default()
	cfg.Summarizer.Provider = "openai"
	set := Build(context.Background(), cfg, keysFrom(map[string]string{
		"tavily": "t", "groq": "g", "sarvam": "s",
	}))
	if len(set.InitErrors) != 1 || set.InitErrors[0].Service != "Summarizer" {
		t.Fatalf("unexpected init errors %+v", set.InitErrors)
	}
}
