package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestPrettyHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: LevelDebug}, false))

	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want []string
	}{
		{
			name: "persistent and record attrs",
			log:  func(l *slog.Logger) { l.With("run_id", "abc-123").Info("stage done", "stage", "retrieve") },
			want: []string{"INFO", "stage done", "run_id=abc-123", "stage=retrieve"},
		},
		{
			name: "group prefix",
			log:  func(l *slog.Logger) { l.WithGroup("search").With("results", 3).Info("ok", "depth", "basic") },
			want: []string{"search.results=3", "search.depth=basic"},
		},
		{
			name: "nested groups",
			log:  func(l *slog.Logger) { l.WithGroup("outer").WithGroup("inner").With("k", "v").Debug("msg") },
			want: []string{"DEBUG", "outer.inner.k=v"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log(base)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			if strings.Count(out, "\n") != 1 {
				t.Errorf("expected one line, got %q", out)
			}
		})
	}
}

func TestPrettyHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: LevelWarn}, false))
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRedactAttr(t *testing.T) {
	tests := []struct {
		key, value string
		redact     bool
	}{
		{"api_key", "sk-1234567890abcdef", true},
		{"message", "bearer sk-1234567890abcdef", true},
		{"question", "What is the capital of France?", true},
		{"summary", "Paris is the capital.", true},
		{"context", "Paris is the capital.", true},
		{"translated_text", "पेरिस", true},
		{"detail", "using tvly-abcdefghijklmnop", true},
		{"detail", "using gsk_abcdefghijklmnop", true},
		{"x_subscription_header", "abc", true},
		{"user", "alice", false},
		{"stage", "retrieve", false},
	}
	for _, tt := range tests {
		got := RedactAttr(nil, slog.String(tt.key, tt.value)).Value.String()
		if tt.redact && got != redacted {
			t.Errorf("%s=%q: expected redaction, got %q", tt.key, tt.value, got)
		}
		if !tt.redact && got != tt.value {
			t.Errorf("%s=%q: unexpected redaction %q", tt.key, tt.value, got)
		}
	}
}

func TestInit_ColorRules(t *testing.T) {
	tests := []struct {
		name     string
		terminal bool
		logFile  io.Writer
	}{
		{"not a terminal", false, nil},
		{"log file enabled", true, &bytes.Buffer{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prevIsTerminal, prevStderr := isTerminal, os.Stderr
			isTerminal = func(int) bool { return tt.terminal }
			r, w, err := os.Pipe()
			if err != nil {
				t.Fatalf("pipe: %v", err)
			}
			os.Stderr = w
			defer func() {
				isTerminal, os.Stderr = prevIsTerminal, prevStderr
				Init(LevelInfo, nil)
			}()

			Init(LevelInfo, tt.logFile)
			Info("test message", "key", "value")
			_ = w.Close()
			out, _ := io.ReadAll(r)
			if strings.Contains(string(out), "\033[") {
				t.Fatalf("unexpected ANSI codes in output: %q", out)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		" error ": LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWriters_JSONFile(t *testing.T) {
	var console, file bytes.Buffer
	InitWriters(LevelInfo, &console, &file, false)
	defer Init(LevelInfo, nil)

	Info("stage finished", "stage", "retrieve", "question", "secret question")
	Debug("below threshold")

	if !strings.Contains(console.String(), "stage finished") {
		t.Fatalf("console output missing message: %q", console.String())
	}
	if !strings.Contains(file.String(), `"stage":"retrieve"`) {
		t.Fatalf("json output missing attr: %q", file.String())
	}
	if strings.Contains(file.String(), "secret question") || strings.Contains(console.String(), "secret question") {
		t.Fatal("question leaked into logs")
	}
	if strings.Contains(file.String(), "below threshold") {
		t.Fatalf("debug record written at info level: %q", file.String())
	}
}
