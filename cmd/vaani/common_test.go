package main

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/oukeidos/vaani/internal/logger"
	"github.com/oukeidos/vaani/internal/prompt"
)

type keyStubs struct {
	envCalls    int
	statusCalls int
}

// isolate points config and .env lookups at an empty temp dir and silences logging.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, name := range []string{"VAANI_LANGUAGE", "VAANI_SUMMARIZER", "VAANI_MODEL", "VAANI_MAX_RESULTS", "VAANI_LOG_LEVEL"} {
		t.Setenv(name, "")
	}

	prevInit := initLogger
	initLogger = func(level slog.Level, _ io.Writer) {
		logger.InitWriters(level, io.Discard, nil, false)
	}
	prevPrompter := newPrompter
	newPrompter = func() prompt.Prompter {
		return prompt.Prompter{In: &bytes.Buffer{}, Out: io.Discard, IsInteractive: func() bool { return false }}
	}
	t.Cleanup(func() {
		initLogger = prevInit
		newPrompter = prevPrompter
	})
	return dir
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := isolate(t)
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(dir, "missing.env")}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func withStatusStubs(t *testing.T, status bool, envKey string) *keyStubs {
	t.Helper()
	stubs := &keyStubs{}

	prevStatus := getStatus
	prevEnv := getEnvKey

	getStatus = func(_ string) bool {
		stubs.statusCalls++
		return status
	}
	getEnvKey = func(_ string) (string, bool) {
		stubs.envCalls++
		if envKey == "" {
			return "", false
		}
		return envKey, true
	}
	t.Cleanup(func() {
		getStatus = prevStatus
		getEnvKey = prevEnv
	})
	return stubs
}
