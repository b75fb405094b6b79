package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/oukeidos/vaani/internal/prompt"
)

func TestHandleEnv_StatusKeychain(t *testing.T) {
	withStatusStubs(t, true, "")

	out, err := executeCommand(t, "env", "status", "--service", "sarvam")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "sarvam API Key: Found (source=Keychain)") {
		t.Fatalf("expected keychain source, got: %s", out)
	}
}

func TestHandleEnv_StatusEnvTakesPrecedence(t *testing.T) {
	stubs := withStatusStubs(t, true, "sk-env-secret")

	out, err := executeCommand(t, "env", "status", "--service", "groq")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Found (source=Environment Variable GROQ_API_KEY)") {
		t.Fatalf("expected env source, got: %s", out)
	}
	if strings.Contains(out, "sk-env-secret") {
		t.Fatalf("output leaked env key")
	}
	if stubs.statusCalls != 0 {
		t.Fatalf("keychain should not be consulted when env is set")
	}
}

func TestHandleEnv_StatusAllServices(t *testing.T) {
	withStatusStubs(t, false, "")

	out, err := executeCommand(t, "env")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	for _, svc := range []string{"gemini", "groq", "sarvam", "tavily"} {
		if !strings.Contains(out, svc+" API Key: Not Found") {
			t.Fatalf("missing status line for %s: %s", svc, out)
		}
	}
}

func TestHandleEnv_InvalidService(t *testing.T) {
	withStatusStubs(t, false, "")
	if _, err := executeCommand(t, "env", "status", "--service", "openai"); err == nil {
		t.Fatal("expected error for unknown service")
	}
}

func TestHandleEnvSetup_RejectsPositionalAPIKey(t *testing.T) {
	out, err := executeCommand(t, "env", "setup", "sk-should-not-be-allowed", "--service", "sarvam")
	if err == nil {
		t.Fatalf("expected setup to reject positional API key argument")
	}
	if !strings.Contains(out, "unknown command") && !strings.Contains(out, "accepts 0 arg(s)") {
		t.Fatalf("expected positional-argument rejection error, got: %s", out)
	}
}

func TestHandleEnvSetup_PromptsAndSaves(t *testing.T) {
	prevTerm, prevPrompt, prevSave := isTerminal, promptForKey, saveKey
	t.Cleanup(func() { isTerminal, promptForKey, saveKey = prevTerm, prevPrompt, prevSave })

	var saved [2]string
	isTerminal = func(int) bool { return true }
	promptForKey = func(label string) (string, error) {
		if !strings.Contains(label, "Tavily") {
			t.Errorf("unexpected prompt label %q", label)
		}
		return "  tvly-secret  ", nil
	}
	saveKey = func(service, key string) error {
		saved = [2]string{service, key}
		return nil
	}

	out, err := executeCommand(t, "env", "setup", "--service", "TAVILY")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if saved != [2]string{"tavily", "tvly-secret"} {
		t.Fatalf("saved = %v", saved)
	}
	if strings.Contains(out, "tvly-secret") {
		t.Fatalf("output leaked key: %s", out)
	}
}

func TestHandleEnvSetup_NonInteractive(t *testing.T) {
	prevTerm := isTerminal
	t.Cleanup(func() { isTerminal = prevTerm })
	isTerminal = func(int) bool { return false }

	_, err := executeCommand(t, "env", "setup", "--service", "groq")
	if err == nil || !strings.Contains(err.Error(), "GROQ_API_KEY") {
		t.Fatalf("expected non-interactive error naming env var, got %v", err)
	}
}

func TestHandleEnvDelete(t *testing.T) {
	prevDelete := deleteKey
	t.Cleanup(func() { deleteKey = prevDelete })
	var deleted []string
	deleteKey = func(service string) error {
		deleted = append(deleted, service)
		return nil
	}

	if _, err := executeCommand(t, "env", "delete", "--service", "gemini"); err == nil {
		t.Fatal("expected non-interactive delete without --yes to fail")
	}
	if len(deleted) != 0 {
		t.Fatalf("key deleted without confirmation")
	}

	out, err := executeCommand(t, "env", "delete", "--service", "gemini", "--yes")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "gemini" || !strings.Contains(out, "Deleted gemini API key") {
		t.Fatalf("deleted=%v out=%s", deleted, out)
	}
}

func TestHandleEnvDelete_DeclinedPrompt(t *testing.T) {
	prevDelete := deleteKey
	t.Cleanup(func() { deleteKey = prevDelete })
	deleteKey = func(string) error {
		t.Fatal("deleteKey should not be called")
		return nil
	}

	dir := isolate(t)
	newPrompter = func() prompt.Prompter {
		return prompt.Prompter{In: strings.NewReader("n\n"), Out: io.Discard, IsInteractive: func() bool { return true }}
	}
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--env-file", dir + "/none.env", "env", "delete", "--service", "sarvam"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Aborted.") {
		t.Fatalf("expected abort message, got: %s", buf.String())
	}
}
