package main

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSaveKeysToKeychain(t *testing.T) {
	t.Run("empty_keys_noop", func(t *testing.T) {
		calls := 0
		result, err := saveKeysToKeychain(map[string]string{"groq": " ", "tavily": ""}, func(service, key string) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(result.Saved) != 0 || calls != 0 {
			t.Fatalf("expected no saves, got %+v calls=%d", result, calls)
		}
	})

	t.Run("saves_in_service_order", func(t *testing.T) {
		var called []string
		result, err := saveKeysToKeychain(map[string]string{"tavily": "t-key", "groq": " g-key "}, func(service, key string) error {
			called = append(called, service+":"+key)
			return nil
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if !reflect.DeepEqual(called, []string{"groq:g-key", "tavily:t-key"}) {
			t.Fatalf("unexpected calls: %#v", called)
		}
		if !reflect.DeepEqual(result.Saved, []string{"groq", "tavily"}) {
			t.Fatalf("unexpected saved list: %#v", result.Saved)
		}
	})

	t.Run("returns_error_and_keeps_trying_other_keys", func(t *testing.T) {
		var called []string
		result, err := saveKeysToKeychain(map[string]string{"gemini": "g", "sarvam": "s"}, func(service, key string) error {
			called = append(called, service)
			if service == "gemini" {
				return errors.New("keychain unavailable")
			}
			return nil
		})
		if err == nil || !strings.Contains(err.Error(), "failed to save Gemini key") {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(result.Saved, []string{"sarvam"}) {
			t.Fatalf("unexpected saved list: %#v", result.Saved)
		}
		if len(called) != 2 {
			t.Fatalf("expected both save attempts, got %#v", called)
		}
	})
}

func TestResetKeysInKeychain(t *testing.T) {
	t.Run("deletes_all_keys", func(t *testing.T) {
		var called []string
		if err := resetKeysInKeychain(func(service string) error {
			called = append(called, service)
			return nil
		}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if !reflect.DeepEqual(called, []string{"gemini", "groq", "sarvam", "tavily"}) {
			t.Fatalf("unexpected delete attempts: %#v", called)
		}
	})

	t.Run("returns_combined_error", func(t *testing.T) {
		err := resetKeysInKeychain(func(service string) error {
			if service == "groq" || service == "tavily" {
				return errors.New(service + " delete failed")
			}
			return nil
		})
		if err == nil {
			t.Fatalf("expected error")
		}
		msg := err.Error()
		if !strings.Contains(msg, "failed to delete Groq key") || !strings.Contains(msg, "failed to delete Tavily key") {
			t.Fatalf("missing errors in: %v", msg)
		}
	})
}

func TestSessionKeySource(t *testing.T) {
	fallback := func(service string) (string, string) {
		if service == "sarvam" {
			return "keychain-sarvam", "Keychain"
		}
		return "", ""
	}
	keys := sessionKeySource(map[string]string{"tavily": " session-tavily "}, fallback)

	if key, source := keys("tavily"); key != "session-tavily" || source != sourceSession {
		t.Fatalf("tavily = (%q, %q)", key, source)
	}
	if key, source := keys("sarvam"); key != "keychain-sarvam" || source != "Keychain" {
		t.Fatalf("sarvam = (%q, %q)", key, source)
	}
	if got := missingKeys("gemini", keys); !reflect.DeepEqual(got, []string{"gemini"}) {
		t.Fatalf("missingKeys = %v", got)
	}
}
