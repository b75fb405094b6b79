package logger

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// Attribute keys that always carry credentials or user text.
var redactKeys = map[string]struct{}{
	"api_key": {}, "apikey": {}, "authorization": {}, "bearer": {},
	"password": {}, "secret": {}, "session": {}, "token": {},
	"body": {}, "content": {}, "context": {}, "input": {}, "output": {},
	"prompt": {}, "question": {}, "summary": {}, "translated_text": {},
}

// Any key containing one of these fragments is treated the same way.
var redactKeyFragments = []string{
	"key", "token", "secret", "password", "authorization", "bearer",
	"subscription", "api", "prompt", "content", "body", "input", "output", "text",
}

// Values that look like credentials are dropped whatever their key.
var redactValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsk-[A-Za-z0-9_-]{10,}\b`),
	regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{10,}\b`),
	regexp.MustCompile(`\btvly-[A-Za-z0-9_-]{10,}\b`),
	regexp.MustCompile(`\bgsk_[A-Za-z0-9]{10,}\b`),
	regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*\b`),
	regexp.MustCompile(`(?i)\b(api[_-]?key|access[_-]?token|secret)\b\s*[:=]\s*\S+`),
}

// RedactAttr is a slog ReplaceAttr hook that masks credentials and user text.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if sensitiveKey(a.Key) || sensitiveValue(a.Value) {
		return slog.String(a.Key, redacted)
	}
	return a
}

func sensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if _, ok := redactKeys[key]; ok {
		return true
	}
	for _, frag := range redactKeyFragments {
		if strings.Contains(key, frag) {
			return true
		}
	}
	return false
}

func sensitiveValue(v slog.Value) bool {
	var s string
	if v.Kind() == slog.KindString {
		s = v.String()
	} else {
		s = fmt.Sprint(v.Any())
	}
	if s == "" {
		return false
	}
	for _, re := range redactValues {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
