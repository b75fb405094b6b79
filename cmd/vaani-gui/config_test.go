package main

import (
	"testing"

	"github.com/oukeidos/vaani/internal/config"
)

type memPrefs struct {
	strs map[string]string
	ints map[string]int
}

func newMemPrefs() *memPrefs {
	return &memPrefs{strs: map[string]string{}, ints: map[string]int{}}
}

func (m *memPrefs) StringWithFallback(key, fallback string) string {
	if v, ok := m.strs[key]; ok {
		return v
	}
	return fallback
}

func (m *memPrefs) IntWithFallback(key string, fallback int) int {
	if v, ok := m.ints[key]; ok {
		return v
	}
	return fallback
}

func (m *memPrefs) SetString(key, value string)  { m.strs[key] = value }
func (m *memPrefs) SetInt(key string, value int) { m.ints[key] = value }

func TestLoadPrefs(t *testing.T) {
	tests := []struct {
		name      string
		strs      map[string]string
		ints      map[string]int
		wantLang  string
		wantModel string
		wantMax   int
	}{
		{
			name:      "empty uses base",
			wantLang:  "hi-IN",
			wantModel: "gemma2-9b-it",
			wantMax:   config.DefaultMaxResults,
		},
		{
			name:      "stored values kept",
			strs:      map[string]string{prefLanguage: "ta-IN", prefProvider: "gemini", prefModel: "gemini-2.5-flash"},
			ints:      map[string]int{prefMaxResults: 4},
			wantLang:  "ta-IN",
			wantModel: "gemini-2.5-flash",
			wantMax:   4,
		},
		{
			name:      "stale model from other provider",
			strs:      map[string]string{prefProvider: "gemini", prefModel: "gemma2-9b-it"},
			wantLang:  "hi-IN",
			wantModel: "gemini-2.0-flash",
			wantMax:   config.DefaultMaxResults,
		},
		{
			name:      "out of range clamped",
			ints:      map[string]int{prefMaxResults: 99},
			wantLang:  "hi-IN",
			wantModel: "gemma2-9b-it",
			wantMax:   config.MaxMaxResults,
		},
		{
			name:      "unknown provider falls back",
			strs:      map[string]string{prefLanguage: "ta-IN", prefProvider: "openai"},
			wantLang:  "hi-IN",
			wantModel: "gemma2-9b-it",
			wantMax:   config.DefaultMaxResults,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newMemPrefs()
			for k, v := range tc.strs {
				p.strs[k] = v
			}
			for k, v := range tc.ints {
				p.ints[k] = v
			}
			got := loadPrefs(p, config.Default())
			if got.Language != tc.wantLang || got.Summarizer.Model != tc.wantModel || got.Search.MaxResults != tc.wantMax {
				t.Fatalf("loadPrefs = lang %q model %q max %d", got.Language, got.Summarizer.Model, got.Search.MaxResults)
			}
		})
	}
}

func TestSavePrefsRoundTrip(t *testing.T) {
	p := newMemPrefs()
	cfg := config.Default()
	cfg.Language = "bn-IN"
	cfg.Search.MaxResults = 6
	savePrefs(p, cfg)

	got := loadPrefs(p, config.Default())
	if got.Language != "bn-IN" || got.Search.MaxResults != 6 {
		t.Fatalf("round trip lost values: %+v", got)
	}
}
