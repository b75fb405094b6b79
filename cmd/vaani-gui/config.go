package main

import (
	"github.com/oukeidos/vaani/internal/config"
	"github.com/oukeidos/vaani/internal/logger"
)

// preferences is the subset of fyne.Preferences the app persists settings through.
type preferences interface {
	StringWithFallback(key, fallback string) string
	IntWithFallback(key string, fallback int) int
	SetString(key, value string)
	SetInt(key string, value int)
}

const (
	prefLanguage   = "Language"
	prefProvider   = "Provider"
	prefModel      = "Model"
	prefMaxResults = "MaxResults"
)

// baseConfig loads the shared config file and environment, falling back to
// defaults when the file is unreadable.
func baseConfig() config.Config {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(path, false)
	if err != nil {
		logger.Warn("Ignoring config file", "path", path, "error", err)
		return config.Default()
	}
	return cfg
}

// loadPrefs overlays stored GUI choices on base and repairs anything invalid.
func loadPrefs(prefs preferences, base config.Config) config.Config {
	cfg := base
	cfg.Language = prefs.StringWithFallback(prefLanguage, base.Language)
	cfg.Summarizer.Provider = prefs.StringWithFallback(prefProvider, base.Summarizer.Provider)
	cfg.Summarizer.Model = prefs.StringWithFallback(prefModel, base.Summarizer.Model)
	cfg.Search.MaxResults = prefs.IntWithFallback(prefMaxResults, base.Search.MaxResults)

	cfg, notes := cfg.Normalize()
	for _, note := range notes {
		logger.Warn("Preference adjusted", "note", note)
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("Stored preferences invalid; using defaults", "error", err)
		def, _ := base.Normalize()
		if def.Validate() != nil {
			def, _ = config.Default().Normalize()
		}
		return def
	}
	return cfg
}

func savePrefs(prefs preferences, cfg config.Config) {
	prefs.SetString(prefLanguage, cfg.Language)
	prefs.SetString(prefProvider, cfg.Summarizer.Provider)
	prefs.SetString(prefModel, cfg.Summarizer.Model)
	prefs.SetInt(prefMaxResults, cfg.Search.MaxResults)
}
