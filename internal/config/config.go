package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"github.com/oukeidos/vaani/internal/language"
	"github.com/oukeidos/vaani/internal/providers"
)

const (
	MinMaxResults     = 1
	MaxMaxResults     = 10
	DefaultMaxResults = 3
	DefaultListenAddr = "127.0.0.1:8080"
	DefaultLogLevel   = "info"
	DefaultEnvFile    = ".env"
	envPrefix         = "VAANI_"
)

// Config holds everything a run needs apart from credentials.
type Config struct {
	Language   string           `yaml:"language"`
	LogLevel   string           `yaml:"log_level"`
	Search     SearchConfig     `yaml:"search"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Translator TranslatorConfig `yaml:"translator"`
	Server     ServerConfig     `yaml:"server"`
}

type SearchConfig struct {
	BaseURL    string `yaml:"base_url"`
	MaxResults int    `yaml:"max_results"`
	Depth      string `yaml:"depth"`
}

type SummarizerConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

type TranslatorConfig struct {
	BaseURL       string `yaml:"base_url"`
	SpeakerGender string `yaml:"speaker_gender"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Language: language.Default,
		LogLevel: DefaultLogLevel,
		Search: SearchConfig{
			MaxResults: DefaultMaxResults,
			Depth:      "basic",
		},
		Summarizer: SummarizerConfig{
			Provider: providers.Groq,
		},
		Translator: TranslatorConfig{
			SpeakerGender: "Male",
		},
		Server: ServerConfig{Addr: DefaultListenAddr},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vaani", "config.yaml"), nil
}

// LoadDotEnv loads KEY=VALUE pairs from path without overriding variables that
// are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	err := gotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads defaults, then the YAML file at path (if it exists), then VAANI_*
// environment overrides. An explicitly named file that does not exist is an error.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("LANGUAGE", &c.Language)
	str("LOG_LEVEL", &c.LogLevel)
	str("SEARCH_BASE_URL", &c.Search.BaseURL)
	str("SEARCH_DEPTH", &c.Search.Depth)
	str("SUMMARIZER", &c.Summarizer.Provider)
	str("MODEL", &c.Summarizer.Model)
	str("SUMMARIZER_BASE_URL", &c.Summarizer.BaseURL)
	str("TRANSLATOR_BASE_URL", &c.Translator.BaseURL)
	str("ADDR", &c.Server.Addr)
	if v, ok := lookup(envPrefix + "MAX_RESULTS"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sMAX_RESULTS: %q", envPrefix, v)
		}
		c.Search.MaxResults = n
	}
	return nil
}

// Normalize fills blank fields with defaults and clamps numeric bounds. It
// returns a note for every value it changed.
func (c Config) Normalize() (Config, []string) {
	var notes []string
	def := Default()
	if c.Search.MaxResults < MinMaxResults || c.Search.MaxResults > MaxMaxResults {
		clamped := min(max(c.Search.MaxResults, MinMaxResults), MaxMaxResults)
		notes = append(notes, fmt.Sprintf("max-results clamped from %d to %d (range %d-%d)", c.Search.MaxResults, clamped, MinMaxResults, MaxMaxResults))
		c.Search.MaxResults = clamped
	}
	if strings.TrimSpace(c.Search.Depth) == "" {
		c.Search.Depth = def.Search.Depth
	}
	c.Summarizer.Provider = strings.ToLower(strings.TrimSpace(c.Summarizer.Provider))
	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = def.Summarizer.Provider
	}
	c.Summarizer.Model = strings.TrimSpace(c.Summarizer.Model)
	if owner, ok := providers.ProviderOf(c.Summarizer.Model); ok && owner != c.Summarizer.Provider {
		fallback := providers.DefaultModel(c.Summarizer.Provider)
		notes = append(notes, fmt.Sprintf("model %s belongs to %s; using %s for %s", c.Summarizer.Model, owner, fallback, c.Summarizer.Provider))
		c.Summarizer.Model = fallback
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = providers.DefaultModel(c.Summarizer.Provider)
	}
	if strings.TrimSpace(c.Translator.SpeakerGender) == "" {
		c.Translator.SpeakerGender = def.Translator.SpeakerGender
	}
	if strings.TrimSpace(c.Language) == "" {
		c.Language = def.Language
	} else if lang, ok := language.Resolve(c.Language); ok && lang.Code != c.Language {
		notes = append(notes, fmt.Sprintf("language %q resolved to %s", c.Language, lang.Code))
		c.Language = lang.Code
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = def.Server.Addr
	}
	return c, notes
}

// Validate checks values that Normalize cannot repair.
func (c Config) Validate() error {
	if !language.IsSupported(c.Language) {
		return fmt.Errorf("unsupported language: %s", c.Language)
	}
	if !providers.IsKnown(c.Summarizer.Provider) {
		return fmt.Errorf("unknown summarizer provider: %s (expected one of %s)", c.Summarizer.Provider, strings.Join(providers.Names(), ", "))
	}
	if c.Search.MaxResults < MinMaxResults || c.Search.MaxResults > MaxMaxResults {
		return fmt.Errorf("max-results must be between %d and %d", MinMaxResults, MaxMaxResults)
	}
	switch c.Search.Depth {
	case "basic", "advanced":
	default:
		return fmt.Errorf("search depth must be basic or advanced, got %q", c.Search.Depth)
	}
	switch c.Translator.SpeakerGender {
	case "Male", "Female":
	default:
		return fmt.Errorf("speaker gender must be Male or Female, got %q", c.Translator.SpeakerGender)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
