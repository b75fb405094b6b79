package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/chat"
	"github.com/oukeidos/vaani/internal/config"
	"github.com/oukeidos/vaani/internal/logger"
	"github.com/oukeidos/vaani/internal/pipeline"
	"github.com/oukeidos/vaani/internal/providers"
	"github.com/oukeidos/vaani/internal/sarvam"
	"github.com/oukeidos/vaani/internal/search"
)

// Labels used in initialization error messages.
const (
	LabelSearch     = "Tavily search"
	LabelTranslator = "SarvamAI client"
)

// KeySource resolves a credential by service name, returning the key and its source.
type KeySource func(service string) (key, source string)

var (
	newSearch = func(apiKey, baseURL string) (search.Searcher, error) {
		c, err := search.NewClient(apiKey, baseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	newGroq = func(_ context.Context, apiKey, model, baseURL string) (chat.Completer, error) {
		c, err := chat.NewGroq(apiKey, model, baseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	newGemini = func(ctx context.Context, apiKey, model, _ string) (chat.Completer, error) {
		c, err := chat.NewGemini(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	newTranslator = func(apiKey, baseURL string) (sarvam.Translator, error) {
		c, err := sarvam.NewClient(apiKey, baseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
)

// Set is the outcome of Build: the collaborators that could be constructed, the
// ones that could not, and a Close func releasing client resources.
type Set struct {
	Collaborators pipeline.Collaborators
	InitErrors    []pipeline.InitError
	closers       []func() error
}

// Close releases any client resources. It is safe to call more than once.
func (s *Set) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Pipeline builds a pipeline over the set with options derived from cfg.
func (s *Set) Pipeline(cfg config.Config, opts ...pipeline.Option) *pipeline.Pipeline {
	base := []pipeline.Option{
		pipeline.WithMaxResults(cfg.Search.MaxResults),
		pipeline.WithSpeakerGender(cfg.Translator.SpeakerGender),
	}
	return pipeline.NewFromInit(s.Collaborators, s.InitErrors, append(base, opts...)...)
}

// Build constructs every collaborator. Failures are recorded per service and never
// returned as an error; a pipeline built from the set refuses to run when any exist.
func Build(ctx context.Context, cfg config.Config, keys KeySource) *Set {
	set := &Set{}

	if key, source := keys("tavily"); key != "" {
		s, err := newSearch(key, cfg.Search.BaseURL)
		if err != nil {
			set.fail(LabelSearch, err)
		} else {
			if c, ok := s.(*search.Client); ok {
				c.SetSearchDepth(cfg.Search.Depth)
			}
			set.Collaborators.Retriever = s
			logger.Debug("Search client ready", "source", source)
		}
	} else {
		set.fail(LabelSearch, missingKey("Tavily", "TAVILY_API_KEY"))
	}

	provider, ok := providers.Get(cfg.Summarizer.Provider)
	if !ok {
		set.fail("Summarizer", apperrors.Config(fmt.Sprintf("Unknown summarizer provider: %s.", cfg.Summarizer.Provider), nil))
	} else {
		label := provider.Label + " model"
		ctor := newGroq
		envVar := "GROQ_API_KEY"
		if provider.Name == providers.Gemini {
			ctor = newGemini
			envVar = "GEMINI_API_KEY"
		}
		if key, source := keys(provider.KeyService); key != "" {
			c, err := ctor(ctx, key, cfg.Summarizer.Model, cfg.Summarizer.BaseURL)
			if err != nil {
				set.fail(label, err)
			} else {
				if closer, ok := c.(interface{ Close() error }); ok {
					set.closers = append(set.closers, closer.Close)
				}
				set.Collaborators.Summarizer = c
				logger.Debug("Summarizer ready", "provider", provider.Name, "model", c.ModelID(), "source", source)
			}
		} else {
			set.fail(label, missingKey(provider.Label, envVar))
		}
	}

	if key, source := keys("sarvam"); key != "" {
		tr, err := newTranslator(key, cfg.Translator.BaseURL)
		if err != nil {
			set.fail(LabelTranslator, err)
		} else {
			set.Collaborators.Translator = tr
			logger.Debug("Translator ready", "source", source)
		}
	} else {
		set.fail(LabelTranslator, missingKey("Sarvam", "SARVAM_API_KEY"))
	}

	return set
}

func (s *Set) fail(label string, err error) {
	logger.Warn("Service failed to initialize", "service", label, "error", apperrors.PublicMessage(err))
	s.InitErrors = append(s.InitErrors, pipeline.NewInitError(label, err))
}

func missingKey(label, envVar string) error {
	return apperrors.Config(
		fmt.Sprintf("%s API key is missing. Set %s or run 'vaani env setup'.", label, envVar),
		fmt.Errorf("%s not set", envVar),
	)
}
