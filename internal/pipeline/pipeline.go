package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/chat"
	"github.com/oukeidos/vaani/internal/language"
	"github.com/oukeidos/vaani/internal/logger"
	"github.com/oukeidos/vaani/internal/sarvam"
	"github.com/oukeidos/vaani/internal/search"
)

const (
	DefaultMaxResults = search.DefaultMaxResults

	StatusFetching    = "Fetching context..."
	StatusSummarizing = "Summarizing..."
	StatusTranslating = "Translating..."

	MsgInitFailed       = "One or more services failed to initialize. Please check your API keys and setup."
	MsgSearchError      = "Error during search: "
	MsgSummarizeError   = "Error during summarization: "
	MsgTranslateError   = "Error during translation: "
	MsgNoSummary        = "No summary available to translate."
	MsgEmptyTranslation = "Translation returned empty result."
	MsgNoContextNotice  = "Search returned no content; summarizing without context."
)

// Collaborators are the three external services a run depends on.
type Collaborators struct {
	Retriever  search.Searcher
	Summarizer chat.Completer
	Translator sarvam.Translator
}

// Observer receives state transitions with a short status text.
type Observer func(state State, status string)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver installs a status callback, invoked synchronously on the Run goroutine.
func WithObserver(fn Observer) Option {
	return func(p *Pipeline) { p.observer = fn }
}

// WithMaxResults caps the number of search results requested.
func WithMaxResults(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxResults = n
		}
	}
}

// WithSpeakerGender overrides the speaker gender sent with translation requests.
func WithSpeakerGender(g string) Option {
	return func(p *Pipeline) {
		if strings.TrimSpace(g) != "" {
			p.speakerGender = g
		}
	}
}

// WithClock replaces time.Now for stage durations.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// Pipeline runs Search → Summarize → Translate once per call to Run.
type Pipeline struct {
	c             Collaborators
	initErrs      []InitError
	observer      Observer
	maxResults    int
	speakerGender string
	now           func() time.Time
}

// New creates a pipeline over already-constructed collaborators.
func New(c Collaborators, opts ...Option) *Pipeline {
	p := &Pipeline{
		c:             c,
		maxResults:    DefaultMaxResults,
		speakerGender: sarvam.DefaultSpeakerGender,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromInit creates a pipeline that also knows which collaborators failed to
// construct. A pipeline with init errors refuses to run any stage.
func NewFromInit(c Collaborators, initErrs []InitError, opts ...Option) *Pipeline {
	p := New(c, opts...)
	p.initErrs = append([]InitError(nil), initErrs...)
	return p
}

// Ready reports whether every collaborator is available.
func (p *Pipeline) Ready() bool {
	return len(p.initErrs) == 0 && p.c.Retriever != nil && p.c.Summarizer != nil && p.c.Translator != nil
}

// InitErrors returns the recorded initialization failures.
func (p *Pipeline) InitErrors() []InitError {
	return append([]InitError(nil), p.initErrs...)
}

// Run executes one pass. Failures are reported in the returned Report; Run never
// aborts part way and never returns an error.
func (p *Pipeline) Run(ctx context.Context, question, targetLang string) Report {
	rep := Report{
		RunID:          uuid.NewString(),
		Question:       question,
		TargetLanguage: targetLang,
		Trace:          []State{StateIdle},
		Stages:         []StageResult{skipped(StageRetrieve), skipped(StageSummarize), skipped(StageTranslate)},
	}
	if !hasText(question) {
		return rep
	}
	log := logger.Logger().With("run_id", rep.RunID)

	if !p.Ready() {
		for _, ie := range p.missing() {
			rep.InitErrors = append(rep.InitErrors, ie)
			rep.add(LevelError, "", fmt.Sprintf("Error initializing %s: %s", ie.Service, ie.Message))
		}
		rep.add(LevelError, "", MsgInitFailed)
		p.transition(&rep, StateDone, "")
		log.Warn("Pipeline not ready", "failed_services", len(rep.InitErrors))
		return rep
	}

	// 1. Retrieve
	p.transition(&rep, StateRetrieving, StatusFetching)
	res := p.Retrieve(ctx, question)
	rep.record(res)
	switch res.Outcome {
	case OutcomeFailed:
		rep.add(LevelError, StageRetrieve, MsgSearchError+res.Error)
	case OutcomeEmpty:
		if res.Text == NoContextSentinel {
			rep.add(LevelInfo, StageRetrieve, MsgNoContextNotice)
		}
	}
	rep.Context = res.Text
	logStage(log, res)

	// 2. Summarize
	if res.Proceeds() {
		rep.Model = p.c.Summarizer.ModelID()
		p.transition(&rep, StateSummarizing, StatusSummarizing)
		res = p.Summarize(ctx, question, rep.Context)
		rep.record(res)
		if res.Outcome == OutcomeFailed {
			rep.add(LevelError, StageSummarize, MsgSummarizeError+res.Error)
		}
		rep.Summary = res.Text
		logStage(log, res)
	}

	// 3. Translate
	if !hasText(rep.Summary) {
		rep.add(LevelWarning, StageTranslate, MsgNoSummary)
	} else {
		p.transition(&rep, StateTranslating, StatusTranslating)
		res = p.Translate(ctx, rep.Summary, targetLang)
		rep.record(res)
		switch res.Outcome {
		case OutcomeFailed:
			rep.add(LevelError, StageTranslate, MsgTranslateError+res.Error)
		case OutcomeEmpty:
			rep.add(LevelWarning, StageTranslate, MsgEmptyTranslation)
		}
		rep.Translation = res.Text
		logStage(log, res)
	}

	p.transition(&rep, StateDone, "")
	log.Info("Pipeline finished", "complete", rep.Complete(), "errors", len(rep.Errors()), "warnings", len(rep.Warnings()))
	return rep
}

// Retrieve runs the search stage. The first result's content becomes the context;
// a missing content field (or no results) yields NoContextSentinel with OutcomeEmpty.
func (p *Pipeline) Retrieve(ctx context.Context, question string) StageResult {
	start := p.now()
	if p.c.Retriever == nil {
		return p.timed(failed(StageRetrieve, notConfigured(ServiceSearch)), start)
	}
	results, err := p.c.Retriever.Search(ctx, question, p.maxResults)
	if err != nil {
		return p.timed(failed(StageRetrieve, err), start)
	}
	if len(results) == 0 || !results[0].HasContent {
		return p.timed(StageResult{Stage: StageRetrieve, Outcome: OutcomeEmpty, Text: NoContextSentinel}, start)
	}
	content := results[0].Content
	if !hasText(content) {
		return p.timed(StageResult{Stage: StageRetrieve, Outcome: OutcomeEmpty}, start)
	}
	return p.timed(StageResult{Stage: StageRetrieve, Outcome: OutcomeOK, Text: content}, start)
}

// Summarize runs the summarization stage with a single user-role message.
func (p *Pipeline) Summarize(ctx context.Context, question, retrieved string) StageResult {
	start := p.now()
	if !hasText(retrieved) {
		return skipped(StageSummarize)
	}
	if p.c.Summarizer == nil {
		return p.timed(failed(StageSummarize, notConfigured(ServiceSummarizer)), start)
	}
	resp, err := p.c.Summarizer.Complete(ctx, []chat.Message{chat.UserMessage(BuildPrompt(question, retrieved))})
	if err != nil {
		return p.timed(failed(StageSummarize, err), start)
	}
	if resp == nil {
		return p.timed(StageResult{Stage: StageSummarize, Outcome: OutcomeEmpty}, start)
	}
	usage := resp.Usage
	if !hasText(resp.Content) {
		return p.timed(StageResult{Stage: StageSummarize, Outcome: OutcomeEmpty, Usage: &usage}, start)
	}
	return p.timed(StageResult{Stage: StageSummarize, Outcome: OutcomeOK, Text: resp.Content, Usage: &usage}, start)
}

// Translate runs the translation stage. The target language must be one of the
// supported codes; an unsupported code fails without calling the translator.
func (p *Pipeline) Translate(ctx context.Context, summary, targetLang string) StageResult {
	start := p.now()
	if !hasText(summary) {
		return skipped(StageTranslate)
	}
	if !language.IsSupported(targetLang) {
		err := apperrors.New(apperrors.KindValidation,
			fmt.Sprintf("Unsupported target language: %s", targetLang), nil)
		return p.timed(failed(StageTranslate, err), start)
	}
	if p.c.Translator == nil {
		return p.timed(failed(StageTranslate, notConfigured(ServiceTranslator)), start)
	}
	resp, err := p.c.Translator.Translate(ctx, sarvam.Request{
		Input:              summary,
		SourceLanguageCode: language.SourceAuto,
		TargetLanguageCode: targetLang,
		SpeakerGender:      p.speakerGender,
	})
	if err != nil {
		return p.timed(failed(StageTranslate, err), start)
	}
	text, ok := sarvam.ExtractText(resp)
	if !ok {
		return p.timed(StageResult{Stage: StageTranslate, Outcome: OutcomeEmpty}, start)
	}
	return p.timed(StageResult{Stage: StageTranslate, Outcome: OutcomeOK, Text: text}, start)
}

func (p *Pipeline) transition(rep *Report, state State, status string) {
	rep.enter(state)
	if p.observer != nil {
		p.observer(state, status)
	}
}

func (p *Pipeline) timed(res StageResult, start time.Time) StageResult {
	res.Duration = p.now().Sub(start)
	return res
}

// missing returns the recorded init errors, or one entry per nil collaborator
// when none were recorded.
func (p *Pipeline) missing() []InitError {
	if len(p.initErrs) > 0 {
		return p.InitErrors()
	}
	var out []InitError
	if p.c.Retriever == nil {
		out = append(out, NewInitError(ServiceSearch, notConfigured(ServiceSearch)))
	}
	if p.c.Summarizer == nil {
		out = append(out, NewInitError(ServiceSummarizer, notConfigured(ServiceSummarizer)))
	}
	if p.c.Translator == nil {
		out = append(out, NewInitError(ServiceTranslator, notConfigured(ServiceTranslator)))
	}
	return out
}

// Service labels used in init errors.
const (
	ServiceSearch     = "Search"
	ServiceSummarizer = "Summarizer"
	ServiceTranslator = "Translator"
)

func notConfigured(service string) error {
	return apperrors.Config(service+" is not configured.", nil)
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

func logStage(log *slog.Logger, res StageResult) {
	if res.Outcome == OutcomeFailed {
		kind, _ := apperrors.KindOf(res.Err)
		log.Warn("Stage failed", "stage", res.Stage, "kind", kind, "temporary", apperrors.Temporary(res.Err),
			"duration", res.Duration.Round(time.Millisecond))
		return
	}
	log.Info("Stage finished", "stage", res.Stage, "outcome", res.Outcome, "duration", res.Duration.Round(time.Millisecond))
}
