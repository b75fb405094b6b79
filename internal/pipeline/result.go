package pipeline

import (
	"time"

	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/chat"
)

// State is the pipeline's position in a single run.
type State string

const (
	StateIdle        State = "idle"
	StateRetrieving  State = "retrieving"
	StateSummarizing State = "summarizing"
	StateTranslating State = "translating"
	StateDone        State = "done"
)

// Stage names one of the three pipeline steps.
type Stage string

const (
	StageRetrieve  Stage = "retrieve"
	StageSummarize Stage = "summarize"
	StageTranslate Stage = "translate"
)

// Outcome is the tri-state result of a stage, plus Skipped for stages never started.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// StageResult is what a stage function returns. Err is set only for OutcomeFailed.
type StageResult struct {
	Stage    Stage         `json:"stage"`
	Outcome  Outcome       `json:"outcome"`
	Text     string        `json:"text,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	// Usage is reported by the summarize stage only.
	Usage *chat.Usage `json:"usage,omitempty"`
}

// Proceeds reports whether downstream stages have usable input.
func (r StageResult) Proceeds() bool {
	return r.Outcome != OutcomeFailed && r.Outcome != OutcomeSkipped && hasText(r.Text)
}

func failed(stage Stage, err error) StageResult {
	return StageResult{Stage: stage, Outcome: OutcomeFailed, Err: err, Error: apperrors.PublicMessage(err)}
}

func skipped(stage Stage) StageResult {
	return StageResult{Stage: stage, Outcome: OutcomeSkipped}
}

// Level classifies a user-facing message.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Message is a notice shown to the user. Stage is empty for run-level messages.
type Message struct {
	Level Level  `json:"level"`
	Stage Stage  `json:"stage,omitempty"`
	Text  string `json:"text"`
}

// InitError records a collaborator that could not be constructed.
type InitError struct {
	Service string `json:"service"`
	Err     error  `json:"-"`
	Message string `json:"message"`
}

// NewInitError builds an InitError with its public message filled in.
func NewInitError(service string, err error) InitError {
	return InitError{Service: service, Err: err, Message: apperrors.PublicMessage(err)}
}

// Report is the complete outcome of one Run. It is always returned, even when
// every stage failed.
type Report struct {
	RunID          string        `json:"run_id"`
	Question       string        `json:"question"`
	TargetLanguage string        `json:"target_language"`
	Model          string        `json:"model,omitempty"`
	Trace          []State       `json:"trace"`
	Context        string        `json:"context,omitempty"`
	Summary        string        `json:"summary,omitempty"`
	Translation    string        `json:"translation,omitempty"`
	Stages         []StageResult `json:"stages"`
	Messages       []Message     `json:"messages,omitempty"`
	InitErrors     []InitError   `json:"init_errors,omitempty"`
}

// Errors returns error-level messages in emission order.
func (r Report) Errors() []Message { return r.byLevel(LevelError) }

// Warnings returns warning-level messages in emission order.
func (r Report) Warnings() []Message { return r.byLevel(LevelWarning) }

func (r Report) byLevel(level Level) []Message {
	var out []Message
	for _, m := range r.Messages {
		if m.Level == level {
			out = append(out, m)
		}
	}
	return out
}

// Final is the text shown as the run's final output: the translation.
func (r Report) Final() string { return r.Translation }

// Complete reports whether all three stages succeeded with content.
func (r Report) Complete() bool {
	if len(r.Stages) != 3 {
		return false
	}
	for _, s := range r.Stages {
		if s.Outcome != OutcomeOK {
			return false
		}
	}
	return true
}

// Stage returns the result recorded for the given stage.
func (r Report) Stage(stage Stage) StageResult {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s
		}
	}
	return skipped(stage)
}

func (r *Report) enter(state State) {
	r.Trace = append(r.Trace, state)
}

func (r *Report) add(level Level, stage Stage, text string) {
	r.Messages = append(r.Messages, Message{Level: level, Stage: stage, Text: text})
}

func (r *Report) record(res StageResult) {
	for i := range r.Stages {
		if r.Stages[i].Stage == res.Stage {
			r.Stages[i] = res
			return
		}
	}
	r.Stages = append(r.Stages, res)
}

// Usage returns the summarizer's token usage, or zero when it never ran.
func (r Report) Usage() chat.Usage {
	if u := r.Stage(StageSummarize).Usage; u != nil {
		return *u
	}
	return chat.Usage{}
}
