package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oukeidos/vaani/internal/apperrors"
	"github.com/oukeidos/vaani/internal/config"
	"github.com/oukeidos/vaani/internal/files"
	"github.com/oukeidos/vaani/internal/language"
	"github.com/oukeidos/vaani/internal/logger"
	"github.com/oukeidos/vaani/internal/pipeline"
	"github.com/oukeidos/vaani/internal/providers"
)

const contextPreviewLen = 200

type askOptions struct {
	lang       string
	provider   string
	model      string
	maxResults int
	jsonOut    bool
	outputPath string
	overwrite  bool
	noStats    bool
}

func newAskCmd(root *rootOptions) *cobra.Command {
	opts := askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Search the web, summarize, and translate the answer",
		Example: `  vaani ask --lang bn-IN "latest ISRO launch"
  vaani ask --lang english --no-stats "price of gold today"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, args, root, &opts)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addAskFlags(cmd.Flags(), &opts)
	return cmd
}

func addAskFlags(f *pflag.FlagSet, opts *askOptions) {
	f.StringVarP(&opts.lang, "lang", "l", "", "Target language code or name (e.g. hi-IN, tamil)")
	f.StringVar(&opts.provider, "provider", "", "Summarizer provider ("+strings.Join(providers.Names(), ", ")+")")
	f.StringVar(&opts.model, "model", "", "Summarizer model ID (default: provider default)")
	f.IntVar(&opts.maxResults, "max-results", 0, fmt.Sprintf("Number of search results to request (%d-%d)", config.MinMaxResults, config.MaxMaxResults))
	f.BoolVar(&opts.jsonOut, "json", false, "Print the full report as JSON")
	f.StringVarP(&opts.outputPath, "output", "o", "", "Also save the JSON report to this file")
	f.BoolVar(&opts.overwrite, "overwrite", false, "Overwrite the output file instead of picking a new name")
	f.BoolVar(&opts.noStats, "no-stats", false, "Hide context preview and execution stats")
}

// applyAskFlags overrides config values with flags the user actually set.
func applyAskFlags(cmd *cobra.Command, cfg *config.Config, opts *askOptions) {
	f := cmd.Flags()
	if f.Changed("lang") {
		cfg.Language = opts.lang
	}
	if f.Changed("provider") {
		cfg.Summarizer.Provider = opts.provider
		if !f.Changed("model") {
			cfg.Summarizer.Model = ""
		}
	}
	if f.Changed("model") {
		cfg.Summarizer.Model = opts.model
	}
	if f.Changed("max-results") {
		cfg.Search.MaxResults = opts.maxResults
	}
}

func runAsk(cmd *cobra.Command, args []string, root *rootOptions, opts *askOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	applyAskFlags(cmd, &cfg, opts)
	cfg, err = finalizeConfig(cfg)
	if err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		p := newPrompter()
		if !p.Interactive() {
			return fmt.Errorf("a question is required (pass it as an argument)")
		}
		question, err = p.ReadLine("Enter your question: ")
		if err != nil {
			return fmt.Errorf("error reading question: %w", err)
		}
		if question == "" {
			return fmt.Errorf("question is empty")
		}
	}

	ctx, stop := signalContext()
	defer stop()

	set := buildServices(ctx, cfg, getKey)
	defer func() {
		if err := set.Close(); err != nil {
			logger.Warn("Failed to release clients", "error", err)
		}
	}()

	status := cmd.ErrOrStderr()
	p := set.Pipeline(cfg, pipeline.WithObserver(func(_ pipeline.State, text string) {
		if text != "" {
			fmt.Fprintln(status, text)
		}
	}))

	start := time.Now()
	rep := p.Run(ctx, question, cfg.Language)
	elapsed := time.Since(start)

	if opts.outputPath != "" {
		if err := saveReport(cmd, rep, opts); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printReport(out, rep)
		if !opts.noStats {
			printContextPreview(out, rep)
			printUsageStats(out, rep, cfg, elapsed)
		}
	}

	if len(rep.InitErrors) > 0 {
		return apperrors.Config(pipeline.MsgInitFailed, nil)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run canceled: %w", err)
	}
	return nil
}

func saveReport(cmd *cobra.Command, rep pipeline.Report, opts *askOptions) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	path, err := files.WriteOutput(opts.outputPath, append(data, '\n'), opts.overwrite)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", path)
	return nil
}

func printReport(out io.Writer, rep pipeline.Report) {
	for _, m := range rep.Messages {
		switch m.Level {
		case pipeline.LevelError:
			fmt.Fprintf(out, "Error: %s\n", m.Text)
		case pipeline.LevelWarning:
			fmt.Fprintf(out, "Warning: %s\n", m.Text)
		default:
			fmt.Fprintf(out, "Note: %s\n", m.Text)
		}
	}
	if len(rep.Messages) > 0 {
		fmt.Fprintln(out)
	}

	if rep.Summary != "" {
		fmt.Fprintln(out, "Summary:")
		fmt.Fprintln(out, rep.Summary)
		fmt.Fprintln(out)
	}
	if rep.Translation != "" {
		label := rep.TargetLanguage
		if lang, ok := language.GetLanguage(rep.TargetLanguage); ok {
			label = lang.Label()
		}
		fmt.Fprintf(out, "Translation (%s):\n", label)
		fmt.Fprintln(out, rep.Translation)
	}
}

func printContextPreview(out io.Writer, rep pipeline.Report) {
	if rep.Context == "" {
		return
	}
	fmt.Fprintln(out, "\n--- Context ---")
	fmt.Fprintln(out, logger.Preview(rep.Context, contextPreviewLen))
}

func printUsageStats(out io.Writer, rep pipeline.Report, cfg config.Config, elapsed time.Duration) {
	fmt.Fprintln(out, "\n--- Execution Stats ---")
	fmt.Fprintf(out, "Time: %s\n", elapsed.Round(time.Millisecond))
	for _, s := range rep.Stages {
		fmt.Fprintf(out, "Stage %-9s %-7s %s\n", s.Stage, s.Outcome, s.Duration.Round(time.Millisecond))
	}
	if rep.Model == "" {
		return
	}
	fmt.Fprintf(out, "Model: %s (%s)\n", rep.Model, cfg.Summarizer.Provider)
	usage := rep.Usage()
	if usage.TotalTokens <= 0 {
		return
	}
	fmt.Fprintf(out, "Tokens: In=%d, Out=%d, Total=%d\n", usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	searches := 0
	if rep.Stage(pipeline.StageRetrieve).Outcome != pipeline.OutcomeSkipped {
		searches = 1
	}
	cost := providers.EstimateCost(cfg.Summarizer.Provider, rep.Model, usage.PromptTokens, usage.CompletionTokens, searches)
	fmt.Fprintf(out, "Estimated Cost: $%.5f (excluding translation)\n", cost)
}
