package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oukeidos/vaani/internal/cleanup"
	"github.com/oukeidos/vaani/internal/version"
)

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// rootOptions are persistent flags shared by every command.
type rootOptions struct {
	configPath string
	envFile    string
	logFile    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	root := &rootOptions{}
	askOpts := askOptions{}

	cmd := &cobra.Command{
		Use:   "vaani",
		Short: "Search → Summarize → Translate",
		Example: `  vaani "who won the 2024 chess olympiad" --lang hi-IN
  vaani ask --lang ta-IN -o answer.json "monsoon forecast for Chennai"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !newPrompter().Interactive() {
				return cmd.Help()
			}
			return runAsk(cmd, args, root, &askOpts)
		},
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	pf := cmd.PersistentFlags()
	pf.StringVar(&root.configPath, "config", "", "Path to YAML config file (default: user config dir/vaani/config.yaml)")
	pf.StringVar(&root.envFile, "env-file", ".env", "Load KEY=VALUE pairs from this file without overriding the environment")
	pf.StringVar(&root.logFile, "log-file", "", "Path to save machine-readable JSONL logs")
	pf.BoolVar(&root.debug, "debug", false, "Enable debug logging")

	addAskFlags(cmd.Flags(), &askOpts)

	cmd.AddCommand(
		newAskCmd(root),
		newListCmd(),
		newEnvCmd(root),
		newServeCmd(root),
		newConfigCmd(root),
		newAboutCmd(),
		newDisclaimerCmd(),
		newLicensesCmd(),
	)

	cmd.InitDefaultCompletionCmd()
	for _, sub := range cmd.Commands() {
		if sub.Name() == "completion" {
			sub.Short = "Generate shell completion scripts"
			sub.SetUsageTemplate(subcommandUsageTemplate)
			break
		}
	}

	return cmd
}
