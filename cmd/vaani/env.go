package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oukeidos/vaani/internal/auth"
)

type envOptions struct {
	service string
	yes     bool
}

func newEnvCmd(root *rootOptions) *cobra.Command {
	opts := envOptions{}
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage API keys in OS Keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd, root, &opts)
		},
	}

	cmd.SetUsageTemplate(groupUsageTemplate)
	cmd.PersistentFlags().StringVar(&opts.service, "service", "", "Service to manage ("+strings.Join(auth.Services(), ", ")+")")

	cmd.AddCommand(
		newEnvSetupCmd(&opts),
		newEnvDeleteCmd(&opts),
		newEnvStatusCmd(root, &opts),
	)
	return cmd
}

func newEnvSetupCmd(opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Save API key to keychain (prompt only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvSetup(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvDeleteCmd(opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete key from keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvDelete(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

func newEnvStatusCmd(root *rootOptions, opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show key status (default if no action given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd, root, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func requireService(name string) (auth.Service, error) {
	if strings.TrimSpace(name) == "" {
		return auth.Service{}, fmt.Errorf("--service is required (one of %s)", strings.Join(auth.Services(), ", "))
	}
	svc, ok := auth.Lookup(name)
	if !ok {
		return auth.Service{}, fmt.Errorf("invalid service %q. Must be one of %s", name, strings.Join(auth.Services(), ", "))
	}
	return svc, nil
}

func runEnvSetup(cmd *cobra.Command, opts *envOptions) error {
	svc, err := requireService(opts.service)
	if err != nil {
		return err
	}
	if !stdinIsTerminal() {
		return fmt.Errorf("setup needs an interactive terminal; set %s instead", svc.EnvVar)
	}
	promptKey, err := promptForKey(fmt.Sprintf("%s API Key: ", svc.Label))
	if err != nil {
		return fmt.Errorf("error reading key: %w", err)
	}
	key := strings.TrimSpace(promptKey)
	if key == "" {
		return fmt.Errorf("API key is required for setup")
	}
	if err := saveKey(svc.Name, key); err != nil {
		return fmt.Errorf("error saving key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s API key to keychain.\n", svc.Name)
	return nil
}

func runEnvDelete(cmd *cobra.Command, opts *envOptions) error {
	svc, err := requireService(opts.service)
	if err != nil {
		return err
	}
	ok, err := newPrompter().Confirm(fmt.Sprintf("Delete %s API key from keychain?", svc.Label), opts.yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}
	if err := deleteKey(svc.Name); err != nil {
		return fmt.Errorf("error deleting key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s API key from keychain.\n", svc.Name)
	return nil
}

func runEnvStatus(cmd *cobra.Command, root *rootOptions, opts *envOptions) error {
	if _, err := loadConfig(root); err != nil {
		return err
	}
	names := auth.Services()
	if strings.TrimSpace(opts.service) != "" {
		svc, err := requireService(opts.service)
		if err != nil {
			return err
		}
		names = []string{svc.Name}
	}
	out := cmd.OutOrStdout()
	for _, name := range names {
		svc, _ := auth.Lookup(name)
		if key, ok := getEnvKey(name); ok && key != "" {
			fmt.Fprintf(out, "%s API Key: Found (source=%s %s)\n", name, auth.SourceEnv, svc.EnvVar)
			continue
		}
		if getStatus(name) {
			fmt.Fprintf(out, "%s API Key: Found (source=%s)\n", name, auth.SourceKeychain)
			continue
		}
		fmt.Fprintf(out, "%s API Key: Not Found (keychain empty, %s not set)\n", name, svc.EnvVar)
	}
	return nil
}
