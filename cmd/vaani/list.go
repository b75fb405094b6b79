package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/vaani/internal/language"
	"github.com/oukeidos/vaani/internal/providers"
)

func newListCmd() *cobra.Command {
	var showProviders bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if showProviders {
				fmt.Fprintln(out, "Summarizer Providers:")
				for _, name := range providers.Names() {
					p, _ := providers.Get(name)
					fmt.Fprintf(out, "  %s (%s)\n", p.Name, p.Label)
					for _, m := range p.Models {
						fmt.Fprintf(out, "    %-28s in=$%.2f/M out=$%.2f/M\n", m.ID, m.InputPerMillion, m.OutputPerMillion)
					}
				}
				return
			}
			fmt.Fprintln(out, "Supported Languages:")
			for _, l := range language.GetSupportedLanguages() {
				fmt.Fprintf(out, "  %-12s %-10s [%s]\n", l.Name, l.NativeName, l.Code)
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&showProviders, "providers", false, "List summarizer providers and models instead")
	return cmd
}
