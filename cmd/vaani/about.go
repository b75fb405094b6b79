package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/vaani/internal/version"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show a short description and link",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, version.Info())
			fmt.Fprintln(out, "Ask a question in English, get a web-grounded answer in an Indian language.")
			fmt.Fprintln(out, "https://github.com/oukeidos/vaani")
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
