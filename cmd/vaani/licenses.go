package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/vaani/internal/licenses"
)

func newLicensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licenses",
		Short: "Show third-party license notices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := licenses.NoticesText()
			if text == "" {
				return fmt.Errorf("no third-party notices registered")
			}
			_, err := cmd.OutOrStdout().Write([]byte(text))
			return err
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
