package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oukeidos/vaani/internal/pipeline"
	"github.com/oukeidos/vaani/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the question form and JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			cfg, err = finalizeConfig(cfg)
			if err != nil {
				return err
			}

			factory := func(ctx context.Context) (*pipeline.Pipeline, func() error) {
				set := buildServices(ctx, cfg, getKey)
				return set.Pipeline(cfg), set.Close
			}

			ctx, stop := signalContext()
			defer stop()
			return server.New(factory, cfg.Language).ListenAndServe(ctx, cfg.Server.Addr)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
